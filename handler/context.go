package handler

import (
	"context"
	"net/http"
)

// Context is what a typed handler receives. It is the request's context, so
// it can be passed straight to services, and it still reaches the raw request
// and writer for headers and streaming.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

// NewContext binds w and r into a Context. Values and cancellation come from
// r.Context() at the time of the call.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &requestContext{Context: r.Context(), w: w, r: r}
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func (c *requestContext) Request() *http.Request              { return c.r }
func (c *requestContext) ResponseWriter() http.ResponseWriter { return c.w }
