package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sudhikumaran/ripple-ai/core"
)

// Envelope is the JSON body returned by every API route.
type Envelope struct {
	Success   bool   `json:"success"`
	Content   string `json:"content,omitempty"`
	Message   string `json:"message,omitempty"`
	Creations any    `json:"creations,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON renders v as-is with the given status.
func JSON(v any, status int) Response {
	return jsonResponse{status: status, body: v}
}

// OK renders a successful envelope carrying generated content.
func OK(content string) Response {
	return jsonResponse{status: http.StatusOK, body: Envelope{Success: true, Content: content}}
}

// Message renders a successful envelope carrying a message.
func Message(msg string) Response {
	return jsonResponse{status: http.StatusOK, body: Envelope{Success: true, Message: msg}}
}

// Creations renders a successful envelope carrying a list of creations.
// A nil list renders as an empty array.
func Creations[T any](list []T) Response {
	if list == nil {
		list = []T{}
	}
	return jsonResponse{status: http.StatusOK, body: Envelope{Success: true, Creations: list}}
}

// Fail renders an unsuccessful envelope. Quota denials use status 200.
func Fail(msg string, status int) Response {
	return jsonResponse{status: status, body: Envelope{Success: false, Message: msg}}
}

// Error renders err as an unsuccessful envelope. core.HTTPError values keep
// their status and message; anything else becomes a generic 500.
func Error(err error) Response {
	status, msg := classify(err)
	return Fail(msg, status)
}

func classify(err error) (int, string) {
	var httpErr core.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.UserMessage()
	}
	return http.StatusInternalServerError, "Internal server error"
}
