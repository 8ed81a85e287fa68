package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/binder"
)

type articleRequest struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

func newRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/ai/generate-article", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestBindJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON()(newRequest(`{"prompt":"Go tips","length":800}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)
		assert.Equal(t, articleRequest{Prompt: "Go tips", Length: 800}, req)
	})

	t.Run("unknown fields allowed by default", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		require.NoError(t, binder.BindJSON()(newRequest(`{"prompt":"x","extra":true}`, "application/json"), &req))
	})

	t.Run("unknown fields rejected in strict mode", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON(binder.WithStrictFields())(newRequest(`{"prompt":"x","extra":true}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON()(newRequest(`{}`, ""), &req)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON()(newRequest(`prompt=x`, "application/x-www-form-urlencoded"), &req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON()(newRequest(``, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON()(newRequest(`{"prompt":`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		err := binder.BindJSON()(newRequest(`{"prompt":"a"}{"prompt":"b"}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		var req articleRequest
		body := `{"prompt":"` + strings.Repeat("a", 64) + `"}`
		err := binder.BindJSON(binder.WithMaxBodyBytes(16))(newRequest(body, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})
}
