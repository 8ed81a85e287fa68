// Package binder decodes request bodies into handler request structs.
package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodyBytes bounds JSON bodies when no limit is given.
const DefaultMaxBodyBytes int64 = 1 << 20

// JSONOption configures BindJSON.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	maxBytes int64
	strict   bool
}

// WithMaxBodyBytes caps the body size. Non-positive values keep the default.
func WithMaxBodyBytes(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithStrictFields rejects unknown JSON fields.
func WithStrictFields() JSONOption {
	return func(c *jsonConfig) { c.strict = true }
}

// BindJSON creates a binder for application/json bodies.
//
//	r.Post("/generate-article", handler.Wrap(svc.generateArticle,
//		handler.WithBinder[ArticleRequest](binder.BindJSON()),
//	))
func BindJSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxBytes: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxBytes+1))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if int64(len(body)) > cfg.maxBytes {
			return ErrBodyTooLarge
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		if cfg.strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
