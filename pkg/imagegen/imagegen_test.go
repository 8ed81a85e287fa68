package imagegen_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/pkg/imagegen"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestClient_Generate(t *testing.T) {
	t.Parallel()

	t.Run("posts multipart prompt", func(t *testing.T) {
		t.Parallel()
		var gotPrompt, gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotPrompt = r.FormValue("prompt")
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
		}))
		t.Cleanup(srv.Close)

		img, err := imagegen.New(imagegen.Config{APIKey: "clip-key", URL: srv.URL}).
			Generate(context.Background(), "a lighthouse at dusk")
		require.NoError(t, err)
		assert.Equal(t, png, img.Data)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, "clip-key", gotKey)
		assert.Equal(t, "a lighthouse at dusk", gotPrompt)
	})

	t.Run("sniffs missing content type", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(png)
		}))
		t.Cleanup(srv.Close)

		img, err := imagegen.New(imagegen.Config{APIKey: "k", URL: srv.URL}).Generate(context.Background(), "p")
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := imagegen.New(imagegen.Config{})
		assert.False(t, c.Configured())
		_, err := c.Generate(context.Background(), "p")
		assert.ErrorIs(t, err, imagegen.ErrMissingAPIKey)
	})
}

func TestUpstreamServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		message string
	}{
		{http.StatusPaymentRequired, "ClipDrop: Payment required or invalid API key/credits"},
		{http.StatusForbidden, "ClipDrop: Forbidden — invalid API key or insufficient permissions"},
		{http.StatusInternalServerError, "ClipDrop: request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"raw provider payload"}`))
			}))
			t.Cleanup(srv.Close)

			_, err := imagegen.New(imagegen.Config{APIKey: "k", URL: srv.URL}).Generate(context.Background(), "p")
			var ue *imagegen.UpstreamServiceError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tt.status, ue.StatusCode)

			var httpErr core.HTTPError
			require.True(t, errors.As(imagegen.HTTPError(err), &httpErr))
			assert.Equal(t, tt.status, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.UserMessage())
			assert.NotContains(t, httpErr.UserMessage(), "raw provider payload")
		})
	}
}

func TestHTTPError_MissingKey(t *testing.T) {
	t.Parallel()
	var httpErr core.HTTPError
	require.True(t, errors.As(imagegen.HTTPError(imagegen.ErrMissingAPIKey), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
