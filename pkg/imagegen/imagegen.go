package imagegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the ClipDrop text-to-image endpoint.
const DefaultURL = "https://clipdrop-api.co/text-to-image/v1"

// maxImageBytes bounds the response body read from the upstream service.
const maxImageBytes = 20 << 20

var (
	ErrMissingAPIKey = errors.New("imagegen.errors.missing_api_key")
	ErrEmptyPrompt   = errors.New("imagegen.errors.empty_prompt")
	ErrEmptyImage    = errors.New("imagegen.errors.empty_image")
)

// Config holds ClipDrop settings.
type Config struct {
	APIKey  string        `env:"CLIPDROP_API_KEY"`
	URL     string        `env:"CLIPDROP_URL" envDefault:"https://clipdrop-api.co/text-to-image/v1"`
	Timeout time.Duration `env:"CLIPDROP_TIMEOUT" envDefault:"60s"`
}

// Image is a generated image.
type Image struct {
	Data        []byte
	ContentType string
}

// Client calls the ClipDrop text-to-image API.
type Client struct {
	apiKey string
	url    string
	http   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// New creates a client. A missing API key is reported per call so the
// service can start without image generation.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		apiKey: cfg.APIKey,
		url:    cfg.URL,
		http:   &http.Client{Timeout: cfg.Timeout},
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Generate renders prompt to an image. Non-2xx answers return
// *UpstreamServiceError.
func (c *Client) Generate(ctx context.Context, prompt string) (Image, error) {
	if c.apiKey == "" {
		return Image{}, ErrMissingAPIKey
	}
	if strings.TrimSpace(prompt) == "" {
		return Image{}, ErrEmptyPrompt
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("prompt", prompt); err != nil {
		return Image{}, fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return Image{}, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return Image{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Image{}, &UpstreamServiceError{
			Service:    "ClipDrop",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return Image{Data: data, ContentType: contentType}, nil
}
