package file

import (
	"context"
	"mime"
	"net/http"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Object describes a stored object.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
}

// Storage stores generated assets and serves them from a public URL.
type Storage interface {
	// Put writes body under key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte, contentType string) (*Object, error)
	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for key.
	URL(key string) string
}

// DetectContentType sniffs the content type of body.
func DetectContentType(body []byte) string {
	return http.DetectContentType(body)
}

// ObjectKey builds a unique key under prefix/owner with an extension derived
// from the content type: "images/user_2abc/3f1c...e9.png".
func ObjectKey(prefix, owner, contentType string) string {
	ext := ".bin"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	}
	return path.Join(SanitizeSegment(prefix), SanitizeSegment(owner), uuid.NewString()+ext)
}

// SanitizeSegment keeps letters, digits, dash and underscore; anything else
// becomes an underscore. An empty result becomes "unknown".
func SanitizeSegment(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			return r
		}
		return '_'
	}, strings.TrimSpace(s))
	if strings.Trim(s, "_") == "" {
		return "unknown"
	}
	return s
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", ErrInvalidPath
	}
	return key, nil
}
