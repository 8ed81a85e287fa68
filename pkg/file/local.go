package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem. All operations are
// confined to baseDir. Used when no bucket is configured.
type LocalStorage struct {
	baseDir string // Absolute path - all files stored within this directory
	baseURL string // URL prefix for serving files (e.g., "/files/")
}

// NewLocalStorage creates baseDir if needed.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}
	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}, nil
}

// BaseDir returns the absolute storage root.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

func (s *LocalStorage) Put(ctx context.Context, key string, body []byte, contentType string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyObject
	}
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	// Write to a temp file and rename so readers never see a partial object.
	tmp := absPath + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Rename(tmp, absPath); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if contentType == "" {
		contentType = DetectContentType(body)
	}
	return &Object{
		Key:         key,
		Size:        int64(len(body)),
		ContentType: contentType,
		URL:         s.URL(key),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + filepath.ToSlash(filepath.Clean(strings.TrimPrefix(key, "/")))
}

// resolvePath ensures the resolved path stays within baseDir.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return absPath, nil
}
