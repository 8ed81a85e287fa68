package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/pkg/file"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	key := file.ObjectKey("images", "user_2abc", "image/png")
	assert.True(t, strings.HasPrefix(key, "images/user_2abc/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.NotEqual(t, key, file.ObjectKey("images", "user_2abc", "image/png"))

	assert.True(t, strings.HasPrefix(file.ObjectKey("images", "../../x", "image/jpeg"), "images/______x/"))
	assert.True(t, strings.HasSuffix(file.ObjectKey("images", "", "image/jpeg"), ".jpg"))
}

func TestSanitizeSegment(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "user_2abc", file.SanitizeSegment("user_2abc"))
	assert.Equal(t, "a_b", file.SanitizeSegment("a/b"))
	assert.Equal(t, "unknown", file.SanitizeSegment(""))
	assert.Equal(t, "unknown", file.SanitizeSegment("///"))
}

func TestLocalStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storage, err := file.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	obj, err := storage.Put(ctx, "images/u1/a.png", pngHeader, "")
	require.NoError(t, err)
	assert.Equal(t, "/files/images/u1/a.png", obj.URL)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(pngHeader)), obj.Size)

	data, err := os.ReadFile(filepath.Join(storage.BaseDir(), "images", "u1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	_, err = storage.Put(ctx, "../outside.png", pngHeader, "")
	assert.ErrorIs(t, err, file.ErrInvalidPath)

	require.NoError(t, storage.Delete(ctx, "images/u1/a.png"))
	assert.ErrorIs(t, storage.Delete(ctx, "images/u1/a.png"), file.ErrFileNotFound)

	_, err = file.NewLocalStorage("", "")
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}
