package detection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	img, err := LoadImage(path)
	require.NoError(t, err)

	assert.Equal(t, "leaf.png", img.Filename)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, png, img.Data)
}

func TestLoadImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	img, err := LoadImage(path)
	require.NoError(t, err, "content is not validated")
	assert.Contains(t, img.MediaType, "text/plain")
}

func TestLoadImage_Missing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}
