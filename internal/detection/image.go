package detection

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"agromind/internal/types"
)

// NewImage wraps raw bytes as an UploadedImage, declaring the media type
// sniffed from the content. The content is not validated.
func NewImage(filename string, data []byte) types.UploadedImage {
	return types.UploadedImage{
		Filename:  filename,
		MediaType: mimetype.Detect(data).String(),
		Data:      bytes.Clone(data),
	}
}

// LoadImage reads an image file from disk.
func LoadImage(path string) (types.UploadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.UploadedImage{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	return NewImage(filepath.Base(path), data), nil
}
