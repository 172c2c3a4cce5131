package storage

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("images", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"][0]
}

func TestSaveImageWritesUnderSubdir(t *testing.T) {
	dir := t.TempDir()
	d := NewDisk(dir, "uploads/", 1<<20)

	p, err := d.SaveImage(fileHeader(t, "Summit.PNG", pngBytes(t)), "tours")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "/uploads/tours/"), p)
	assert.True(t, strings.HasSuffix(p, ".png"), p)

	onDisk := filepath.Join(dir, "tours", filepath.Base(p))
	bs, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, pngBytes(t), bs)

	require.NoError(t, d.Remove(p))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	d := NewDisk(t.TempDir(), "/uploads", 1<<20)

	// the extension lies; the bytes are plain text
	_, err := d.SaveImage(fileHeader(t, "photo.jpg", []byte("hello, not an image")), "tours")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestSaveImageEnforcesLimit(t *testing.T) {
	d := NewDisk(t.TempDir(), "/uploads", 16)

	_, err := d.SaveImage(fileHeader(t, "big.png", pngBytes(t)), "tours")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	d := NewDisk(t.TempDir(), "/uploads", 0)
	assert.NoError(t, d.Remove("/etc/passwd"))
	assert.NoError(t, d.Remove("/uploads/../secret"))
	assert.NoError(t, d.Remove("/uploads/tours/missing.png"))
}
