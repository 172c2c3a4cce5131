// Package storage saves uploaded images on local disk under public paths.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file exceeds the upload limit")
)

// Disk writes files under Dir and reports them under URLPrefix.
type Disk struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
}

func NewDisk(dir, urlPrefix string, maxBytes int64) *Disk {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Disk{Dir: dir, URLPrefix: "/" + strings.Trim(urlPrefix, "/"), MaxBytes: maxBytes}
}

// SaveImage stores one multipart image in sub (e.g. "tours") with a random
// name and returns its public path. The content type is sniffed from the
// bytes; the client-supplied header is ignored.
func (d *Disk) SaveImage(fh *multipart.FileHeader, sub string) (string, error) {
	if fh.Size > d.MaxBytes {
		return "", fmt.Errorf("%s: %w", fh.Filename, ErrTooLarge)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return d.save(src, fh.Filename, sub)
}

func (d *Disk) save(src io.ReadSeeker, filename, sub string) (string, error) {
	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect type: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%s: %w", filename, ErrNotImage)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = mt.Extension()
	}
	name := uuid.NewString() + ext

	dir := filepath.Join(d.Dir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	n, err := io.Copy(dst, io.LimitReader(src, d.MaxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > d.MaxBytes {
		err = fmt.Errorf("%s: %w", filename, ErrTooLarge)
	}
	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return "", err
	}
	return path.Join(d.URLPrefix, sub, name), nil
}

// Remove deletes a file previously returned by SaveImage. Paths outside the
// upload prefix are ignored.
func (d *Disk) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, d.URLPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(d.Dir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
