// Package storage accepts supporting documents (medical reports) and keeps
// them on local disk under the uploads directory.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is where the uploads directory is mounted as a static root.
const URLPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".pdf": true,
	".jpg": true,
	".png": true,
}

// Allowed reports whether filename has an accepted extension. The check is
// case-insensitive.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// RejectedError is returned by Save when the extension is not accepted.
// Nothing is written in that case.
type RejectedError struct {
	Filename string
	Ext      string
}

func (e *RejectedError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file type: %q has no extension", e.Filename)
	}
	return fmt.Sprintf("unsupported file type %q, allowed: .pdf, .jpg, .png", e.Ext)
}

type Disk struct {
	dir   string
	now   func() time.Time
	newID func() string
}

// NewDisk creates dir if it does not exist yet.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Disk{
		dir:   dir,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}, nil
}

func (d *Disk) Dir() string {
	return d.dir
}

// Save validates and stores fh, returning the public URL of the stored file
// (e.g. /uploads/1718000000000-<uuid>.pdf).
func (d *Disk) Save(fh *multipart.FileHeader) (string, error) {
	if !Allowed(fh.Filename) {
		return "", &RejectedError{Filename: fh.Filename, Ext: filepath.Ext(fh.Filename)}
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := d.fileName(fh.Filename)
	dst, err := os.OpenFile(filepath.Join(d.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return path.Join(URLPrefix, name), nil
}

// fileName keeps the millisecond timestamp prefix of older uploads and adds
// a uuid so two uploads in the same millisecond cannot collide.
func (d *Disk) fileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", d.now().UnixMilli(), d.newID(), ext)
}
