package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"report.pdf", true},
		{"scan.JPG", true},
		{"xray.Png", true},
		{"archive.tar.pdf", true},
		{"setup.exe", false},
		{"photo.jpeg", false},
		{"notes.txt", false},
		{"pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Allowed(tt.filename); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

// fileHeader builds a real multipart.FileHeader by parsing a multipart body.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestNewDisk_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	d, err := NewDisk(dir)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	info, err := os.Stat(d.Dir())
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory %s to exist", dir)
	}
}

func TestSave_StoresAllowedFile(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	d.now = func() time.Time { return time.UnixMilli(1718000000000) }
	d.newID = func() string { return "fixed-id" }

	url, err := d.Save(fileHeader(t, "Report.PDF", []byte("%PDF-1.4 test")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if url != "/uploads/1718000000000-fixed-id.pdf" {
		t.Errorf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, URLPrefix+"/")))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestSave_UniqueNamesWithinSameMillisecond(t *testing.T) {
	d, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	d.now = func() time.Time { return time.UnixMilli(1718000000000) }

	first, err := d.Save(fileHeader(t, "a.png", []byte("one")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := d.Save(fileHeader(t, "b.png", []byte("two")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct names, both were %q", first)
	}
}

func TestSave_RejectsDisallowedExtension(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDisk(dir)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	_, err = d.Save(fileHeader(t, "virus.exe", []byte("MZ")))

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected *RejectedError, got %v", err)
	}
	if rejected.Ext != ".exe" {
		t.Errorf("expected ext .exe, got %q", rejected.Ext)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected nothing stored, found %d entries", len(entries))
	}
}
