package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func upload(content []byte, filename, contentType string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: filename,
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		Size:     int64(len(content)),
	}
	return memFile{bytes.NewReader(content)}, header
}

func TestSavePostImage(t *testing.T) {
	t.Setenv("MEDIA_ROOT", t.TempDir())

	file, header := upload([]byte("fake png bytes"), "pic.png", "image/png")
	path, err := SavePostImage(file, header)
	if err != nil {
		t.Fatalf("SavePostImage: %v", err)
	}
	if !strings.HasPrefix(path, "posts/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q, want posts/<name>.png", path)
	}

	stored, err := os.ReadFile(filepath.Join(MediaRoot(), path))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if !bytes.Equal(stored, []byte("fake png bytes")) {
		t.Error("stored bytes differ from the upload")
	}
}

func TestSavePostImageRejectsNonImage(t *testing.T) {
	t.Setenv("MEDIA_ROOT", t.TempDir())

	file, header := upload([]byte("#!/bin/sh"), "script.sh", "text/x-sh")
	if _, err := SavePostImage(file, header); !errors.Is(err, ErrNotImage) {
		t.Errorf("err = %v, want ErrNotImage", err)
	}
}

func TestSavePostImageRejectsOversize(t *testing.T) {
	t.Setenv("MEDIA_ROOT", t.TempDir())

	file, header := upload([]byte("x"), "big.jpg", "image/jpeg")
	header.Size = maxImageSize + 1
	if _, err := SavePostImage(file, header); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestSavePostImageExtensionFromContentType(t *testing.T) {
	t.Setenv("MEDIA_ROOT", t.TempDir())

	file, header := upload([]byte("fake"), "noext", "image/webp")
	path, err := SavePostImage(file, header)
	if err != nil {
		t.Fatalf("SavePostImage: %v", err)
	}
	if !strings.HasSuffix(path, ".webp") {
		t.Errorf("path = %q, want a .webp suffix", path)
	}
}
