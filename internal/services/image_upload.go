package services

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotImage = errors.New("uploaded file is not an image")
	ErrTooLarge = errors.New("image exceeds the 10MB limit")
)

const maxImageSize = 10 * 1024 * 1024

// MediaRoot returns the directory uploaded files live under. Served by the
// router at /media.
func MediaRoot() string {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "./media"
	}
	return root
}

// SavePostImage validates and stores an uploaded post image below
// <media root>/posts/ and returns the media-relative path ("posts/<name>").
func SavePostImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	if header.Size > maxImageSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}

	dir := filepath.Join(MediaRoot(), "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "posts/" + name, nil
}
