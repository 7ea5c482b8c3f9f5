// Package filemgr stores uploaded images under static/uploads and produces
// jpeg thumbnails alongside them.
package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

type EntityType string
type PictureType string

const (
	EntityRestaurant EntityType = "restaurant"
	EntityEvent      EntityType = "event"

	PicBanner   PictureType = "banner"
	PicShowcase PictureType = "showcase"
	PicThumb    PictureType = "thumb"
)

const maxUploadBytes = 10 << 20

var AllowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var (
	ErrInvalidMIME  = errors.New("invalid MIME type")
	ErrFileTooLarge = errors.New("file size exceeds limit")
)

// IsRequestError reports whether err is the caller's fault rather than a
// storage failure. Handlers answer these with 400 instead of a masked 500.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrInvalidMIME) || errors.Is(err, ErrFileTooLarge)
}

func ResolvePath(entity EntityType, picType PictureType) string {
	return filepath.Join("static", "uploads", strings.ToLower(string(entity)), string(picType))
}

// SaveImageWithThumb saves the uploaded image and a width-bounded thumbnail,
// returning the stored file names.
func SaveImageWithThumb(file multipart.File, header *multipart.FileHeader, entity EntityType, picType PictureType, thumbWidth int) (string, string, error) {
	defer file.Close()

	if header.Size > maxUploadBytes {
		return "", "", ErrFileTooLarge
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}

	if mime := header.Header.Get("Content-Type"); mime != "" && !AllowedMIMEs[mime] {
		return "", "", ErrInvalidMIME
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image %q: %w", header.Filename, err)
	}

	name := uuid.New().String() + ".jpg"

	origDir := ResolvePath(entity, picType)
	if err := os.MkdirAll(origDir, 0o755); err != nil {
		return "", "", fmt.Errorf("mkdir %s: %w", origDir, err)
	}
	if err := writeJPEG(filepath.Join(origDir, name), img); err != nil {
		return "", "", err
	}

	thumbImg := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // maintain aspect ratio
	thumbDir := ResolvePath(entity, PicThumb)
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return name, "", fmt.Errorf("mkdir %s: %w", thumbDir, err)
	}
	if err := writeJPEG(filepath.Join(thumbDir, name), thumbImg); err != nil {
		return name, "", err
	}

	return name, name, nil
}

func writeJPEG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
