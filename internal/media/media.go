// Package media shrinks product images for the storefront.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

const (
	DefaultMaxWidth = 800
	JPEGQuality     = 80
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Supported reports whether name has an extension Optimize can handle.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".jfif", ".png":
		return true
	}
	return false
}

// Optimize decodes an image of the format implied by ext, shrinks it to at
// most maxWidth pixels wide keeping the aspect ratio, and re-encodes it in
// the same format. Narrower images are never upscaled.
func Optimize(r io.Reader, ext string, w io.Writer, maxWidth uint) error {
	ext = strings.ToLower(ext)

	var img image.Image
	var err error
	switch ext {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg", ".jfif":
		img, err = jpeg.Decode(r)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	if maxWidth > 0 && uint(img.Bounds().Dx()) > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	if ext == ".png" {
		err = png.Encode(w, img)
	} else {
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}

// OptimizeFile writes the optimized copy of src to dst.
func OptimizeFile(src, dst string, maxWidth uint) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := Optimize(in, filepath.Ext(src), out, maxWidth); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// Result lists what OptimizeDir did, by file name.
type Result struct {
	Optimized []string `json:"optimized" yaml:"optimized"`
	Skipped   []string `json:"skipped" yaml:"skipped"`
}

// OptimizeDir optimizes every supported image directly inside srcDir into
// dstDir under the same name. Unsupported files are skipped.
func OptimizeDir(srcDir, dstDir string, maxWidth uint) (Result, error) {
	var res Result

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return res, err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !Supported(name) {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if err := OptimizeFile(filepath.Join(srcDir, name), filepath.Join(dstDir, name), maxWidth); err != nil {
			return res, fmt.Errorf("%s: %w", name, err)
		}
		slog.Debug("Optimized image", "file", name)
		res.Optimized = append(res.Optimized, name)
	}
	return res, nil
}
