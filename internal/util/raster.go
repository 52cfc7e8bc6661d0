package util

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

const RasterDPI = 150

var ErrNoPages = errors.New("document has no pages")

// RenderFirstPagePNG rasterizes the first page of the PDF at src and writes it to dst.
func RenderFirstPagePNG(src, dst string) error {
	doc, err := fitz.New(src)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	log.Printf("Rendering %s (%d pages)", filepath.Base(src), doc.NumPage())
	if doc.NumPage() == 0 {
		return ErrNoPages
	}

	img, err := doc.ImageDPI(0, RasterDPI)
	if err != nil {
		return fmt.Errorf("failed to render first page: %w", err)
	}

	return savePNG(dst, img)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return FileError("create", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	return nil
}
