package source

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// RenderPDF rasterizes the pages of a PDF at the given DPI into workDir and
// returns the resulting image paths in page order, so a PDF can serve as an
// image pool.
func RenderPDF(path string, dpi int, workDir string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	stem := filepath.Base(path)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]

	var paths []string
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("render pdf page %d: %w", i, err)
		}

		out := filepath.Join(workDir, fmt.Sprintf("%s_p%04d.png", stem, i))
		f, err := os.Create(out)
		if err != nil {
			return nil, err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("write pdf page %d: %w", i, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, out)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("pdf %s contains no pages", path)
	}
	return paths, nil
}
