package frame

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func expectBlack(t *testing.T, fr *Frame, x, y int) {
	t.Helper()
	r, g, b := fr.At(x, y)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("pixel (%d,%d) = (%d,%d,%d), want black", x, y, r, g, b)
	}
}

func expectNear(t *testing.T, fr *Frame, x, y int, c color.NRGBA) {
	t.Helper()
	r, g, b := fr.At(x, y)
	near := func(got, want uint8) bool {
		d := int(got) - int(want)
		return d >= -2 && d <= 2
	}
	if !near(r, c.R) || !near(g, c.G) || !near(b, c.B) {
		t.Errorf("pixel (%d,%d) = (%d,%d,%d), want near (%d,%d,%d)", x, y, r, g, b, c.R, c.G, c.B)
	}
}

func TestNormalizeShape(t *testing.T) {
	path := writePNG(t, solid(800, 600, color.NRGBA{R: 255, A: 255}))

	fr, err := Normalize(path, 1920, 1080)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if fr.Width != 1920 || fr.Height != 1080 {
		t.Errorf("frame size %dx%d, want 1920x1080", fr.Width, fr.Height)
	}
	if len(fr.Pix) != 1080*1920*3 {
		t.Errorf("buffer length %d, want %d", len(fr.Pix), 1080*1920*3)
	}
}

func TestNormalizeSquareIntoWideFrame(t *testing.T) {
	path := writePNG(t, solid(100, 100, color.NRGBA{G: 255, A: 255}))

	fr, err := Normalize(path, 1920, 1080)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Pillarbox bands at both top corners.
	expectBlack(t, fr, 0, 0)
	expectBlack(t, fr, 1919, 0)
	// The pasted region is centered.
	expectNear(t, fr, 960, 540, color.NRGBA{G: 255})
}

func TestNormalizeWideSourceLetterbox(t *testing.T) {
	path := writePNG(t, solid(2000, 100, color.NRGBA{B: 255, A: 255}))

	fr, err := Normalize(path, 1920, 1080)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Horizontal black band above and below the strip.
	expectBlack(t, fr, 960, 0)
	expectBlack(t, fr, 960, 1079)
	expectNear(t, fr, 960, 540, color.NRGBA{B: 255})
}

func TestNormalizeTallSourcePillarbox(t *testing.T) {
	path := writePNG(t, solid(100, 2000, color.NRGBA{R: 255, G: 255, A: 255}))

	fr, err := Normalize(path, 1920, 1080)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	expectBlack(t, fr, 0, 540)
	expectBlack(t, fr, 1919, 540)
	expectNear(t, fr, 960, 540, color.NRGBA{R: 255, G: 255})
}

func TestNormalizeDropsAlphaKeepingColor(t *testing.T) {
	// Half-transparent red must come out as full red, not composited
	// against the black background.
	path := writePNG(t, solid(200, 200, color.NRGBA{R: 200, G: 40, B: 40, A: 128}))

	fr, err := Normalize(path, 1920, 1080)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	expectNear(t, fr, 960, 540, color.NRGBA{R: 200, G: 40, B: 40})
}

func TestNormalizeMissingFile(t *testing.T) {
	_, err := Normalize(filepath.Join(t.TempDir(), "missing.png"), 1920, 1080)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestNormalizeDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Normalize(path, 1920, 1080); err == nil {
		t.Fatal("expected decode error")
	}
}
