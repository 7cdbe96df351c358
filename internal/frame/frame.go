package frame

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Frame is a normalized video frame: a tightly packed RGB24 buffer of
// exactly Height*Width*3 bytes, black outside the pasted image region.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// Normalize reads the image at path and fits it into a width x height frame:
// the source is scaled uniformly (aspect ratio preserved), resampled with
// CatmullRom, and pasted centered on a black background. Any alpha channel
// is dropped, keeping the underlying color values. Read and decode errors
// propagate to the caller unmodified.
func Normalize(path string, width, height int) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return FromImage(src, width, height), nil
}

// FromImage normalizes an already decoded image. Split out from Normalize so
// sources that render pages in memory skip the file round trip.
func FromImage(src image.Image, width, height int) *Frame {
	src = flattenAlpha(src)
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()

	scale := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	dstW := int(math.Round(float64(srcW) * scale))
	dstH := int(math.Round(float64(srcH) * scale))

	offX := (width - dstW) / 2
	offY := (height - dstH) / 2

	// NewRGBA zeroes the buffer, so the letterbox/pillarbox bands start out
	// black and only the pasted region is drawn over.
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	dstRect := image.Rect(offX, offY, offX+dstW, offY+dstH)
	xdraw.CatmullRom.Scale(canvas, dstRect, src, src.Bounds(), xdraw.Src, nil)

	return fromRGBA(canvas)
}

// flattenAlpha makes a transparent source fully opaque while keeping the
// stored color values. Transparency is dropped, not composited against a
// background, so a premultiplied source is un-premultiplied first.
func flattenAlpha(src image.Image) image.Image {
	if op, ok := src.(interface{ Opaque() bool }); ok && op.Opaque() {
		return src
	}

	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = 0xff
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// fromRGBA packs an RGBA canvas into the 3-channel frame buffer, discarding
// alpha.
func fromRGBA(canvas *image.RGBA) *Frame {
	w := canvas.Rect.Dx()
	h := canvas.Rect.Dy()

	fr := &Frame{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*3),
	}

	for y := 0; y < h; y++ {
		srcRow := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w*4]
		dstRow := fr.Pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}
	return fr
}

// At returns the RGB triple at (x, y).
func (f *Frame) At(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}
