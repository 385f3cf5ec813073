// Package codec converts between encoded image files and [halftone.Image].
//
// Decoding goes through github.com/disintegration/imaging, which applies EXIF
// orientation and understands every format registered with the standard
// image package. This package additionally registers the WebP, BMP and TIFF
// decoders from golang.org/x/image.
//
// Output files are committed with [WriteFileAtomic] so a failed run never
// leaves a half-written artifact behind.
//
// [halftone.Image]: github.com/matzehuels/hexhalftone/pkg/halftone.Image
package codec

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	errs "github.com/matzehuels/hexhalftone/pkg/errors"
	"github.com/matzehuels/hexhalftone/pkg/halftone"
)

// ReadFile reads an encoded image from disk without decoding it.
func ReadFile(path string) ([]byte, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "input %s does not exist", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// Decode decodes an image in any registered format into a 3-channel RGB
// [halftone.Image]. Transparent pixels are composited over black.
func Decode(data []byte) (*halftone.Image, error) {
	if len(data) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "source image is empty")
	}
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode source image")
	}
	return FromImage(src)
}

// FromImage converts any image.Image into a 3-channel RGB [halftone.Image].
func FromImage(src image.Image) (*halftone.Image, error) {
	b := src.Bounds()
	out, err := halftone.NewImage(b.Dx(), b.Dy(), 3, halftone.OrderRGB)
	if err != nil {
		return nil, err
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Over)

	for y := 0; y < out.Height; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		dst := out.Pix[y*out.Width*3:]
		for x := 0; x < out.Width; x++ {
			copy(dst[x*3:x*3+3], row[x*4:x*4+3])
		}
	}
	return out, nil
}
