package halftone

import (
	"image/color"

	errs "github.com/matzehuels/hexhalftone/pkg/errors"
)

// ChannelOrder declares how the three color samples of a pixel are stored.
type ChannelOrder int

const (
	// OrderRGB stores red, green, blue.
	OrderRGB ChannelOrder = iota
	// OrderBGR stores blue, green, red, the layout used by OpenCV-style buffers.
	OrderBGR
)

// String returns "rgb" or "bgr".
func (o ChannelOrder) String() string {
	if o == OrderBGR {
		return "bgr"
	}
	return "rgb"
}

// Image is an immutable 2D grid of 8-bit samples with either one channel
// (grayscale intensity) or three (color in the declared Order).
// Pix is row-major: the samples of pixel (x, y) start at (y*Width+x)*Channels.
type Image struct {
	Width    int
	Height   int
	Channels int
	Order    ChannelOrder
	Pix      []uint8
}

// NewImage allocates a zeroed (black) image.
func NewImage(width, height, channels int, order ChannelOrder) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "image dimensions must be positive, got %dx%d", width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "image must have 1 or 3 channels, got %d", channels)
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Order:    order,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// FromPix wraps an existing sample buffer, validating its length.
func FromPix(width, height, channels int, order ChannelOrder, pix []uint8) (*Image, error) {
	img, err := NewImage(width, height, channels, order)
	if err != nil {
		return nil, err
	}
	if len(pix) != len(img.Pix) {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"pixel buffer has %d samples, want %d for %dx%dx%d", len(pix), len(img.Pix), width, height, channels)
	}
	copy(img.Pix, pix)
	return img, nil
}

// Uniform returns an image where every pixel holds the given samples.
// len(samples) selects the channel count.
func Uniform(width, height int, order ChannelOrder, samples ...uint8) (*Image, error) {
	img, err := NewImage(width, height, len(samples), order)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(img.Pix); i += len(samples) {
		copy(img.Pix[i:], samples)
	}
	return img, nil
}

// offset returns the index of the first sample of (x, y).
func (m *Image) offset(x, y int) int {
	return (y*m.Width + x) * m.Channels
}

// At returns the samples of pixel (x, y) in storage order.
// The returned slice aliases the image and must not be modified.
func (m *Image) At(x, y int) []uint8 {
	i := m.offset(x, y)
	return m.Pix[i : i+m.Channels : i+m.Channels]
}

// RGBA returns the color of pixel (x, y) converted from the storage channel
// order to RGB. Grayscale pixels are replicated into all three channels.
func (m *Image) RGBA(x, y int) color.RGBA {
	return toRGB(m.At(x, y), m.Channels, m.Order)
}
