package halftone

import "image/color"

// White is the fill used when color mode is off.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// ColorSelector picks the fill color of a dot.
type ColorSelector struct {
	ColorMode bool
}

// Select returns White when color mode is off, otherwise the color of img at
// (x, y) converted from img's channel order to RGB.
func (s ColorSelector) Select(img *Image, x, y int) color.RGBA {
	if !s.ColorMode {
		return White
	}
	return img.RGBA(x, y)
}

// toRGB reorders one pixel's samples into RGB.
func toRGB(s []uint8, channels int, order ChannelOrder) color.RGBA {
	if channels == 1 {
		return color.RGBA{R: s[0], G: s[0], B: s[0], A: 0xff}
	}
	switch order {
	case OrderBGR:
		return color.RGBA{R: s[2], G: s[1], B: s[0], A: 0xff}
	default:
		return color.RGBA{R: s[0], G: s[1], B: s[2], A: 0xff}
	}
}
