package halftone

// Value derives the single brightness channel used to size dots.
//
// Grayscale images are returned unchanged. For color images each pixel
// becomes max(R, G, B), the value channel of an HSV decomposition; the max is
// independent of channel order, so BGR buffers need no conversion here.
func Value(img *Image) *Image {
	if img.Channels == 1 {
		return img
	}
	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: 1,
		Order:    img.Order,
		Pix:      make([]uint8, img.Width*img.Height),
	}
	for i := range out.Pix {
		s := img.Pix[i*3 : i*3+3]
		out.Pix[i] = max(s[0], s[1], s[2])
	}
	return out
}

// Grayscale converts a color image to one luminance channel using the
// BT.601 weights 0.299R + 0.587G + 0.114B in 14-bit fixed point.
// Grayscale images are returned unchanged.
func Grayscale(img *Image) *Image {
	if img.Channels == 1 {
		return img
	}
	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: 1,
		Order:    img.Order,
		Pix:      make([]uint8, img.Width*img.Height),
	}
	const (
		wr    = 4899
		wg    = 9617
		wb    = 1868
		shift = 14
	)
	for i := range out.Pix {
		c := toRGB(img.Pix[i*3:i*3+3], 3, img.Order)
		y := (uint32(c.R)*wr + uint32(c.G)*wg + uint32(c.B)*wb + 1<<(shift-1)) >> shift
		out.Pix[i] = uint8(y)
	}
	return out
}
