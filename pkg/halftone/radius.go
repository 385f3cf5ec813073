package halftone

// RadiusMapper converts a sampled brightness into a dot radius.
type RadiusMapper struct {
	// Inner is the inner sampling radius, see InnerRadius.
	Inner int
	// Threshold is the largest radius that is still suppressed.
	Threshold int
}

// Map returns the dot radius for brightness v and whether a dot exists.
//
// Black samples never produce a dot. Otherwise the radius is v/255*Inner-1,
// leaving a one pixel gap between neighbours, and radii at or below the
// threshold are dropped. The two rules are kept separate: a zero sample is
// rejected even when the threshold is negative.
func (m RadiusMapper) Map(v uint8) (float64, bool) {
	if v == 0 {
		return 0, false
	}
	r := float64(v)/255.0*float64(m.Inner) - 1.0
	if r <= float64(m.Threshold) {
		return 0, false
	}
	return r, true
}

// Max returns the radius of a fully bright sample.
func (m RadiusMapper) Max() float64 {
	return float64(m.Inner) - 1.0
}
