package sink

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/hexhalftone/pkg/errors"
	"github.com/matzehuels/hexhalftone/pkg/halftone"
)

// Renderer accumulates dots and encodes the finished artifact.
type Renderer interface {
	halftone.Drawer

	// Count returns the number of dots drawn so far.
	Count() int

	// Encode writes the artifact to w. It is called once, after the last Draw.
	Encode(w io.Writer) error
}

// Target selects the kind of artifact to produce.
type Target struct {
	// Vector selects the SVG sink; Raster is ignored when set.
	Vector bool
	// Raster is the encoder format for the raster sink.
	Raster imaging.Format
}

// SVGTarget is the vector output target.
var SVGTarget = Target{Vector: true}

var rasterNames = map[imaging.Format]string{
	imaging.JPEG: "jpeg",
	imaging.PNG:  "png",
	imaging.GIF:  "gif",
	imaging.TIFF: "tiff",
	imaging.BMP:  "bmp",
}

var contentTypes = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// String returns the short format name ("svg", "png", "jpeg", ...).
func (t Target) String() string {
	if t.Vector {
		return "svg"
	}
	return rasterNames[t.Raster]
}

// ContentType returns the MIME type of the artifact.
func (t Target) ContentType() string {
	if t.Vector {
		return "image/svg+xml"
	}
	return contentTypes[t.Raster]
}

// Ext returns the canonical file extension including the dot.
func (t Target) Ext() string {
	switch {
	case t.Vector:
		return ".svg"
	case t.Raster == imaging.JPEG:
		return ".jpg"
	}
	return "." + t.String()
}

// TargetFromPath selects the target from the extension of path.
// ".svg" in any case selects vector output; anything else must be an
// extension imaging can encode.
func TargetFromPath(path string) (Target, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return Target{}, errs.New(errs.ErrCodeInvalidFormat, "output %q has no file extension", path)
	}
	return TargetFromName(strings.TrimPrefix(ext, "."))
}

// TargetFromName selects the target from a short format name such as "svg",
// "png", "jpg" or "tiff". Matching is case-insensitive.
func TargetFromName(name string) (Target, error) {
	if strings.EqualFold(name, "svg") {
		return SVGTarget, nil
	}
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return Target{}, errs.Wrap(errs.ErrCodeInvalidFormat, err,
			"unsupported output format %q (use svg, png, jpg, gif, tif or bmp)", name)
	}
	return Target{Raster: f}, nil
}

// New returns an empty renderer for a width x height canvas.
func New(t Target, width, height int) Renderer {
	if t.Vector {
		return NewSVG(width, height)
	}
	return NewRaster(width, height, t.Raster)
}
