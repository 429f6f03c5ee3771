package svgtree

import (
	"io"
	"os"
	"path/filepath"
)

// Flags selects the elements loaded by the builder, and the
// shapes converted to paths.
type Flags uint32

const (
	LoadSvg Flags = 1 << iota
	LoadG
	LoadMarker
	LoadPath
	LoadLine
	LoadPolyline
	LoadPolygon
	LoadRect
	LoadCircle
	LoadEllipse
	// LoadStyle enables presentation attributes and the 'style' attribute.
	LoadStyle
	LoadImage
	LoadPattern
	LoadLinearGradient
	LoadRadialGradient
	LoadUse
	LoadDefs
	LoadSolidColor

	ConvertRectToPath
	ConvertCircleToPath
	ConvertEllipseToPath

	// LoadAll enables every element and the style attributes.
	LoadAll = LoadSvg | LoadG | LoadMarker | LoadPath | LoadLine | LoadPolyline |
		LoadPolygon | LoadRect | LoadCircle | LoadEllipse | LoadStyle | LoadImage |
		LoadPattern | LoadLinearGradient | LoadRadialGradient | LoadUse | LoadDefs | LoadSolidColor

	// ConvertShapes converts every basic shape to a Path element.
	ConvertShapes = ConvertRectToPath | ConvertCircleToPath | ConvertEllipseToPath
)

// Options parametrizes the builder.
type Options struct {
	Flags Flags

	// Width and Height are the document size, in pixels.
	// They are the reference for percentages of the root element.
	Width, Height float32

	ErrorMode ErrorMode
	// OnError, if not nil, receives every recoverable error.
	OnError func(*ParseError)

	// Open resolves the bytes behind an external resource.
	// When nil, hrefs are opened as files, relative to the directory
	// of the parsed file (or the working directory).
	Open func(href string) (io.ReadCloser, error)
}

// DefaultOptions loads every element, with shapes kept as is,
// and warns about recoverable errors.
func DefaultOptions() Options {
	return Options{Flags: LoadAll, ErrorMode: WarnErrorMode}
}

// fileOpener returns an Open function resolving relative hrefs against `dir`.
func fileOpener(dir string) func(string) (io.ReadCloser, error) {
	return func(href string) (io.ReadCloser, error) {
		if !filepath.IsAbs(href) && dir != "" {
			href = filepath.Join(dir, href)
		}
		return os.Open(href)
	}
}
