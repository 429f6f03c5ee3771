// Package svgraster implements a raster backend for svgdraw,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/benoitkugler/svgtree/svgdraw"
	"github.com/benoitkugler/svgtree/svgscan"
	"github.com/benoitkugler/svgtree/svgtree"
)

var (
	_ svgdraw.Driver      = (*Renderer)(nil) // assert interface conformance
	_ svgdraw.ImageDrawer = (*Renderer)(nil)
)

// Renderer paints into an image. Fills and strokes use separated
// rasterx instances sharing the same scanner.
type Renderer struct {
	dst    draw.Image
	filler filler
	dasher stroker
}

// NewRenderer returns a renderer drawing into `dst`,
// with a rasterx.ScannerGV.
func NewRenderer(dst draw.Image) *Renderer {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, bounds)
	return &Renderer{
		dst:    dst,
		filler: filler{rasterx.NewFiller(w, h, scanner)},
		dasher: stroker{rasterx.NewDasher(w, h, scanner)},
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgdraw.Filler, svgdraw.Stroker) {
	return rd.filler, rd.dasher
}

// DrawImage implements svgdraw.ImageDrawer, with a bilinear interpolation.
func (rd *Renderer) DrawImage(img image.Image, m svgscan.Matrix, opacity float64) {
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	var opts *draw.Options
	if opacity < 1 {
		mask := image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 0xFF))})
		opts = &draw.Options{SrcMask: mask}
	}
	draw.BiLinear.Transform(rd.dst, s2d, img, img.Bounds(), draw.Over, opts)
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(color svgdraw.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.Scanner)
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(color svgdraw.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, s.Scanner)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round:     rasterx.Round,
		svgdraw.Bevel:     rasterx.Bevel,
		svgdraw.Miter:     rasterx.Miter,
		svgdraw.MiterClip: rasterx.MiterClip,
		svgdraw.Arc:       rasterx.Arc,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:   rasterx.ButtCap,
		svgdraw.SquareCap: rasterx.SquareCap,
		svgdraw.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	capFunc := capToFunc[options.LineCap]
	s.SetStroke(
		options.LineWidth, options.MiterLimit, capFunc, capFunc, rasterx.FlatGap,
		joinToJoin[options.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// toRasterxGradient returns a gradient in user space units,
// since the bounding box is already resolved by svgdraw
func toRasterxGradient(grad svgdraw.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgdraw.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
	case svgdraw.Radial:
		// in rasterx fr is ignored
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4]
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, stop := range grad.Stops {
		stops[i] = rasterx.GradStop{StopColor: stop.StopColor, Offset: stop.Offset, Opacity: stop.Opacity}
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgdraw.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch color := color.(type) {
	case svgdraw.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(color, opacity))
	case svgdraw.Gradient:
		grad := toRasterxGradient(color)
		scanner.SetColor(grad.GetColorFunction(opacity))
	}
}

// RasterToImage parses an SVG document and renders it into a new image.
// A non positive `width` or `height` is replaced by the size of the document.
func RasterToImage(source io.Reader, width, height int, opts svgtree.Options) (*image.RGBA, error) {
	if opts.Width == 0 {
		opts.Width = float32(width)
	}
	if opts.Height == 0 {
		opts.Height = float32(height)
	}
	doc, err := svgtree.Parse(source, opts)
	if err != nil {
		return nil, err
	}
	return Raster(doc, width, height), nil
}

// Raster renders `doc` into a new image, stretching the document
// viewport to the image size.
// A non positive `width` or `height` is replaced by the size of the document.
func Raster(doc *svgtree.Document, width, height int) *image.RGBA {
	w, h := svgdraw.Size(doc)
	if width <= 0 {
		width = int(math.Ceil(float64(w)))
	}
	if height <= 0 {
		height = int(math.Ceil(float64(h)))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	transform := svgscan.Identity
	if w > 0 && h > 0 {
		transform = transform.Scale(float64(width)/float64(w), float64(height)/float64(h))
	}
	svgdraw.Draw(doc, NewRenderer(img), svgdraw.Options{Transform: transform})
	return img
}
