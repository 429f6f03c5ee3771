package svgraster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtree/svgtree"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, m); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func raster(t *testing.T, source string, width, height int) *image.RGBA {
	t.Helper()
	img, err := RasterToImage(strings.NewReader(source), width, height, svgtree.DefaultOptions())
	require.NoError(t, err)
	return img
}

// assertColor checks the pixel at (x, y), with a tolerance for antialiasing
func assertColor(t *testing.T, img *image.RGBA, x, y int, expected color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	near := func(a, b uint8) bool { d := int(a) - int(b); return -8 <= d && d <= 8 }
	if !(near(got.R, expected.R) && near(got.G, expected.G) && near(got.B, expected.B) && near(got.A, expected.A)) {
		t.Errorf("pixel (%d, %d): expected %v, got %v", x, y, expected, got)
	}
}

var (
	transparent = color.RGBA{}
	opaqueRed   = color.RGBA{R: 0xFF, A: 0xFF}
	opaqueBlue  = color.RGBA{B: 0xFF, A: 0xFF}
)

func TestFill(t *testing.T) {
	img := raster(t, `<svg width="10" height="10">
		<rect x="2" y="2" width="4" height="4" fill="red"/>
	</svg>`, 0, 0)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	assertColor(t, img, 3, 3, opaqueRed)
	assertColor(t, img, 5, 5, opaqueRed)
	assertColor(t, img, 8, 8, transparent)
	assertColor(t, img, 1, 1, transparent)
}

func TestScaledViewBox(t *testing.T) {
	img := raster(t, `<svg viewBox="0 0 10 10">
		<rect x="2" y="2" width="4" height="4" fill="red"/>
	</svg>`, 20, 20)
	assertColor(t, img, 6, 6, opaqueRed)
	assertColor(t, img, 11, 11, opaqueRed)
	assertColor(t, img, 14, 14, transparent)
}

func TestStroke(t *testing.T) {
	img := raster(t, `<svg width="10" height="10">
		<line x1="0" y1="5" x2="10" y2="5" stroke="blue" stroke-width="2"/>
	</svg>`, 0, 0)
	assertColor(t, img, 5, 4, opaqueBlue)
	assertColor(t, img, 5, 5, opaqueBlue)
	assertColor(t, img, 5, 8, transparent)
}

func TestOpacity(t *testing.T) {
	img := raster(t, `<svg width="10" height="10">
		<rect width="10" height="10" fill="red" fill-opacity="0.5"/>
	</svg>`, 0, 0)
	got := img.RGBAAt(5, 5)
	assert.InDelta(t, 0x80, int(got.A), 4)
	assert.InDelta(t, 0x80, int(got.R), 4) // premultiplied
}

func TestGradient(t *testing.T) {
	img := raster(t, `<svg width="20" height="10">
		<linearGradient id="g">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue"/>
		</linearGradient>
		<rect width="20" height="10" fill="url(#g)"/>
	</svg>`, 0, 0)
	left, right := img.RGBAAt(1, 5), img.RGBAAt(18, 5)
	assert.Greater(t, left.R, left.B)
	assert.Greater(t, right.B, right.R)
	assert.Equal(t, uint8(0xFF), left.A)
}

func TestImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			src.Set(x, y, color.RGBA{G: 0xFF, A: 0xFF})
		}
	}
	b, err := toPngBytes(src)
	require.NoError(t, err)
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(b)

	img := raster(t, fmt.Sprintf(`<svg width="10" height="10">
		<image href="%s" x="2" y="2" width="6" height="6"/>
	</svg>`, href), 0, 0)
	assertColor(t, img, 4, 4, color.RGBA{G: 0xFF, A: 0xFF})
	assertColor(t, img, 0, 0, transparent)
}

func TestIcon(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "svgtree", "testdata", "icon.svg"))
	require.NoError(t, err)
	defer f.Close()

	img, err := RasterToImage(f, 0, 0, svgtree.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
	// the background gradient covers the whole icon
	assert.Equal(t, uint8(0xFF), img.RGBAAt(32, 2).A)

	b, err := toPngBytes(img)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(t.TempDir(), "icon.png"), b, 0o644))
}
