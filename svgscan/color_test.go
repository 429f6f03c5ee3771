package svgscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected Color
	}{
		{"#fff", Color{255, 255, 255, 255}},
		{"#1a2B3c", Color{0x1a, 0x2b, 0x3c, 255}},
		{"red", Color{255, 0, 0, 255}},
		{"CornflowerBlue", Color{100, 149, 237, 255}},
		{"transparent", Color{}},
		{"rgb(10, 20, 30)", Color{10, 20, 30, 255}},
		{"rgb(300,-5,12.7)", Color{255, 0, 12, 255}},
		{"rgb(100%, 50%, 0%)", Color{255, 127, 0, 255}},
		{"rgb(150%,-10%,0)", Color{255, 0, 0, 255}},
		{"RGB( 1 2 3 )", Color{1, 2, 3, 255}},
		{"rgba(1,2,3,0.5)", Color{1, 2, 3, 127}},
	} {
		got, err := ParseColor(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.expected, got, test.input)
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, input := range []string{
		"", "#12", "#12345", "#ggg", "notacolor", "rgb(1,2)", "rgb(1,2,3",
	} {
		_, err := ParseColor(input)
		assert.ErrorIs(t, err, ErrColor, input)
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#0a141e", Color{10, 20, 30, 255}.String())
	assert.Equal(t, "rgba(1,2,3,4)", Color{1, 2, 3, 4}.String())
	_, _, _, a := Color{0, 0, 0, 255}.RGBA()
	assert.Equal(t, uint32(0xffff), a)
}
