package imaging

import (
	"image"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor holds real-valued RGB components in [0, 255].
type RGBColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one color in several notations.
type ColorResult struct {
	Hex string   `json:"hex"` // "#rrggbb", rounded
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// DescribeColor reports an RGB triple (components in [0, 255]) as hex, RGB
// and HSL. Values outside the range are clamped for the hex and HSL forms.
func DescribeColor(r, g, b float64) ColorResult {
	c := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped()
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// DominantColor returns the most prominent color of img, found by k-means
// clustering over its pixels.
func DominantColor(img image.Image) ColorResult {
	c := dominantcolor.Find(img)
	return DescribeColor(float64(c.R), float64(c.G), float64(c.B))
}
