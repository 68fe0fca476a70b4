package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGridColor is drawn when no grid color is given.
const DefaultGridColor = "#ff0000"

// TileGrid returns a copy of img with a one-pixel line drawn along the top and
// left edge of every tileSize cell, so each pasted tile is outlined.
//
// gridColorHex is a "#rrggbb" string; an empty string selects DefaultGridColor.
func TileGrid(img image.Image, tileSize int, gridColorHex string) (*image.NRGBA, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %d", tileSize)
	}
	if gridColorHex == "" {
		gridColorHex = DefaultGridColor
	}
	cf, err := colorful.Hex(gridColorHex)
	if err != nil {
		return nil, fmt.Errorf("invalid grid color %q: %w", gridColorHex, err)
	}
	r, g, b := cf.RGB255()
	line := color.NRGBA{R: r, G: g, B: b, A: 255}

	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for x := bounds.Min.X; x < bounds.Max.X; x += tileSize {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			out.SetNRGBA(x, y, line)
		}
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y += tileSize {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetNRGBA(x, y, line)
		}
	}
	return out, nil
}
