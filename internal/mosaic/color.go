package mosaic

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// MeanColor is the per-channel arithmetic mean of a pixel region.
//
// Components are real numbers in [0, 255]. On the wire a MeanColor is a
// 3-element JSON array [r, g, b].
type MeanColor struct {
	R float64
	G float64
	B float64
}

// Valid reports whether every component is a finite value in [0, 255].
func (c MeanColor) Valid() bool {
	for _, v := range c.components() {
		if math.IsNaN(v) || v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Hex renders the color as "#rrggbb", rounding each component.
func (c MeanColor) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts the color into go-colorful's normalized [0, 1] representation.
func (c MeanColor) Colorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

func (c MeanColor) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B)
}

func (c MeanColor) components() []float64 {
	return []float64{c.R, c.G, c.B}
}

// MarshalJSON encodes the color as [r, g, b].
func (c MeanColor) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.components())
}

// UnmarshalJSON decodes a 3-element numeric array. Any other shape, or a
// component outside [0, 255], is reported as ErrCacheCorrupt.
func (c *MeanColor) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	if len(v) != 3 {
		return fmt.Errorf("%w: expected 3 components, got %d", ErrCacheCorrupt, len(v))
	}
	mc := MeanColor{R: v[0], G: v[1], B: v[2]}
	if !mc.Valid() {
		return fmt.Errorf("%w: component out of range in %v", ErrCacheCorrupt, mc)
	}
	*c = mc
	return nil
}

// Distance returns the Euclidean distance between two colors in RGB space.
// It is symmetric and zero only for identical colors.
func Distance(p, q MeanColor) float64 {
	return floats.Distance(p.components(), q.components(), 2)
}
