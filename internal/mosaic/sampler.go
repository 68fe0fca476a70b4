package mosaic

import (
	"fmt"
	"image"
	"image/color"
)

// Tile is a square region of an image, addressed by its top-left (Row, Col)
// corner and side length Size.
type Tile struct {
	Row  int `json:"row"`
	Col  int `json:"col"`
	Size int `json:"size"`
}

// Rect converts the tile into an image.Rectangle (X = Col, Y = Row).
func (t Tile) Rect() image.Rectangle {
	return image.Rect(t.Col, t.Row, t.Col+t.Size, t.Row+t.Size)
}

// MeanColorOf computes the mean color of region r within img.
//
// Alpha is ignored: each pixel is converted to non-premultiplied 8-bit RGB
// before summing. The region must be non-empty and lie entirely inside the
// image bounds.
//
// # Errors
//
//   - ErrEmptyRegion if r contains no pixels
//   - ErrOutOfBounds if r is not contained in img.Bounds()
func MeanColorOf(img image.Image, r image.Rectangle) (MeanColor, error) {
	if r.Empty() {
		return MeanColor{}, fmt.Errorf("%w: %v", ErrEmptyRegion, r)
	}
	bounds := img.Bounds()
	if !r.In(bounds) {
		return MeanColor{}, fmt.Errorf("%w: region %v, image %v", ErrOutOfBounds, r, bounds)
	}

	var rSum, gSum, bSum uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rSum += uint64(c.R)
			gSum += uint64(c.G)
			bSum += uint64(c.B)
		}
	}

	n := float64(r.Dx() * r.Dy())
	return MeanColor{
		R: float64(rSum) / n,
		G: float64(gSum) / n,
		B: float64(bSum) / n,
	}, nil
}

// ImageMeanColor computes the mean color over the whole of img.
func ImageMeanColor(img image.Image) (MeanColor, error) {
	return MeanColorOf(img, img.Bounds())
}
