package mosaic

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Background fills the parts of the canvas no tile covers.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Placement records which catalog entry was chosen for one grid cell.
type Placement struct {
	Tile     Tile      `json:"tile"`
	ID       string    `json:"id"`
	Color    MeanColor `json:"color"`
	Distance float64   `json:"distance"`
}

// Cells returns the grid cells processed for an image of the given bounds.
//
// Cells are T x T squares at stride T starting at bounds.Min, visited in
// row-major order. A cell is kept only while col+T <= W-1 and row+T <= H-1
// (offsets relative to bounds.Min), so the last row and column of pixels are
// never covered and any strip narrower than T is dropped rather than clipped.
func Cells(bounds image.Rectangle, tileSize int) ([]Tile, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSize, tileSize)
	}
	w, h := bounds.Dx(), bounds.Dy()

	var tiles []Tile
	for row := 0; row+tileSize <= h-1; row += tileSize {
		for col := 0; col+tileSize <= w-1; col += tileSize {
			tiles = append(tiles, Tile{
				Row:  bounds.Min.Y + row,
				Col:  bounds.Min.X + col,
				Size: tileSize,
			})
		}
	}
	return tiles, nil
}

// Plan samples every grid cell of target and matches it against the catalog.
// Placements are returned in the order of Cells.
func Plan(target image.Image, cat *Catalog, tileSize int) ([]Placement, error) {
	if cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	tiles, err := Cells(target.Bounds(), tileSize)
	if err != nil {
		return nil, err
	}

	placements := make([]Placement, 0, len(tiles))
	for _, t := range tiles {
		mc, err := MeanColorOf(target, t.Rect())
		if err != nil {
			return nil, fmt.Errorf("cell (%d,%d): %w", t.Row, t.Col, err)
		}
		m, err := cat.Nearest(mc)
		if err != nil {
			return nil, fmt.Errorf("cell (%d,%d): %w", t.Row, t.Col, err)
		}
		placements = append(placements, Placement{
			Tile:     t,
			ID:       m.Entry.ID,
			Color:    mc,
			Distance: m.Distance,
		})
	}
	return placements, nil
}

// Render creates a canvas with the given bounds and pastes the matched source
// image for each placement at its cell, overwriting what is there.
//
// Source pixels are pasted fully opaque, alpha dropped as in sampling. A source
// image whose size differs from the cell is scaled to fit with Catmull-Rom
// resampling.
func Render(bounds image.Rectangle, cat *Catalog, placements []Placement) (*image.NRGBA, error) {
	canvas := image.NewNRGBA(bounds)
	xdraw.Draw(canvas, bounds, image.NewUniform(Background), image.Point{}, xdraw.Src)

	tiles := make(map[string]*image.NRGBA)
	for _, p := range placements {
		e, ok := cat.Lookup(p.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingSource, p.ID)
		}
		dst := p.Tile.Rect()
		if !dst.In(bounds) {
			return nil, fmt.Errorf("%w: cell %v, canvas %v", ErrOutOfBounds, dst, bounds)
		}
		img, ok := tiles[p.ID]
		if !ok {
			img = opaque(e.Image)
			tiles[p.ID] = img
		}
		src := img.Bounds()
		if src.Dx() == dst.Dx() && src.Dy() == dst.Dy() {
			xdraw.Draw(canvas, dst, img, src.Min, xdraw.Src)
		} else {
			xdraw.CatmullRom.Scale(canvas, dst, img, src, xdraw.Src, nil)
		}
	}
	return canvas, nil
}

// opaque copies img with every pixel's alpha forced to 255, keeping the
// non-premultiplied RGB values the sampler measured.
func opaque(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = 255
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// Compose builds the mosaic of target from the catalog using square tiles of
// side tileSize. The output has the same bounds as target.
//
// Composition either completes or fails as a whole: any sampling or matching
// error aborts it and no canvas is returned.
func Compose(target image.Image, cat *Catalog, tileSize int) (*image.NRGBA, error) {
	placements, err := Plan(target, cat, tileSize)
	if err != nil {
		return nil, err
	}
	return Render(target.Bounds(), cat, placements)
}
