package mosaic

import (
	"image"
	"image/color"
)

// createUniformImage creates an in-memory image filled with a single color
func createUniformImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// gray returns an opaque gray level
func gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 255}
}

// testCatalog builds a catalog of uniform tiles, in the given order
func testCatalog(size int, ids []string, colors []color.RGBA) *Catalog {
	sources := make([]Source, len(ids))
	for i, id := range ids {
		sources[i] = Source{ID: id, Image: createUniformImage(size, size, colors[i])}
	}
	cat, err := Build(sources)
	if err != nil {
		panic(err)
	}
	return cat
}
