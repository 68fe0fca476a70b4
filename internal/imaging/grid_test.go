package imaging

import (
	"image/color"
	"testing"
)

func TestTileGrid(t *testing.T) {
	img := createInMemoryImage(20, 20, color.RGBA{0, 0, 0, 255})

	out, err := TileGrid(img, 5, "#00ff00")
	if err != nil {
		t.Fatalf("TileGrid failed: %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}

	green := color.NRGBA{0, 255, 0, 255}
	black := color.NRGBA{0, 0, 0, 255}

	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, green},
		{5, 3, green},
		{3, 10, green},
		{3, 3, black},
		{7, 12, black},
	}
	for _, c := range checks {
		if got := out.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", c.x, c.y, got, c.want)
		}
	}

	// The input is left untouched
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Error("TileGrid modified its input")
	}
}

func TestTileGrid_DefaultColor(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 255, 255, 255})

	out, err := TileGrid(img, 4, "")
	if err != nil {
		t.Fatalf("TileGrid failed: %v", err)
	}
	if got := out.NRGBAAt(4, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("grid pixel: got %v, want red", got)
	}
}

func TestTileGrid_InvalidInput(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name string
		size int
		hex  string
	}{
		{"zero tile size", 0, "#ff0000"},
		{"bad color", 5, "not-a-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TileGrid(img, tt.size, tt.hex); err == nil {
				t.Error("TileGrid should fail")
			}
		})
	}
}
