package imaging

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourceDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), createInMemoryImage(40, 40, color.RGBA{0, 0, 255, 255}))
	writePNG(t, filepath.Join(dir, "a.png"), createInMemoryImage(60, 30, color.RGBA{255, 0, 0, 255}))
	writePNG(t, filepath.Join(dir, "c.png"), createInMemoryImage(8, 8, color.RGBA{0, 255, 0, 255}))
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	images, err := LoadSourceDir(NewImageCache(), dir, 8)
	if err != nil {
		t.Fatalf("LoadSourceDir failed: %v", err)
	}

	wantNames := []string{"a.png", "b.png", "c.png"}
	if len(images) != len(wantNames) {
		t.Fatalf("got %d images, want %d", len(images), len(wantNames))
	}
	for i, img := range images {
		if img.Name != wantNames[i] {
			t.Errorf("image %d: got %s, want %s", i, img.Name, wantNames[i])
		}
		b := img.Image.Bounds()
		if b.Dx() != 8 || b.Dy() != 8 {
			t.Errorf("%s: got %dx%d, want 8x8", img.Name, b.Dx(), b.Dy())
		}
	}
}

func TestLoadSourceDir_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		if _, err := LoadSourceDir(NewImageCache(), filepath.Join(t.TempDir(), "absent"), 8); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("invalid tile size", func(t *testing.T) {
		if _, err := LoadSourceDir(NewImageCache(), t.TempDir(), 0); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("undecodable image", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSourceDir(NewImageCache(), dir, 8); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestFitTile(t *testing.T) {
	src := createInMemoryImage(30, 50, color.RGBA{10, 20, 30, 255})

	got := FitTile(src, 10)
	if got.Bounds().Dx() != 10 || got.Bounds().Dy() != 10 {
		t.Fatalf("size: got %v", got.Bounds())
	}
	c := got.NRGBAAt(5, 5)
	if c.R < 9 || c.R > 11 || c.G < 19 || c.G > 21 || c.B < 29 || c.B > 31 {
		t.Errorf("color: got %v, want ~(10,20,30)", c)
	}

	same := FitTile(createInMemoryImage(10, 10, color.RGBA{1, 1, 1, 255}), 10)
	if same.NRGBAAt(0, 0) != (color.NRGBA{1, 1, 1, 255}) {
		t.Errorf("exact-size tile altered: %v", same.NRGBAAt(0, 0))
	}
}
