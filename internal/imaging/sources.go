package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// NamedImage is a decoded image together with the file name it was loaded from.
type NamedImage struct {
	Name  string
	Image image.Image
}

// LoadSourceDir decodes every image file directly inside dir and returns them
// squared and scaled to size x size, ordered by file name.
//
// Files whose extension is not a supported image format are skipped, as are
// subdirectories. A file that has a supported extension but fails to decode
// aborts the load. Non-square images are cut to their top-left square first.
func LoadSourceDir(cache *ImageCache, dir string, size int) ([]NamedImage, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid tile size %d", size)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	images := make([]NamedImage, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		img, err := cache.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		images = append(images, NamedImage{
			Name:  e.Name(),
			Image: FitTile(img, size),
		})
	}
	return images, nil
}

// FitTile squares img from its top-left corner and scales it to size x size
// with Lanczos resampling. An image that already has that size is copied as-is.
func FitTile(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return imaging.Clone(img)
	}
	return imaging.Fill(img, size, size, imaging.TopLeft, imaging.Lanczos)
}
