package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SquareCrop cuts img down to its top-left min(width, height) square.
func SquareCrop(img image.Image) *image.NRGBA {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	return imaging.CropAnchor(img, side, side, imaging.TopLeft)
}

// SquareDirResult reports what SquareDir did.
type SquareDirResult struct {
	SourceDir string   `json:"source_dir"`
	DestDir   string   `json:"dest_dir"`
	Squared   []string `json:"squared"`
	Skipped   []string `json:"skipped,omitempty"` // decodable but not encodable under the same name
}

// SquareDir square-crops every image file in srcDir and writes the results
// under the same names into dstDir, creating dstDir if needed. Each written
// path is evicted from cache, which may be nil. dstDir must differ from srcDir.
func SquareDir(cache *ImageCache, srcDir, dstDir string) (*SquareDirResult, error) {
	same, err := sameDir(srcDir, dstDir)
	if err != nil {
		return nil, err
	}
	if same {
		return nil, fmt.Errorf("destination %s would overwrite the source images", dstDir)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	result := &SquareDirResult{SourceDir: srcDir, DestDir: dstDir, Squared: []string{}}
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		if !CanSave(e.Name()) {
			result.Skipped = append(result.Skipped, e.Name())
			continue
		}
		img, err := decodeFile(filepath.Join(srcDir, e.Name()))
		if err != nil {
			return nil, err
		}
		dst := filepath.Join(dstDir, e.Name())
		if err := Save(dst, SquareCrop(img)); err != nil {
			return nil, err
		}
		cache.Evict(dst)
		result.Squared = append(result.Squared, e.Name())
	}
	return result, nil
}

// sameDir reports whether a and b name the same directory.
func sameDir(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", b, err)
	}
	if absA == absB {
		return true, nil
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB), nil
}
