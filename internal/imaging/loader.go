package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache keeps decoded images keyed by file path so that repeated loads of
// the same target or source file skip decoding.
//
// Every Load stats the file; an entry whose modification time or size no
// longer matches is decoded again. ImageCache is safe for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img     image.Image
	modTime time.Time
	size    int64
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the decoded image at path, decoding it again whenever the file
// changed since it was cached.
//
// The path string is the cache key; a relative and an absolute path to the
// same file are cached separately.
func (c *ImageCache) Load(path string) (image.Image, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok && entry.modTime.Equal(stat.ModTime()) && entry.size == stat.Size() {
		return entry.img, nil
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = cachedImage{img: img, modTime: stat.ModTime(), size: stat.Size()}
	c.mu.Unlock()

	return img, nil
}

// Evict removes the image cached under path, if any. A nil cache is a no-op.
func (c *ImageCache) Evict(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// formatByExt maps lower-case file extensions to the decoder registered for them.
var formatByExt = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".webp": "webp",
}

// FormatOf returns the image format implied by the file extension, or
// "unknown" if the extension is not one the loader decodes.
func FormatOf(path string) string {
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return "unknown"
}

// IsImageFile reports whether path has an extension the loader can decode.
func IsImageFile(path string) bool {
	return FormatOf(path) != "unknown"
}

// ImageInfo describes an image file on disk.
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"`       // from the file extension
	ColorDepth    string `json:"color_depth"`  // "8-bit" or "16-bit"
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	// MaxTiles is the number of square tiles of TileSize a mosaic of this
	// image would contain; zero when no tile size was given.
	MaxTiles int `json:"max_tiles,omitempty"`
	TileSize int `json:"tile_size,omitempty"`
}

// LoadImageInfo loads the image at path through cache and reports its
// metadata. When tileSize is positive the number of mosaic cells the image
// yields at that tile size is included.
func LoadImageInfo(cache *ImageCache, path string, tileSize int) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatOf(path),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}
	if tileSize > 0 {
		info.TileSize = tileSize
		info.MaxTiles = cellsAlong(info.Width, tileSize) * cellsAlong(info.Height, tileSize)
	}
	return info, nil
}

// cellsAlong counts tile origins k*size with k*size+size <= extent-1.
func cellsAlong(extent, size int) int {
	if extent < 1 {
		return 0
	}
	return (extent - 1) / size
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
