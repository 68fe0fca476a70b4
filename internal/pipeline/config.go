package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/mosaic-mcp/internal/imaging"
)

// Defaults used when a Config field is left at its zero value.
const (
	DefaultTileSize  = 20
	DefaultCachePath = "mean_rgb_cache.json"
)

// Config carries everything one mosaic run needs. It replaces process-wide
// settings: every run receives its own value.
type Config struct {
	// SourceDir holds the source images used as tiles.
	SourceDir string `json:"source_dir"`
	// TargetPath is the image to rebuild as a mosaic.
	TargetPath string `json:"target_path"`
	// TileSize is the side length of each square tile, in pixels.
	TileSize int `json:"tile_size"`
	// CachePath is the JSON signature cache. It defaults to DefaultCachePath
	// inside SourceDir so each source directory keeps its own signatures.
	CachePath string `json:"cache_path"`
	NoCache   bool   `json:"no_cache"`
	// OutputPath receives the composite; empty means the caller handles the image.
	OutputPath string `json:"output_path"`
	// GridColor, when set, outlines every tile of the composite in this "#rrggbb" color.
	GridColor string `json:"grid_color"`
}

// WithDefaults returns a copy of c with zero-valued fields filled in.
func (c Config) WithDefaults() Config {
	if c.TileSize == 0 {
		c.TileSize = DefaultTileSize
	}
	if c.CachePath == "" && !c.NoCache {
		c.CachePath = filepath.Join(c.SourceDir, DefaultCachePath)
	}
	return c
}

// Validate checks the fields needed to compose a mosaic.
func (c Config) Validate() error {
	var errs []error
	if c.SourceDir == "" {
		errs = append(errs, errors.New("source directory is required"))
	}
	if c.TargetPath == "" {
		errs = append(errs, errors.New("target image is required"))
	}
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile size must be positive, got %d", c.TileSize))
	}
	if c.OutputPath != "" && !imaging.CanSave(c.OutputPath) {
		errs = append(errs, fmt.Errorf("unsupported output format for %s", c.OutputPath))
	}
	return errors.Join(errs...)
}
