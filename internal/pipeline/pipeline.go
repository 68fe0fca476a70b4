// Package pipeline wires image loading, the signature cache, the mosaic engine
// and the output sink into a single run driven by a Config.
package pipeline

import (
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/mosaic-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-mcp/internal/mosaic"
)

// Pipeline runs mosaics against a shared image cache.
type Pipeline struct {
	cache *imaging.ImageCache
	debug bool
}

// New returns a pipeline that loads images through cache. With debug set,
// every sampled source image is logged.
func New(cache *imaging.ImageCache, debug bool) *Pipeline {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Pipeline{cache: cache, debug: debug}
}

// CatalogResult is a loaded catalog plus how it was obtained.
type CatalogResult struct {
	Catalog   *mosaic.Catalog
	FromCache bool
}

// Catalog loads the source directory and restores the catalog from the
// signature cache, sampling and persisting it if the cache is empty.
func (p *Pipeline) Catalog(cfg Config) (*CatalogResult, error) {
	named, err := imaging.LoadSourceDir(p.cache, cfg.SourceDir, cfg.TileSize)
	if err != nil {
		return nil, err
	}
	sources := make([]mosaic.Source, len(named))
	for i, n := range named {
		sources[i] = mosaic.Source{ID: n.Name, Image: n.Image}
	}

	var cache mosaic.SignatureCache
	if !cfg.NoCache && cfg.CachePath != "" {
		cache = mosaic.NewJSONCache(cfg.CachePath)
	}

	cat, fromCache, err := mosaic.LoadOrBuild(sources, cache)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.SourceDir, err)
	}
	if p.debug {
		if fromCache {
			log.Printf("Restored %d signatures from %s", cat.Len(), cfg.CachePath)
		} else {
			for _, e := range cat.Entries() {
				log.Printf("Processed %s mean=%s", e.ID, e.Color.Hex())
			}
		}
	}
	return &CatalogResult{Catalog: cat, FromCache: fromCache}, nil
}

// Result summarises a finished run.
type Result struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	TileSize    int            `json:"tile_size"`
	Cells       int            `json:"cells"`
	DistinctIDs int            `json:"distinct_tiles"`
	Usage       map[string]int `json:"usage"`
	FromCache   bool           `json:"from_cache"`
	OutputPath  string         `json:"output_path,omitempty"`

	Image      image.Image        `json:"-"`
	Placements []mosaic.Placement `json:"-"`
}

// Run composes the mosaic described by cfg. When cfg.OutputPath is set the
// composite is saved there; it is always returned in Result.Image.
func (p *Pipeline) Run(cfg Config) (*Result, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cr, err := p.Catalog(cfg)
	if err != nil {
		return nil, err
	}

	target, err := p.cache.Load(cfg.TargetPath)
	if err != nil {
		return nil, err
	}

	placements, err := mosaic.Plan(target, cr.Catalog, cfg.TileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to compose %s: %w", cfg.TargetPath, err)
	}
	canvas, err := mosaic.Render(target.Bounds(), cr.Catalog, placements)
	if err != nil {
		return nil, fmt.Errorf("failed to compose %s: %w", cfg.TargetPath, err)
	}

	var out image.Image = canvas
	if cfg.GridColor != "" {
		out, err = imaging.TileGrid(canvas, cfg.TileSize, cfg.GridColor)
		if err != nil {
			return nil, err
		}
	}

	if cfg.OutputPath != "" {
		if err := imaging.Save(cfg.OutputPath, out); err != nil {
			return nil, err
		}
		if p.debug {
			log.Printf("Wrote %dx%d mosaic to %s", out.Bounds().Dx(), out.Bounds().Dy(), cfg.OutputPath)
		}
	}

	usage := make(map[string]int)
	for _, pl := range placements {
		usage[pl.ID]++
	}
	return &Result{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		TileSize:    cfg.TileSize,
		Cells:       len(placements),
		DistinctIDs: len(usage),
		Usage:       usage,
		FromCache:   cr.FromCache,
		OutputPath:  cfg.OutputPath,
		Image:       out,
		Placements:  placements,
	}, nil
}
