package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/mosaic-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-mcp/internal/mosaic"
	"github.com/ironsheep/mosaic-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "mosaic_compose").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Signatures
	case "mosaic_mean_color":
		return s.handleMeanColor(args)

	// Source Preparation
	case "mosaic_square_sources":
		return s.handleSquareSources(args)

	// Catalog
	case "mosaic_build_catalog":
		return s.handleBuildCatalog(args)
	case "mosaic_nearest":
		return s.handleNearest(args)

	// Composition
	case "mosaic_compose":
		return s.handleCompose(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. Empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path     string `json:"path"`
	TileSize int    `json:"tile_size"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path, a.TileSize)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Signature Handlers ===

type meanColorArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

type meanColorResult struct {
	Region imaging.DimensionsResult `json:"region_size"`
	Mean   mosaic.MeanColor         `json:"mean"`
	Color  imaging.ColorResult      `json:"color"`
}

func (s *Server) handleMeanColor(args json.RawMessage) (interface{}, error) {
	var a meanColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	region := img.Bounds()
	if a.X2 != 0 || a.Y2 != 0 {
		region = image.Rect(a.X1, a.Y1, a.X2, a.Y2)
	}
	mc, err := mosaic.MeanColorOf(img, region)
	if err != nil {
		return nil, err
	}
	return &meanColorResult{
		Region: imaging.DimensionsResult{Width: region.Dx(), Height: region.Dy()},
		Mean:   mc,
		Color:  imaging.DescribeColor(mc.R, mc.G, mc.B),
	}, nil
}

// === Source Preparation Handlers ===

type squareSourcesArgs struct {
	SourceDir string `json:"source_dir"`
	DestDir   string `json:"dest_dir"`
}

func (s *Server) handleSquareSources(args json.RawMessage) (interface{}, error) {
	var a squareSourcesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.SourceDir == "" || a.DestDir == "" {
		return nil, fmt.Errorf("source_dir and dest_dir are required")
	}
	return imaging.SquareDir(s.cache, a.SourceDir, a.DestDir)
}

// === Catalog Handlers ===

type catalogArgs struct {
	SourceDir string `json:"source_dir"`
	TileSize  int    `json:"tile_size"`
	CachePath string `json:"cache_path"`
	NoCache   bool   `json:"no_cache"`
}

func (a catalogArgs) config() (pipeline.Config, error) {
	if a.SourceDir == "" {
		return pipeline.Config{}, fmt.Errorf("source_dir is required")
	}
	cfg := pipeline.Config{
		SourceDir: a.SourceDir,
		TileSize:  a.TileSize,
		CachePath: a.CachePath,
		NoCache:   a.NoCache,
	}.WithDefaults()
	if cfg.TileSize <= 0 {
		return pipeline.Config{}, fmt.Errorf("tile_size must be positive, got %d", cfg.TileSize)
	}
	return cfg, nil
}

type catalogEntry struct {
	ID       string              `json:"id"`
	Mean     mosaic.MeanColor    `json:"mean"`
	Color    imaging.ColorResult `json:"color"`
	Dominant imaging.ColorResult `json:"dominant"`
}

type catalogResult struct {
	Count     int            `json:"count"`
	TileSize  int            `json:"tile_size"`
	FromCache bool           `json:"from_cache"`
	CachePath string         `json:"cache_path,omitempty"`
	Entries   []catalogEntry `json:"entries"`

	// Similar lists near-duplicate sources by perceptual hash.
	Similar []imaging.SimilarPair `json:"similar_sources"`
}

func (s *Server) handleBuildCatalog(args json.RawMessage) (interface{}, error) {
	var a catalogArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	cr, err := s.pipeline.Catalog(cfg)
	if err != nil {
		return nil, err
	}

	entries := make([]catalogEntry, 0, cr.Catalog.Len())
	named := make([]imaging.NamedImage, 0, cr.Catalog.Len())
	for _, e := range cr.Catalog.Entries() {
		named = append(named, imaging.NamedImage{Name: e.ID, Image: e.Image})
		entries = append(entries, catalogEntry{
			ID:       e.ID,
			Mean:     e.Color,
			Color:    imaging.DescribeColor(e.Color.R, e.Color.G, e.Color.B),
			Dominant: imaging.DominantColor(e.Image),
		})
	}
	similar, err := imaging.SimilarSources(named, imaging.MaxHashDistance)
	if err != nil {
		return nil, err
	}
	return &catalogResult{
		Count:     len(entries),
		TileSize:  cfg.TileSize,
		FromCache: cr.FromCache,
		CachePath: cfg.CachePath,
		Entries:   entries,
		Similar:   similar,
	}, nil
}

type nearestArgs struct {
	catalogArgs
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

type nearestResult struct {
	ID       string           `json:"id"`
	Distance float64          `json:"distance"`
	Mean     mosaic.MeanColor `json:"mean"`
	Query    mosaic.MeanColor `json:"query"`
}

func (s *Server) handleNearest(args json.RawMessage) (interface{}, error) {
	var a nearestArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	query := mosaic.MeanColor{R: a.R, G: a.G, B: a.B}
	if !query.Valid() {
		return nil, fmt.Errorf("query color %v outside 0-255", query)
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	cr, err := s.pipeline.Catalog(cfg)
	if err != nil {
		return nil, err
	}

	m, err := cr.Catalog.Nearest(query)
	if err != nil {
		return nil, err
	}
	return &nearestResult{
		ID:       m.Entry.ID,
		Distance: m.Distance,
		Mean:     m.Entry.Color,
		Query:    query,
	}, nil
}

// === Composition Handlers ===

type composeArgs struct {
	catalogArgs
	TargetPath        string `json:"target_path"`
	OutputPath        string `json:"output_path"`
	GridColor         string `json:"grid_color"`
	IncludeImage      bool   `json:"include_image"`
	IncludePlacements bool   `json:"include_placements"`
}

type composeResult struct {
	*pipeline.Result
	Image      *imaging.EncodedImage `json:"image,omitempty"`
	Placements []mosaic.Placement    `json:"placements,omitempty"`
}

func (s *Server) handleCompose(args json.RawMessage) (interface{}, error) {
	var a composeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	cfg.TargetPath = a.TargetPath
	cfg.OutputPath = a.OutputPath
	cfg.GridColor = a.GridColor

	res, err := s.pipeline.Run(cfg)
	if err != nil {
		return nil, err
	}

	out := &composeResult{Result: res}
	if a.OutputPath == "" || a.IncludeImage {
		out.Image, err = imaging.EncodePNG(res.Image)
		if err != nil {
			return nil, err
		}
	}
	if a.IncludePlacements {
		out.Placements = res.Placements
	}
	return out, nil
}
