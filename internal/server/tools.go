package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// catalogProperties are the arguments shared by every tool that needs a catalog.
func catalogProperties() map[string]interface{} {
	return map[string]interface{}{
		"source_dir": map[string]interface{}{
			"type":        "string",
			"description": "Directory of source images used as tiles",
		},
		"tile_size": map[string]interface{}{
			"type":        "integer",
			"description": "Side length of each square tile in pixels (default: 20)",
			"default":     20,
		},
		"cache_path": map[string]interface{}{
			"type":        "string",
			"description": "JSON file holding the mean-color signature cache (default: mean_rgb_cache.json inside source_dir). An existing cache is trusted even if the source images changed.",
		},
		"no_cache": map[string]interface{}{
			"type":        "boolean",
			"description": "Sample every source image and skip the signature cache entirely",
			"default":     false,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	nearestProps := catalogProperties()
	for _, ch := range []string{"r", "g", "b"} {
		nearestProps[ch] = map[string]interface{}{
			"type":        "number",
			"description": "Query color channel (0-255)",
		}
	}

	composeProps := catalogProperties()
	composeProps["target_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image to rebuild as a mosaic",
	}
	composeProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Where to save the mosaic (.png, .jpg or .bmp). When omitted the mosaic is returned as base64 PNG.",
	}
	composeProps["grid_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Outline every tile in this hex color, e.g. \"#ff0000\"",
	}
	composeProps["include_image"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Also return the mosaic as base64 PNG when output_path is set",
		"default":     false,
	}
	composeProps["include_placements"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return the matched source for every tile",
		"default":     false,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. With tile_size, also reports how many mosaic tiles the image yields.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"tile_size": map[string]interface{}{
						"type":        "integer",
						"description": "Optional tile size used to count mosaic tiles",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Signatures
		{
			Name:        "mosaic_mean_color",
			Description: "Compute the mean RGB color of an image or of a rectangular region of it. This is the signature used to match tiles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based, inclusive)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based, inclusive)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive). Omit the region to use the whole image.",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Source Preparation
		{
			Name:        "mosaic_square_sources",
			Description: "Crop every image in a directory to its top-left square and write the results to another directory.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory of original images",
					},
					"dest_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the squared images (created if missing)",
					},
				},
				"required": []string{"source_dir", "dest_dir"},
			},
		},

		// Catalog
		{
			Name:        "mosaic_build_catalog",
			Description: "Load the source images, compute (or restore from cache) their mean colors, list the catalog in match order, and flag near-duplicate sources by perceptual hash.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": catalogProperties(),
				"required":   []string{"source_dir"},
			},
		},
		{
			Name:        "mosaic_nearest",
			Description: "Find the source image whose mean color is closest (Euclidean RGB distance) to a query color. Ties go to the first source in file-name order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": nearestProps,
				"required":   []string{"source_dir", "r", "g", "b"},
			},
		},

		// Composition
		{
			Name:        "mosaic_compose",
			Description: "Rebuild a target image as a photographic mosaic of the source images. Tiles that would cross the right or bottom edge are left blank (white).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": composeProps,
				"required":   []string{"source_dir", "target_path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
