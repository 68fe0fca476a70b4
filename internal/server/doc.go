// Package server implements the MCP (Model Context Protocol) server for
// photomosaic composition.
//
// The server speaks JSON-RPC 2.0 over stdio and exposes the mosaic pipeline
// as tools, so an MCP client can inspect source images, build the color
// catalog and compose mosaics.
//
// # Protocol
//
// One JSON-RPC request per line on stdin, one response per line on stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata, optionally the tile count
//   - image_dimensions: Get width and height
//
// Color Signatures:
//   - mosaic_mean_color: Mean RGB of an image or a region
//
// Source Preparation:
//   - mosaic_square_sources: Crop a directory of images to squares
//
// Catalog:
//   - mosaic_build_catalog: Sample or restore source mean colors
//   - mosaic_nearest: Find the source closest to a color
//
// Composition:
//   - mosaic_compose: Build a mosaic and save or return it
//
// # Caching
//
// Decoded images are cached by path and decoded again when the file changes. Mean
// colors of source images are persisted in a JSON signature cache file and
// reused on later runs even if the source directory has changed.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(debug)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
