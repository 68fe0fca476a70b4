// Package imaging provides the image I/O and preparation steps around the
// mosaic engine.
//
// It decodes images from disk (PNG, JPEG, GIF, BMP, WebP) through a shared
// ImageCache, loads a directory of source images and squares and scales them
// to the tile size, pre-crops source directories to squares, describes colors
// for reporting, overlays the tile grid on a composite, and writes finished
// images out.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: horizontal position (column)
//   - Y: vertical position (row)
//   - For regions, (x1,y1) is inclusive and (x2,y2) is exclusive
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function is
// stateless and never mutates its input images.
//
// # Square Cropping
//
// Source images are cut to their top-left min(width, height) square before
// scaling, so a landscape photo keeps its left edge and a portrait photo keeps
// its top edge.
package imaging
