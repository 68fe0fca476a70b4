// Package mosaic implements the tile-matching engine behind a photographic mosaic.
//
// A target image is cut into a grid of square tiles. Each tile is reduced to its
// mean RGB color, the closest source image in a Catalog is looked up by Euclidean
// distance in RGB space, and the matched source image is pasted into an output
// canvas at the same position.
//
// # Coordinate Convention
//
// Pixels are addressed as (row, col), where row is the Y axis and col is the X
// axis of the underlying image.Image. A Tile stores its top-left corner in that
// order and converts to an image.Rectangle with Rect().
//
// # Determinism
//
// A Catalog preserves the order its entries were added in. Nearest-match ties are
// resolved in favour of the earliest entry, and grid cells are visited row-major,
// so composing the same inputs always yields pixel-identical output.
//
// # Error Handling
//
// All failures are reported through the sentinel errors declared in errors.go,
// wrapped with context. Callers should test them with errors.Is. A composition
// either completes or returns an error; partial canvases are never returned.
//
// # Signature Cache
//
// SignatureCache persists a Snapshot (identifier to MeanColor) so that catalogs
// can be restored without re-sampling every source image. A persisted snapshot
// is trusted as-is: nothing records which source set produced it, so a stale
// cache silently describes images that may have changed since.
package mosaic
