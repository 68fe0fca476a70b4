package mosaic

import "errors"

var (
	// ErrEmptyRegion is returned when a mean color is requested for a region with no pixels.
	ErrEmptyRegion = errors.New("empty region")

	// ErrOutOfBounds is returned when a region extends past the image bounds.
	ErrOutOfBounds = errors.New("region outside image bounds")

	// ErrEmptyCatalog is returned when a catalog would be built from no sources.
	ErrEmptyCatalog = errors.New("empty catalog")

	// ErrNoCandidates is returned by a nearest-match search over an empty catalog.
	ErrNoCandidates = errors.New("no candidates")

	// ErrCacheCorrupt is returned when a persisted snapshot cannot be parsed.
	ErrCacheCorrupt = errors.New("signature cache corrupt")

	// ErrInvalidTileSize is returned for a non-positive tile size.
	ErrInvalidTileSize = errors.New("tile size must be positive")

	// ErrDuplicateID is returned when two sources share an identifier.
	ErrDuplicateID = errors.New("duplicate source identifier")

	// ErrMissingSource is returned when a snapshot names a source that was not loaded.
	ErrMissingSource = errors.New("snapshot references unknown source")
)
