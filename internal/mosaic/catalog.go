package mosaic

import (
	"fmt"
	"image"
	"runtime"
	"sort"
	"sync"
)

// Source is a named source image offered to the catalog. Source images are
// expected to be exactly tileSize x tileSize; the composer rescales them if not.
type Source struct {
	ID    string
	Image image.Image
}

// Entry is one catalog item: a source image and its mean color.
type Entry struct {
	ID    string
	Color MeanColor
	Image image.Image
}

// Catalog is an ordered, read-only collection of entries with unique IDs.
//
// Entry order is fixed at construction and defines the tie-break order used by
// Nearest. A Catalog is safe for concurrent reads.
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// Snapshot maps entry identifiers to their mean colors. It is the value
// persisted by a SignatureCache.
type Snapshot map[string]MeanColor

// Build samples every source image and returns a catalog in source order.
//
// Sampling runs on up to GOMAXPROCS workers; results are placed by index so
// the catalog order never depends on scheduling.
//
// # Errors
//
//   - ErrEmptyCatalog if sources is empty
//   - ErrDuplicateID if two sources share an ID
//   - ErrEmptyRegion if a source image has no pixels
func Build(sources []Source) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := checkUnique(sources); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(sources))
	errs := make([]error, len(sources))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(sources) {
		workers = len(sources)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				src := sources[i]
				mc, err := ImageMeanColor(src.Image)
				if err != nil {
					errs[i] = fmt.Errorf("source %q: %w", src.ID, err)
					continue
				}
				entries[i] = Entry{ID: src.ID, Color: mc, Image: src.Image}
			}
		}()
	}
	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return newCatalog(entries), nil
}

// BuildFromMap builds a catalog from an unordered mapping. Entries are ordered
// by identifier so that tie-breaks stay deterministic.
func BuildFromMap(images map[string]image.Image) (*Catalog, error) {
	ids := make([]string, 0, len(images))
	for id := range images {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sources := make([]Source, len(ids))
	for i, id := range ids {
		sources[i] = Source{ID: id, Image: images[id]}
	}
	return Build(sources)
}

// FromSnapshot restores a catalog from a persisted snapshot without sampling.
//
// Entries follow the order of sources. Sources absent from the snapshot are
// left out of the catalog. Snapshot colors are trusted; nothing checks that
// they still describe the loaded images.
//
// # Errors
//
//   - ErrMissingSource if the snapshot names an ID not present in sources
//   - ErrEmptyCatalog if no source is covered by the snapshot
//   - ErrCacheCorrupt if a snapshot color is out of range
func FromSnapshot(snap Snapshot, sources []Source) (*Catalog, error) {
	if err := checkUnique(sources); err != nil {
		return nil, err
	}
	loaded := make(map[string]bool, len(sources))
	for _, src := range sources {
		loaded[src.ID] = true
	}
	missing := make([]string, 0)
	for id := range snap {
		if !loaded[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v", ErrMissingSource, missing)
	}

	entries := make([]Entry, 0, len(snap))
	for _, src := range sources {
		mc, ok := snap[src.ID]
		if !ok {
			continue
		}
		if !mc.Valid() {
			return nil, fmt.Errorf("%w: %q has color %v", ErrCacheCorrupt, src.ID, mc)
		}
		entries = append(entries, Entry{ID: src.ID, Color: mc, Image: src.Image})
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	return newCatalog(entries), nil
}

func newCatalog(entries []Entry) *Catalog {
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	return &Catalog{entries: entries, byID: byID}
}

func checkUnique(sources []Source) error {
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if seen[src.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, src.ID)
		}
		seen[src.ID] = true
	}
	return nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry with the given ID.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Snapshot returns a value copy of the catalog's signature table.
func (c *Catalog) Snapshot() Snapshot {
	snap := make(Snapshot, c.Len())
	for _, e := range c.Entries() {
		snap[e.ID] = e.Color
	}
	return snap
}
