package imaging

import (
	"fmt"

	"github.com/corona10/goimagehash"
)

// MaxHashDistance is the largest perceptual-hash Hamming distance at which two
// source images are reported as near duplicates.
const MaxHashDistance = 5

// SimilarPair names two source images whose perceptual hashes are close.
type SimilarPair struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Distance int    `json:"distance"`
}

// SimilarSources computes a perceptual hash for every image and returns each
// pair within maxDistance of each other, in input order.
//
// Near-duplicate sources have close mean colors and rarely both win a cell.
func SimilarSources(images []NamedImage, maxDistance int) ([]SimilarPair, error) {
	hashes := make([]*goimagehash.ImageHash, len(images))
	for i, n := range images {
		h, err := goimagehash.PerceptionHash(n.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", n.Name, err)
		}
		hashes[i] = h
	}

	pairs := []SimilarPair{}
	for i := range hashes {
		for j := i + 1; j < len(hashes); j++ {
			d, err := hashes[i].Distance(hashes[j])
			if err != nil {
				return nil, fmt.Errorf("failed to compare %s and %s: %w", images[i].Name, images[j].Name, err)
			}
			if d <= maxDistance {
				pairs = append(pairs, SimilarPair{A: images[i].Name, B: images[j].Name, Distance: d})
			}
		}
	}
	return pairs, nil
}
