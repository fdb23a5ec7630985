package registry

import "github.com/ericogr/technonomicon/internal/game"

// Match scans entries in registration order and returns the first whose
// composition is set-equal to c. Subsets and supersets never match. When
// several entries share a composition the first registered wins; catalog
// validation rejects such registries, so this only matters for hand-built
// stores.
func Match(entries []game.Entry, c game.Composition) (game.Entry, bool) {
	for _, e := range entries {
		if e.Composition().Equal(c) {
			return e, true
		}
	}
	return game.Entry{}, false
}
