// Package generator materializes spell effects and allies from resolved
// compositions. All randomness comes from the injected source so output is
// reproducible for a seed.
package generator

import (
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ericogr/technonomicon/internal/registry"
)

// Generator builds entities for one session.
type Generator struct {
	catalog *registry.Catalog
	rng     *rand.Rand
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New returns a generator drawing names, compatibility and ids from rng.
func New(cat *registry.Catalog, rng *rand.Rand) *Generator {
	return &Generator{
		catalog: cat,
		rng:     rng,
		entropy: ulid.Monotonic(rng, 0),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source used for ids and timestamps.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) newID(prefix string) string {
	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		id = ulid.Make()
	}
	return prefix + "_" + strings.ToLower(id.String())
}
