package ledger

import (
	"math/rand"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/dice"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/registry"
)

// DefaultEvolutionThreshold is the data required per library version.
const DefaultEvolutionThreshold = 500

// EvolutionBand names the outcome of the evolution roll.
type EvolutionBand string

const (
	BandGated    EvolutionBand = "gated"
	BandNone     EvolutionBand = "none"
	BandStandard EvolutionBand = "standard"
	BandGood     EvolutionBand = "good"
	BandGod      EvolutionBand = "god"
	BandSupreme  EvolutionBand = "supreme"
)

// BandForRoll maps a d20 to its evolution band.
func BandForRoll(roll int) EvolutionBand {
	switch {
	case roll <= 5:
		return BandNone
	case roll <= 12:
		return BandStandard
	case roll <= 18:
		return BandGood
	case roll == 19:
		return BandGod
	default:
		return BandSupreme
	}
}

// Evolution reports what a library evolution check did.
type Evolution struct {
	Band           EvolutionBand  `json:"band"`
	Roll           int            `json:"roll,omitempty"`
	Elements       []string       `json:"elements,omitempty"`
	CodeBits       []string       `json:"code_bits,omitempty"`
	Miniboss       *game.Miniboss `json:"miniboss,omitempty"`
	LibraryVersion int            `json:"library_version"`
}

// Evolved reports whether the library version advanced.
func (e Evolution) Evolved() bool {
	return e.Band != BandGated && e.Band != BandNone
}

// Evolver runs library evolution checks against a catalog.
type Evolver struct {
	Catalog   *registry.Catalog
	Roller    dice.Roller
	Rng       *rand.Rand
	Threshold int
}

// Check is a no-op unless balance >= libraryVersion * threshold. Otherwise
// it rolls a d20 and applies the band; every band except "none" increments
// the library version exactly once.
func (ev Evolver) Check(d *DiscoveryLedger, balance int) Evolution {
	threshold := ev.Threshold
	if threshold <= 0 {
		threshold = DefaultEvolutionThreshold
	}
	if balance < d.LibraryVersion*threshold {
		return Evolution{Band: BandGated, LibraryVersion: d.LibraryVersion}
	}

	roll := ev.Roller.RollD20()
	out := Evolution{Band: BandForRoll(roll), Roll: roll}
	switch out.Band {
	case BandStandard:
		out.Elements = ev.unlockElements(d, 1)
		out.CodeBits = ev.unlockCodeBits(d, 1)
	case BandGood:
		out.Elements = ev.unlockElements(d, 2)
		out.CodeBits = ev.unlockCodeBits(d, 2)
	case BandGod:
		out.Elements = ev.unlockElements(d, -1)
		out.CodeBits = ev.unlockCodeBits(d, -1)
	case BandSupreme:
		w := game.TechnonomiconWarden()
		out.Miniboss = &w
		d.PendingWarden = true
	}
	if out.Band != BandNone {
		d.LibraryVersion++
		logging.Info("technonomicon evolved", logging.Fields{
			constants.LogFieldVersion: d.LibraryVersion,
			constants.LogFieldRoll:    roll,
			"band":                    string(out.Band),
			"elements":                out.Elements,
			"code_bits":               out.CodeBits,
		})
	}
	out.LibraryVersion = d.LibraryVersion
	return out
}

// unlockElements unlocks up to n random locked esoteric elements; n < 0
// unlocks all of them.
func (ev Evolver) unlockElements(d *DiscoveryLedger, n int) []string {
	return unlockRandom(ev.Rng, ev.Catalog.EsotericElementIDs(), d.HasElement, d.UnlockElement, n)
}

func (ev Evolver) unlockCodeBits(d *DiscoveryLedger, n int) []string {
	return unlockRandom(ev.Rng, ev.Catalog.LockedCodeBitIDs(), d.HasCodeBit, d.UnlockCodeBit, n)
}

func unlockRandom(rng *rand.Rand, pool []string, has func(string) bool, unlock func(string) bool, n int) []string {
	var locked []string
	for _, id := range pool {
		if !has(id) {
			locked = append(locked, id)
		}
	}
	if n < 0 || n >= len(locked) {
		for _, id := range locked {
			unlock(id)
		}
		return locked
	}
	unlocked := make([]string, 0, n)
	for ; n > 0; n-- {
		i := rng.Intn(len(locked))
		unlock(locked[i])
		unlocked = append(unlocked, locked[i])
		locked = append(locked[:i], locked[i+1:]...)
	}
	return unlocked
}
