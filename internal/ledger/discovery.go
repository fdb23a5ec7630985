package ledger

import (
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/registry"
)

// DiscoveryLedger is the persistent record of everything unlocked or
// attempted. Spells and rituals share it.
type DiscoveryLedger struct {
	Spells         map[string]game.Entry
	Rituals        map[string]game.Entry
	Elements       map[string]struct{}
	CodeBits       map[string]struct{}
	LibraryVersion int
	TotalCrafts    int
	Attempted      map[string]struct{}
	ElementUsage   map[string]int
	CodeBitUsage   map[string]int
	// PendingWarden is set by a supreme evolution and cleared when the
	// Warden reward is claimed.
	PendingWarden bool
}

// NewDiscoveryLedger starts at library version 1 with every core element
// and code bit of the catalog discovered.
func NewDiscoveryLedger(cat *registry.Catalog) *DiscoveryLedger {
	d := emptyDiscovery()
	d.LibraryVersion = 1
	d.SeedCore(cat)
	return d
}

// SeedCore marks every core element and code bit of the catalog discovered.
func (d *DiscoveryLedger) SeedCore(cat *registry.Catalog) {
	for _, id := range cat.CoreElementIDs() {
		d.Elements[id] = struct{}{}
	}
	for _, id := range cat.CoreCodeBitIDs() {
		d.CodeBits[id] = struct{}{}
	}
}

func emptyDiscovery() *DiscoveryLedger {
	return &DiscoveryLedger{
		Spells:       map[string]game.Entry{},
		Rituals:      map[string]game.Entry{},
		Elements:     map[string]struct{}{},
		CodeBits:     map[string]struct{}{},
		Attempted:    map[string]struct{}{},
		ElementUsage: map[string]int{},
		CodeBitUsage: map[string]int{},
	}
}

func (d *DiscoveryLedger) HasElement(id string) bool {
	_, ok := d.Elements[id]
	return ok
}

func (d *DiscoveryLedger) HasCodeBit(id string) bool {
	_, ok := d.CodeBits[id]
	return ok
}

// UnlockElement adds id to the discovered set and reports whether it was new.
func (d *DiscoveryLedger) UnlockElement(id string) bool {
	if d.HasElement(id) {
		return false
	}
	d.Elements[id] = struct{}{}
	return true
}

// UnlockCodeBit adds id to the discovered set and reports whether it was new.
func (d *DiscoveryLedger) UnlockCodeBit(id string) bool {
	if d.HasCodeBit(id) {
		return false
	}
	d.CodeBits[id] = struct{}{}
	return true
}

// RecordAttempt adds the composition to the attempted set and reports
// whether it had been tried before.
func (d *DiscoveryLedger) RecordAttempt(c game.Composition) (repeat bool) {
	k := c.Key()
	_, repeat = d.Attempted[k]
	d.Attempted[k] = struct{}{}
	return repeat
}

func (d *DiscoveryLedger) HasAttempted(c game.Composition) bool {
	_, ok := d.Attempted[c.Key()]
	return ok
}

// RecordUsage counts every element and code bit of a crafted composition.
func (d *DiscoveryLedger) RecordUsage(c game.Composition) {
	for _, e := range c.Elements {
		d.ElementUsage[e]++
	}
	for _, b := range c.CodeBits {
		d.CodeBitUsage[b]++
	}
}

// RecordDiscovery files the entry under its kind.
func (d *DiscoveryLedger) RecordDiscovery(e game.Entry) {
	switch e.Kind {
	case game.EntryKindRitual:
		d.Rituals[e.Key] = e
	default:
		d.Spells[e.Key] = e
	}
}

// IncrementCrafts bumps the successful craft counter and returns it.
func (d *DiscoveryLedger) IncrementCrafts() int {
	d.TotalCrafts++
	return d.TotalCrafts
}
