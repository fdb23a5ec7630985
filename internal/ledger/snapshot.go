package ledger

import (
	"fmt"
	"sort"

	"github.com/ericogr/technonomicon/internal/game"
)

// Count is one key/value pair of a serialized counter map.
type Count struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// ResourceSnapshot is the serialized form of a ResourceLedger.
type ResourceSnapshot struct {
	TotalData          int     `json:"total_data"`
	DataByType         []Count `json:"data_by_type"`
	CollectedItems     []Count `json:"collected_items"`
	SurveillanceActive bool    `json:"surveillance_active"`
}

// DiscoverySnapshot is the serialized form of a DiscoveryLedger. Sets are
// sorted arrays and maps are arrays of pairs.
type DiscoverySnapshot struct {
	DiscoveredSpells   []game.Entry `json:"discovered_spells"`
	DiscoveredRituals  []game.Entry `json:"discovered_rituals"`
	DiscoveredElements []string     `json:"discovered_elements"`
	DiscoveredCodeBits []string     `json:"discovered_code_bits"`
	LibraryVersion     int          `json:"library_version"`
	TotalCrafts        int          `json:"total_crafts"`
	TotalCombinations  []string     `json:"total_combinations"`
	ElementUsage       []Count      `json:"element_usage"`
	CodeBitUsage       []Count      `json:"code_bit_usage"`
	PendingWarden      bool         `json:"pending_warden"`
}

func (l *ResourceLedger) Snapshot() ResourceSnapshot {
	sources := make(map[string]int, len(l.Sources))
	for k, v := range l.Sources {
		sources[string(k)] = v
	}
	return ResourceSnapshot{
		TotalData:          l.Balance,
		DataByType:         counts(sources),
		CollectedItems:     counts(l.Collectors),
		SurveillanceActive: l.SurveillanceActive,
	}
}

// Validate rejects snapshots no sequence of ledger operations can produce.
func (s ResourceSnapshot) Validate() error {
	if s.TotalData < 0 {
		return fmt.Errorf("%w: total_data %d", ErrInvalidSnapshot, s.TotalData)
	}
	if err := nonNegative("data_by_type", s.DataByType); err != nil {
		return err
	}
	return nonNegative("collected_items", s.CollectedItems)
}

// RestoreResources rebuilds a ledger from its snapshot.
func RestoreResources(s ResourceSnapshot) *ResourceLedger {
	l := &ResourceLedger{
		Balance:            s.TotalData,
		Sources:            make(map[Source]int, len(s.DataByType)),
		Collectors:         make(map[string]int, len(s.CollectedItems)),
		SurveillanceActive: s.SurveillanceActive,
	}
	for _, c := range s.DataByType {
		l.Sources[Source(c.Key)] = c.Value
	}
	for _, c := range s.CollectedItems {
		l.Collectors[c.Key] = c.Value
	}
	return l
}

func (d *DiscoveryLedger) Snapshot() DiscoverySnapshot {
	return DiscoverySnapshot{
		DiscoveredSpells:   entries(d.Spells),
		DiscoveredRituals:  entries(d.Rituals),
		DiscoveredElements: members(d.Elements),
		DiscoveredCodeBits: members(d.CodeBits),
		LibraryVersion:     d.LibraryVersion,
		TotalCrafts:        d.TotalCrafts,
		TotalCombinations:  members(d.Attempted),
		ElementUsage:       counts(d.ElementUsage),
		CodeBitUsage:       counts(d.CodeBitUsage),
		PendingWarden:      d.PendingWarden,
	}
}

// Validate rejects snapshots no sequence of ledger operations can produce.
func (s DiscoverySnapshot) Validate() error {
	if s.LibraryVersion < 1 {
		return fmt.Errorf("%w: library_version %d", ErrInvalidSnapshot, s.LibraryVersion)
	}
	if s.TotalCrafts < 0 {
		return fmt.Errorf("%w: total_crafts %d", ErrInvalidSnapshot, s.TotalCrafts)
	}
	if err := nonNegative("element_usage", s.ElementUsage); err != nil {
		return err
	}
	return nonNegative("code_bit_usage", s.CodeBitUsage)
}

func nonNegative(field string, cs []Count) error {
	for _, c := range cs {
		if c.Value < 0 {
			return fmt.Errorf("%w: %s[%s] %d", ErrInvalidSnapshot, field, c.Key, c.Value)
		}
	}
	return nil
}

// RestoreDiscovery rebuilds a ledger from its snapshot. Callers validate the
// snapshot first and re-seed the catalog's core ids with SeedCore.
func RestoreDiscovery(s DiscoverySnapshot) *DiscoveryLedger {
	d := emptyDiscovery()
	for _, e := range s.DiscoveredSpells {
		d.Spells[e.Key] = e
	}
	for _, e := range s.DiscoveredRituals {
		d.Rituals[e.Key] = e
	}
	for _, id := range s.DiscoveredElements {
		d.Elements[id] = struct{}{}
	}
	for _, id := range s.DiscoveredCodeBits {
		d.CodeBits[id] = struct{}{}
	}
	for _, k := range s.TotalCombinations {
		d.Attempted[k] = struct{}{}
	}
	for _, c := range s.ElementUsage {
		d.ElementUsage[c.Key] = c.Value
	}
	for _, c := range s.CodeBitUsage {
		d.CodeBitUsage[c.Key] = c.Value
	}
	d.LibraryVersion = s.LibraryVersion
	d.TotalCrafts = s.TotalCrafts
	d.PendingWarden = s.PendingWarden
	return d
}

func counts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func members(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func entries(m map[string]game.Entry) []game.Entry {
	out := make([]game.Entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
