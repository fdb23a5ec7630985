package service

import (
	"fmt"

	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/ledger"
	"github.com/ericogr/technonomicon/internal/logging"
)

const stateVersion = 1

// State is the portable form of a session. Every map is flattened to a
// sorted slice so the encoded form is stable.
type State struct {
	Version   int                      `json:"version"`
	Name      string                   `json:"name"`
	Ledger    ledger.ResourceSnapshot  `json:"ledger"`
	Discovery ledger.DiscoverySnapshot `json:"discovery"`
	History   []game.SpellEffect       `json:"history"`
	Allies    AllyState                `json:"allies"`
	Promoted  PromotedState            `json:"promoted"`
}

type AllyState struct {
	Summoned      []game.Ally `json:"summoned"`
	History       []game.Ally `json:"history"`
	FailedRituals []game.Ally `json:"failed_rituals"`
	SummonCount   int         `json:"summon_count"`
}

// PromotedState lists the registry entries added at runtime, in promotion
// order.
type PromotedState struct {
	Spells  []game.Entry `json:"spells"`
	Rituals []game.Entry `json:"rituals"`
}

// Export captures the whole session.
func (s *Session) Export() State {
	return State{
		Version:   stateVersion,
		Name:      s.Name,
		Ledger:    s.resources.Snapshot(),
		Discovery: s.discovery.Snapshot(),
		History:   orEmpty(s.history),
		Allies: AllyState{
			Summoned:      cloneAll(s.roster.summoned),
			History:       cloneAll(s.roster.history),
			FailedRituals: cloneAll(s.roster.failed),
			SummonCount:   s.roster.count,
		},
		Promoted: PromotedState{
			Spells:  orEmpty(s.spells.Store().Promoted()),
			Rituals: orEmpty(s.rituals.Store().Promoted()),
		},
	}
}

// Import replaces the session's state. Promoted entries are replayed into
// fresh registries seeded from the catalog; on error the session is left
// unchanged.
func (s *Session) Import(st State) error {
	if st.Version != stateVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedState, st.Version)
	}
	if err := st.Ledger.Validate(); err != nil {
		return err
	}
	if err := st.Discovery.Validate(); err != nil {
		return err
	}
	if st.Allies.SummonCount < 0 {
		return fmt.Errorf("%w: summon_count %d", ledger.ErrInvalidSnapshot, st.Allies.SummonCount)
	}
	spells, rituals, err := s.catalog.NewStores()
	if err != nil {
		return err
	}
	for _, e := range st.Promoted.Spells {
		if _, _, err := spells.Promote(e); err != nil {
			return fmt.Errorf("restore spell %q: %w", e.Name, err)
		}
	}
	for _, e := range st.Promoted.Rituals {
		if _, _, err := rituals.Promote(e); err != nil {
			return fmt.Errorf("restore ritual %q: %w", e.Name, err)
		}
	}

	*s.resources = *ledger.RestoreResources(st.Ledger)
	*s.discovery = *ledger.RestoreDiscovery(st.Discovery)
	s.discovery.SeedCore(s.catalog.Catalog)
	s.Name = st.Name
	s.history = append([]game.SpellEffect(nil), st.History...)
	s.roster = &Roster{
		summoned: cloneAll(st.Allies.Summoned),
		history:  cloneAll(st.Allies.History),
		failed:   cloneAll(st.Allies.FailedRituals),
		count:    st.Allies.SummonCount,
	}
	s.wire(spells, rituals)

	f := s.fields()
	f["promoted_spells"] = len(st.Promoted.Spells)
	f["promoted_rituals"] = len(st.Promoted.Rituals)
	logging.Info("session imported", f)
	return nil
}

func orEmpty[T any](in []T) []T {
	return append(make([]T, 0, len(in)), in...)
}
