package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ericogr/technonomicon/internal/config"
	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/dice"
	"github.com/ericogr/technonomicon/internal/engine"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/generator"
	"github.com/ericogr/technonomicon/internal/ledger"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/registry"
)

// Options carry the injectable collaborators of a session. Zero values are
// filled with production defaults by NewSession.
type Options struct {
	// Rng feeds names, compatibility, entity ids and evolution unlocks.
	Rng       *rand.Rand
	Roller    dice.Roller
	Modifiers dice.ModifierSource
	// EvolutionThreshold is the data needed per library version.
	EvolutionThreshold int
	Clock              func() time.Time
}

// Session is one player's crafting state: both registries, the shared
// ledgers, the ally roster and the spell history. It is not safe for
// concurrent use; Manager serializes access.
type Session struct {
	ID   string
	Name string

	catalog   *config.LoadedCatalog
	opts      Options
	gen       *generator.Generator
	resources *ledger.ResourceLedger
	discovery *ledger.DiscoveryLedger
	spells    *engine.SpellEngine
	rituals   *engine.RitualEngine
	roster    *Roster
	history   []game.SpellEffect
}

// NewSession builds a fresh session over the catalog.
func NewSession(id, name string, lc *config.LoadedCatalog, opts Options) (*Session, error) {
	if opts.Rng == nil {
		seed, err := dice.NewSeed()
		if err != nil {
			return nil, err
		}
		opts.Rng = rand.New(rand.NewSource(seed))
	}
	if opts.Roller == nil {
		opts.Roller = dice.NewRandRoller(opts.Rng)
	}
	if opts.Modifiers == nil {
		opts.Modifiers = dice.CharacterModifiers{}
	}
	if opts.EvolutionThreshold <= 0 {
		opts.EvolutionThreshold = ledger.DefaultEvolutionThreshold
	}
	gen := generator.New(lc.Catalog, opts.Rng)
	if opts.Clock != nil {
		gen.WithClock(opts.Clock)
	}
	s := &Session{
		ID:        id,
		Name:      name,
		catalog:   lc,
		opts:      opts,
		gen:       gen,
		resources: ledger.NewResourceLedger(),
		discovery: ledger.NewDiscoveryLedger(lc.Catalog),
		roster:    NewRoster(),
	}
	spells, rituals, err := lc.NewStores()
	if err != nil {
		return nil, err
	}
	s.wire(spells, rituals)
	return s, nil
}

// wire builds both engines over the given stores. The ledgers are shared by
// pointer so Import can restore them in place.
func (s *Session) wire(spells, rituals registry.Store) {
	deps := engine.Deps{
		Catalog:   s.catalog.Catalog,
		Resources: s.resources,
		Discovery: s.discovery,
		Roller:    s.opts.Roller,
		Modifiers: s.opts.Modifiers,
		Evolver: ledger.Evolver{
			Catalog:   s.catalog.Catalog,
			Roller:    s.opts.Roller,
			Rng:       s.opts.Rng,
			Threshold: s.opts.EvolutionThreshold,
		},
	}
	s.spells = engine.New[game.SpellEffect](deps, spells, engine.SpellStrategy{Catalog: s.catalog.Catalog, Generator: s.gen})
	s.rituals = engine.New[game.Ally](deps, rituals, engine.RitualStrategy{Catalog: s.catalog.Catalog, Generator: s.gen})
}

func (s *Session) fields() logging.Fields {
	return logging.Fields{constants.LogFieldSession: s.ID}
}

// AttemptCraft resolves a spell composition and records any effect in the
// spell history.
func (s *Session) AttemptCraft(elements, codeBits []string, c game.Character) engine.Result[game.SpellEffect] {
	res := s.spells.Attempt(elements, codeBits, c)
	if fx, ok := res.Entity(); ok {
		s.history = append(s.history, fx)
	}
	return res
}

// AttemptSummon resolves a ritual composition. Allies join the roster;
// aberrations are kept with the failed rituals.
func (s *Session) AttemptSummon(elements, codeBits []string, c game.Character) engine.Result[game.Ally] {
	res := s.rituals.Attempt(elements, codeBits, c)
	ally, ok := res.Entity()
	if !ok {
		return res
	}
	if res.Success() {
		s.roster.summon(ally)
	} else {
		s.roster.fail(ally)
	}
	return res
}

// Harvest credits a non-enemy data source scaled by the character's
// multiplier.
func (s *Session) Harvest(source ledger.Source, base int, c game.Character) (int, error) {
	amount, err := s.resources.Harvest(source, base, c)
	if err != nil {
		return 0, err
	}
	f := s.fields()
	f[constants.LogFieldSource] = string(source)
	f[constants.LogFieldAmount] = amount
	f[constants.LogFieldBalance] = s.resources.Balance
	logging.Info("data harvested", f)
	return amount, nil
}

// HarvestEnemy credits enemy surveillance data for a defeated enemy.
func (s *Session) HarvestEnemy(enemyLevel int, efficiency float64) (int, error) {
	amount, err := s.resources.HarvestEnemy(enemyLevel, efficiency)
	if err != nil {
		return 0, err
	}
	f := s.fields()
	f[constants.LogFieldSource] = string(ledger.SourceEnemySurveillance)
	f[constants.LogFieldAmount] = amount
	f[constants.LogFieldBalance] = s.resources.Balance
	logging.Info("data harvested", f)
	return amount, nil
}

// Deposit credits a raw amount, bypassing the character multiplier.
func (s *Session) Deposit(source ledger.Source, amount int) error {
	return s.resources.Deposit(source, amount)
}

// CollectItem adds one collector item and returns the new count.
func (s *Session) CollectItem(item string) (int, error) {
	return s.resources.CollectItem(item)
}

func (s *Session) ActivateSurveillance() {
	s.resources.ActivateSurveillance()
	logging.Info("surveillance system activated", s.fields())
}

// Balance is the current data balance.
func (s *Session) Balance() int { return s.resources.Balance }

// AvailableEntry is a registry entry the character may craft right now.
type AvailableEntry struct {
	Entry         game.Entry `json:"entry"`
	ManaCost      int        `json:"mana_cost"`
	LevelRequired int        `json:"level_required"`
	Affordable    bool       `json:"affordable"`
}

// AvailableSpells lists spells whose level requirement the character meets
// and whose elements and code bits are all unlocked.
func (s *Session) AvailableSpells(c game.Character) []AvailableEntry {
	return s.available(s.spells.Store(), c)
}

// AvailableRituals is AvailableSpells for the ritual registry.
func (s *Session) AvailableRituals(c game.Character) []AvailableEntry {
	return s.available(s.rituals.Store(), c)
}

func (s *Session) available(store registry.Store, c game.Character) []AvailableEntry {
	out := []AvailableEntry{}
	for _, e := range store.All() {
		if c.Level < e.LevelRequired() || !s.unlocked(e) {
			continue
		}
		out = append(out, AvailableEntry{
			Entry:         e,
			ManaCost:      s.gen.ManaCost(e, c.Level),
			LevelRequired: e.LevelRequired(),
			Affordable:    s.resources.CanAfford(e.DataCost),
		})
	}
	return out
}

func (s *Session) unlocked(e game.Entry) bool {
	cat := s.catalog.Catalog
	for _, id := range e.Elements {
		if !cat.IsCoreElement(id) && !s.discovery.HasElement(id) {
			return false
		}
	}
	for _, id := range e.CodeBits {
		if !cat.IsCoreCodeBit(id) && !s.discovery.HasCodeBit(id) {
			return false
		}
	}
	return true
}

// Registry returns every entry of one kind, seeds first.
func (s *Session) Registry(kind game.EntryKind) []game.Entry {
	if kind == game.EntryKindRitual {
		return s.rituals.Store().All()
	}
	return s.spells.Store().All()
}

// SpellHistory returns every spell effect produced so far, oldest first.
func (s *Session) SpellHistory() []game.SpellEffect {
	return append([]game.SpellEffect(nil), s.history...)
}

// Roster exposes the session's allies.
func (s *Session) Roster() *Roster { return s.roster }

// Status is a summary of the session for listings.
type Status struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Balance            int      `json:"balance"`
	LibraryVersion     int      `json:"library_version"`
	TotalCrafts        int      `json:"total_crafts"`
	SurveillanceActive bool     `json:"surveillance_active"`
	PendingWarden      bool     `json:"pending_warden"`
	DiscoveredElements []string `json:"discovered_elements"`
	DiscoveredCodeBits []string `json:"discovered_code_bits"`
	DiscoveredSpells   int      `json:"discovered_spells"`
	DiscoveredRituals  int      `json:"discovered_rituals"`
	ActiveAllies       int      `json:"active_allies"`
	SummonCount        int      `json:"summon_count"`
}

func (s *Session) Status() Status {
	d := s.discovery.Snapshot()
	return Status{
		ID:                 s.ID,
		Name:               s.Name,
		Balance:            s.resources.Balance,
		LibraryVersion:     d.LibraryVersion,
		TotalCrafts:        d.TotalCrafts,
		SurveillanceActive: s.resources.SurveillanceActive,
		PendingWarden:      d.PendingWarden,
		DiscoveredElements: d.DiscoveredElements,
		DiscoveredCodeBits: d.DiscoveredCodeBits,
		DiscoveredSpells:   len(d.DiscoveredSpells),
		DiscoveredRituals:  len(d.DiscoveredRituals),
		ActiveAllies:       len(s.roster.Active()),
		SummonCount:        s.roster.SummonCount(),
	}
}

// ClaimWardenReward grants the bonus spell for a defeated Technonomicon
// Warden. The spell is woven from the caster's usage and discoveries,
// promoted into the spell registry and recorded as discovered.
func (s *Session) ClaimWardenReward() (game.Entry, error) {
	if !s.discovery.PendingWarden {
		return game.Entry{}, ErrNoPendingWarden
	}
	d := s.discovery.Snapshot()
	h := generator.History{
		ElementUsage: s.discovery.ElementUsage,
		CodeBitUsage: s.discovery.CodeBitUsage,
		Discovered:   append(d.DiscoveredSpells, d.DiscoveredRituals...),
		Fallback:     s.catalog.Catalog.CoreElementIDs(),
	}
	entry, created, err := s.spells.Store().Promote(s.gen.BonusSpell(h))
	if err != nil {
		return game.Entry{}, fmt.Errorf("promote warden reward: %w", err)
	}
	s.discovery.RecordDiscovery(entry)
	s.discovery.PendingWarden = false
	f := s.fields()
	f[constants.LogFieldEntry] = entry.Name
	f[constants.LogFieldKey] = entry.Key
	f["created"] = created
	logging.Info("warden reward claimed", f)
	return entry, nil
}
