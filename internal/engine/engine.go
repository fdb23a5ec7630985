// Package engine resolves crafting and summoning attempts. One generic state
// machine serves both: a Strategy supplies the kind-specific validation and
// entity generation.
package engine

import (
	"fmt"

	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/dice"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/ledger"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/registry"
)

// Strategy adapts the engine to one entity type.
type Strategy[E any] interface {
	Kind() game.EntryKind
	// Skill names the character skill whose modifier applies to the roll.
	Skill() string
	// Validate enforces kind-specific composition rules.
	Validate(c game.Composition) error
	// Known generates the entity of a registered entry.
	Known(e game.Entry, actor game.Character, q game.QualityTier) E
	// Experimental derives a registry entry for an unregistered composition.
	Experimental(c game.Composition, q game.QualityTier) game.Entry
	// Materialize generates the entity of an experimental entry.
	Materialize(e game.Entry, actor game.Character, q game.QualityTier, ephemeral bool) E
	// LowRoll optionally produces an entity for an unregistered composition
	// that rolled low.
	LowRoll(c game.Composition, actor game.Character) (E, bool)
}

// Deps are the collaborators shared by every engine of a session.
type Deps struct {
	Catalog   *registry.Catalog
	Resources *ledger.ResourceLedger
	Discovery *ledger.DiscoveryLedger
	Roller    dice.Roller
	Modifiers dice.ModifierSource
	Evolver   ledger.Evolver
}

// Engine runs attempts against one registry store. It is not safe for
// concurrent use; callers serialize attempts per session.
type Engine[E any] struct {
	deps     Deps
	store    registry.Store
	strategy Strategy[E]
}

// craftsPerEvolutionCheck is how many known successes pass between library
// evolution checks.
const craftsPerEvolutionCheck = 5

func New[E any](deps Deps, store registry.Store, strategy Strategy[E]) *Engine[E] {
	return &Engine[E]{deps: deps, store: store, strategy: strategy}
}

// Store exposes the registry the engine resolves against.
func (en *Engine[E]) Store() registry.Store { return en.store }

// Attempt resolves one composition for actor.
func (en *Engine[E]) Attempt(elements, codeBits []string, actor game.Character) Result[E] {
	c := game.NewComposition(elements, codeBits)
	res := Result[E]{Kind: en.strategy.Kind(), Composition: c}

	if err := en.validate(c, actor); err != nil {
		res.Outcome = Rejected{Err: err}
		res.Message = err.Error()
		logging.Warn("attempt rejected", en.fields(res, actor))
		return res
	}

	res.Roll = en.deps.Roller.RollD20()
	res.Modifier = en.deps.Modifiers.ModifierFor(actor, en.strategy.Skill())
	res.Quality = ResolveQuality(res.Roll, res.Modifier)
	logging.Debug("attempt rolled", en.fields(res, actor))

	if entry, ok := en.store.Match(c); ok {
		return en.resolveKnown(res, entry, actor)
	}
	return en.resolveUnknown(res, actor)
}

func (en *Engine[E]) validate(c game.Composition, actor game.Character) error {
	if actor.Level < 1 {
		return invalid("character", "level must be at least 1")
	}
	if len(c.Elements) == 0 {
		return invalid("elements", "at least one element is required")
	}
	if len(c.CodeBits) == 0 {
		return invalid("code_bits", "at least one code bit is required")
	}
	if d := firstDuplicate(c.Elements); d != "" {
		return invalid("elements", "duplicate element %q", d)
	}
	if d := firstDuplicate(c.CodeBits); d != "" {
		return invalid("code_bits", "duplicate code bit %q", d)
	}
	if err := en.deps.Catalog.CheckKnown(c); err != nil {
		return &ValidationError{Field: "composition", Reason: err.Error(), Err: err}
	}
	return en.strategy.Validate(c)
}

// firstDuplicate expects a sorted slice.
func firstDuplicate(ids []string) string {
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			return ids[i]
		}
	}
	return ""
}

func (en *Engine[E]) resolveKnown(res Result[E], entry game.Entry, actor game.Character) Result[E] {
	if res.Quality == game.QualityLow || !entry.MeetsRollFloor(res.Quality) {
		reason := ReasonLowRoll
		res.Message = fmt.Sprintf("%s fizzled. The %s roll was not enough.", entry.Name, res.Quality)
		if res.Quality != game.QualityLow {
			reason = ReasonBelowFloor
			res.Message = fmt.Sprintf("%s resists anything below a %s roll.", entry.Name, entry.RequiresRoll)
		}
		res.Repeat = en.deps.Discovery.RecordAttempt(res.Composition)
		e := entry
		res.Outcome = Failure[E]{Reason: reason, Entry: &e}
		logging.Info("attempt failed", en.fields(res, actor))
		return res
	}

	if err := en.deps.Resources.Debit(entry.DataCost); err != nil {
		res.Outcome = Rejected{Err: err}
		res.Message = fmt.Sprintf("Insufficient data. Need %d, have %d.", entry.DataCost, en.deps.Resources.Balance)
		logging.Warn("attempt rejected", en.fields(res, actor))
		return res
	}

	entity := en.strategy.Known(entry, actor, res.Quality)
	d := en.deps.Discovery
	res.Repeat = d.RecordAttempt(res.Composition)
	d.RecordUsage(res.Composition)
	d.RecordDiscovery(entry)
	out := KnownSuccess[E]{Entry: entry, Entity: entity, DataCost: entry.DataCost}
	if d.IncrementCrafts()%craftsPerEvolutionCheck == 0 {
		ev := en.deps.Evolver.Check(d, en.deps.Resources.Balance)
		out.Evolution = &ev
	}
	res.Outcome = out
	res.Message = fmt.Sprintf("%s completed with a %s roll.", entry.Name, res.Quality)
	if res.Quality == game.QualityCritical {
		res.Message += " GOD ROLL!"
	}
	logging.Info("attempt succeeded", en.fields(res, actor, logging.Fields{constants.LogFieldDataCost: entry.DataCost}))
	return res
}

func (en *Engine[E]) resolveUnknown(res Result[E], actor game.Character) Result[E] {
	d := en.deps.Discovery
	switch res.Quality {
	case game.QualityCritical:
		draft := en.strategy.Experimental(res.Composition, res.Quality)
		entry, created, err := en.store.Promote(draft)
		if err != nil {
			res.Outcome = Rejected{Err: err}
			res.Message = err.Error()
			logging.Error("promotion failed", err, en.fields(res, actor))
			return res
		}
		entity := en.strategy.Materialize(entry, actor, res.Quality, false)
		res.Repeat = d.RecordAttempt(res.Composition)
		d.RecordUsage(res.Composition)
		d.RecordDiscovery(entry)
		res.Outcome = NewDiscovery[E]{Entry: entry, Entity: entity, Created: created}
		res.Message = fmt.Sprintf("NEW %s DISCOVERED: %s!", kindLabel(res.Kind), entry.Name)
		if entry.EpicVariant {
			res.Message += " *** EPIC ***"
		}
		logging.Info("new discovery", en.fields(res, actor, logging.Fields{
			constants.LogFieldKey: entry.Key,
			"created":             created,
		}))
		return res

	case game.QualityHigh, game.QualityMedium:
		entry := en.strategy.Experimental(res.Composition, res.Quality)
		entity := en.strategy.Materialize(entry, actor, res.Quality, true)
		res.Repeat = d.RecordAttempt(res.Composition)
		d.RecordUsage(res.Composition)
		res.Outcome = Ephemeral[E]{Entry: entry, Entity: entity}
		res.Message = fmt.Sprintf("%s manifests briefly before fading.", entry.Name)
		logging.Info("ephemeral manifestation", en.fields(res, actor))
		return res
	}

	res.Repeat = d.RecordAttempt(res.Composition)
	if ab, ok := en.strategy.LowRoll(res.Composition, actor); ok {
		res.Outcome = Failure[E]{Reason: ReasonAberration, Aberration: &ab}
		res.Message = "The ritual spiraled! Something hostile emerges instead..."
	} else {
		res.Outcome = Failure[E]{Reason: ReasonUnstable}
		res.Message = "The combination was unstable."
	}
	logging.Info("attempt failed", en.fields(res, actor))
	return res
}

func kindLabel(k game.EntryKind) string {
	if k == game.EntryKindRitual {
		return "RITUAL"
	}
	return "SPELL"
}

func (en *Engine[E]) fields(res Result[E], actor game.Character, extra ...logging.Fields) logging.Fields {
	f := logging.Fields{
		constants.LogFieldKind:        string(res.Kind),
		constants.LogFieldComposition: res.Composition.Key(),
		constants.LogFieldName:        actor.Name,
		constants.LogFieldBalance:     en.deps.Resources.Balance,
	}
	if res.Outcome != nil {
		f[constants.LogFieldOutcome] = string(res.Outcome.Kind())
	}
	if res.Quality != game.QualityNone {
		f[constants.LogFieldQuality] = res.Quality.String()
		f[constants.LogFieldRoll] = res.Roll
		f[constants.LogFieldModifier] = res.Modifier
	}
	if err := res.Err(); err != nil {
		f["error"] = err.Error()
	}
	for _, x := range extra {
		for k, v := range x {
			f[k] = v
		}
	}
	return f
}
