package engine

import (
	"github.com/ericogr/technonomicon/internal/constants"
	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/generator"
	"github.com/ericogr/technonomicon/internal/registry"
)

// SpellStrategy crafts spell effects.
type SpellStrategy struct {
	Catalog   *registry.Catalog
	Generator *generator.Generator
}

func (SpellStrategy) Kind() game.EntryKind { return game.EntryKindSpell }
func (SpellStrategy) Skill() string        { return constants.SkillSpellcraft }

// Validate rejects spells built only from action bits.
func (s SpellStrategy) Validate(c game.Composition) error {
	for _, id := range c.CodeBits {
		if b, ok := s.Catalog.CodeBit(id); ok && !b.Action {
			return nil
		}
	}
	return invalid("code_bits", "a spell needs at least one non-action code bit")
}

func (s SpellStrategy) Known(e game.Entry, actor game.Character, q game.QualityTier) game.SpellEffect {
	return s.Generator.Spell(e, actor, q)
}

func (s SpellStrategy) Experimental(c game.Composition, q game.QualityTier) game.Entry {
	return s.Generator.ExperimentalSpell(c, q)
}

func (s SpellStrategy) Materialize(e game.Entry, actor game.Character, q game.QualityTier, ephemeral bool) game.SpellEffect {
	fx := s.Generator.Spell(e, actor, q)
	fx.Experimental = true
	fx.Ephemeral = ephemeral
	return fx
}

func (SpellStrategy) LowRoll(game.Composition, game.Character) (game.SpellEffect, bool) {
	return game.SpellEffect{}, false
}

// RitualStrategy summons allies.
type RitualStrategy struct {
	Catalog   *registry.Catalog
	Generator *generator.Generator
}

func (RitualStrategy) Kind() game.EntryKind { return game.EntryKindRitual }
func (RitualStrategy) Skill() string        { return constants.SkillRitual }

// Validate requires the action code bit.
func (s RitualStrategy) Validate(c game.Composition) error {
	for _, id := range c.CodeBits {
		if b, ok := s.Catalog.CodeBit(id); ok && b.Action {
			return nil
		}
	}
	return invalid("code_bits", "a ritual requires the summon code bit")
}

func (s RitualStrategy) Known(e game.Entry, actor game.Character, q game.QualityTier) game.Ally {
	return s.Generator.Ally(e, actor, q)
}

func (s RitualStrategy) Experimental(c game.Composition, _ game.QualityTier) game.Entry {
	return s.Generator.ExperimentalRitual(c)
}

func (s RitualStrategy) Materialize(e game.Entry, actor game.Character, q game.QualityTier, ephemeral bool) game.Ally {
	return s.Generator.ExperimentalAlly(e, actor, q, ephemeral)
}

// LowRoll turns a botched unregistered ritual into a hostile aberration.
func (s RitualStrategy) LowRoll(c game.Composition, actor game.Character) (game.Ally, bool) {
	return s.Generator.Aberration(c, actor), true
}

// SpellEngine and RitualEngine are the two instantiations a session uses.
type (
	SpellEngine  = Engine[game.SpellEffect]
	RitualEngine = Engine[game.Ally]
)
