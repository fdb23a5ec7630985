package generator

import (
	"fmt"
	"math"
	"strings"

	"github.com/ericogr/technonomicon/internal/game"
)

// SpellMultiplier scales spell output by quality.
func SpellMultiplier(q game.QualityTier) float64 {
	switch q {
	case game.QualityCritical:
		return 2.0
	case game.QualityHigh:
		return 1.5
	case game.QualityMedium:
		return 1.0
	default:
		return 0.6
	}
}

func spellBase(e game.Entry, level int) float64 {
	return float64(e.BaseMana) + float64(level)*1.5
}

// SpellPower is floor((baseMana + level*1.5) * multiplier).
func SpellPower(e game.Entry, level int, q game.QualityTier) int {
	return int(math.Floor(spellBase(e, level) * SpellMultiplier(q)))
}

// ManaCost charges 10 per esoteric element and 5 per code bit on top of the
// base, discounted by one per five levels, never below 5.
func (g *Generator) ManaCost(e game.Entry, level int) int {
	esoteric := 0
	for _, id := range e.Elements {
		if el, ok := g.catalog.Element(id); ok && el.Esoteric {
			esoteric++
		}
	}
	cost := e.BaseMana + esoteric*10 + len(e.CodeBits)*5 - level/5
	if cost < 5 {
		return 5
	}
	return cost
}

// Spell builds the effect record for a crafted entry.
func (g *Generator) Spell(e game.Entry, caster game.Character, q game.QualityTier) game.SpellEffect {
	mult := SpellMultiplier(q)
	base := spellBase(e, caster.Level)
	fx := game.SpellEffect{
		ID:           g.newID("spell"),
		Name:         e.Name,
		Entry:        e.Key,
		Tier:         e.Tier,
		Level:        caster.Level,
		Power:        SpellPower(e, caster.Level, q),
		ManaCost:     g.ManaCost(e, caster.Level),
		DataCost:     e.DataCost,
		Epic:         e.EpicVariant,
		Quality:      q,
		Experimental: e.Experimental,
		Caster:       caster.Name,
		CreatedAt:    g.now(),
	}
	var attack, healing, defense bool
	for _, id := range e.CodeBits {
		b, ok := g.catalog.CodeBit(id)
		if !ok {
			continue
		}
		switch {
		case b.Style.DealsDamage():
			attack = true
		case b.Style == game.StyleSupportive:
			healing = true
		case b.Style == game.StyleDefensive:
			defense = true
		}
	}
	if attack {
		fx.Attack = int(math.Floor(base * 1.0 * mult))
	}
	if healing {
		fx.Healing = int(math.Floor(base * 1.0 * mult))
	}
	if defense {
		fx.Defense = int(math.Floor(base * 0.6 * mult))
	}
	return fx
}

// ExperimentalSpellName joins the sorted elements and code bits, e.g.
// "chaos + water:drain". It depends on the composition alone.
func ExperimentalSpellName(c game.Composition) string {
	return strings.Join(c.Elements, " + ") + ":" + strings.Join(c.CodeBits, " + ")
}

// ExperimentalSpell derives a registry entry for an unregistered spell
// composition. Any tier-3+ ingredient or a critical roll makes it epic.
func (g *Generator) ExperimentalSpell(c game.Composition, q game.QualityTier) game.Entry {
	baseMana := 0
	epic := q == game.QualityCritical
	for _, id := range c.Elements {
		if el, ok := g.catalog.Element(id); ok {
			baseMana += el.Tier * 5
			if el.Tier >= 3 {
				epic = true
			}
		}
	}
	for _, id := range c.CodeBits {
		if b, ok := g.catalog.CodeBit(id); ok {
			baseMana += b.ManaBase
			if b.Tier >= 3 {
				epic = true
			}
		}
	}
	e := game.Entry{
		Name:         ExperimentalSpellName(c),
		Kind:         game.EntryKindSpell,
		Tier:         2,
		Elements:     c.Elements,
		CodeBits:     c.CodeBits,
		BaseMana:     baseMana,
		DataCost:     150,
		Description:  fmt.Sprintf("Experimental spell: %s bound with %s", strings.Join(c.Elements, " + "), strings.Join(c.CodeBits, " + ")),
		EpicVariant:  epic,
		Experimental: true,
	}
	if epic {
		e.Tier = 3
		e.DataCost = 250
	}
	return e
}
