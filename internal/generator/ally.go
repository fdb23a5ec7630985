package generator

import (
	"fmt"
	"math"
	"strings"

	"github.com/ericogr/technonomicon/internal/game"
)

var fallbackNames = []string{"Spirit", "Entity", "Manifestation"}

// AllyMultiplier scales ally stats by quality. Medium and low share 1.0.
func AllyMultiplier(q game.QualityTier) float64 {
	switch q {
	case game.QualityCritical:
		return 1.5
	case game.QualityHigh:
		return 1.2
	default:
		return 1.0
	}
}

// Name draws uniformly from the archetype's pool.
func (g *Generator) Name(archetype string) string {
	pool := g.catalog.NamePool(archetype)
	if len(pool) == 0 {
		pool = fallbackNames
	}
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) relationship(q game.QualityTier) *game.Relationship {
	loyalty := 75
	if q == game.QualityCritical {
		loyalty = 100
	}
	return &game.Relationship{
		Loyalty:       loyalty,
		Compatibility: g.rng.Float64()*30 + 70,
		Memories:      []string{},
	}
}

// Ally summons the companion of a registered ritual.
func (g *Generator) Ally(e game.Entry, summoner game.Character, q game.QualityTier) game.Ally {
	mult := AllyMultiplier(q)
	base := float64(summoner.Level*2 + e.Tier*5)
	hp := int(math.Floor(base * mult))

	archetype := ""
	var personality *game.Personality
	if e.Personality != nil {
		p := *e.Personality
		p.Traits = append([]string(nil), p.Traits...)
		personality = &p
		archetype = p.Archetype
	}
	return game.Ally{
		ID:           g.newID("ally"),
		Name:         g.Name(archetype),
		Kind:         game.AllyKindAlly,
		Ritual:       e.Name,
		Tier:         summoner.Level/5 + e.Tier,
		Level:        summoner.Level,
		HP:           hp,
		MaxHP:        hp,
		Attack:       int(math.Floor(base * 0.8 * mult)),
		Defense:      int(math.Floor(base * 0.6 * mult)),
		Personality:  personality,
		Relationship: g.relationship(q),
		Elements:     e.Elements,
		DataCost:     e.DataCost,
		ManaRequired: e.BaseMana,
		Description:  e.Description,
		Summoner:     summoner.Name,
		SummonedAt:   g.now(),
		Quality:      q,
	}
}

// ExperimentalAllyName is the sorted elements followed by the non-summon
// code bits, e.g. "chaos + fire damage". It depends on the composition alone.
func ExperimentalAllyName(c game.Composition, action string) string {
	var bits []string
	for _, b := range c.CodeBits {
		if b != action {
			bits = append(bits, b)
		}
	}
	suffix := strings.Join(bits, " + ")
	if suffix == "" {
		suffix = action
	}
	return strings.TrimSpace(strings.Join(c.Elements, " + ") + " " + suffix)
}

func (g *Generator) actionBit() string {
	for _, b := range g.catalog.CodeBits() {
		if b.Action {
			return b.ID
		}
	}
	return "summon"
}

// Personality synthesizes a temperament for an experimental summon. Traits
// come from each element; the temperament is shared only when every element
// agrees, otherwise neutral. Combat style follows the first aggressive or
// supportive code bit.
func (g *Generator) Personality(c game.Composition) game.Personality {
	p := game.Personality{
		Archetype:   strings.Join(c.Elements, "_"),
		Temperament: "neutral",
		CombatStyle: "balanced",
	}
	temperament := ""
	agree := true
	for _, id := range c.Elements {
		el, ok := g.catalog.Element(id)
		if !ok || el.Trait == "" {
			agree = false
			continue
		}
		p.Traits = append(p.Traits, el.Trait)
		if temperament == "" {
			temperament = el.Temperament
		} else if temperament != el.Temperament {
			agree = false
		}
	}
	if agree && temperament != "" {
		p.Temperament = temperament
	}
	for _, style := range []game.CodeBitStyle{game.StyleAggressive, game.StyleSupportive} {
		if g.hasStyle(c, style) {
			p.CombatStyle = string(style)
			break
		}
	}
	return p
}

func (g *Generator) hasStyle(c game.Composition, style game.CodeBitStyle) bool {
	for _, id := range c.CodeBits {
		if b, ok := g.catalog.CodeBit(id); ok && b.Style == style {
			return true
		}
	}
	return false
}

// ExperimentalRitual derives the registry entry for an unregistered ritual
// composition.
func (g *Generator) ExperimentalRitual(c game.Composition) game.Entry {
	p := g.Personality(c)
	ne, nb := len(c.Elements), len(c.CodeBits)
	return game.Entry{
		Name:         ExperimentalAllyName(c, g.actionBit()),
		Kind:         game.EntryKindRitual,
		Tier:         ne + nb,
		Elements:     c.Elements,
		CodeBits:     c.CodeBits,
		BaseMana:     ne*30 + nb*20,
		DataCost:     ne*150 + nb*100,
		Description:  "Custom ritual discovered.",
		Personality:  &p,
		Experimental: true,
		Custom:       true,
	}
}

// ExperimentalAlly materializes the companion of an experimental ritual.
// Ephemeral allies fade after the encounter and never count as active.
func (g *Generator) ExperimentalAlly(e game.Entry, summoner game.Character, q game.QualityTier, ephemeral bool) game.Ally {
	hp := summoner.Level * (len(e.Elements) + 2)
	var personality *game.Personality
	if e.Personality != nil {
		p := *e.Personality
		p.Traits = append([]string(nil), p.Traits...)
		personality = &p
	}
	return game.Ally{
		ID:           g.newID("experimental"),
		Name:         e.Name,
		Kind:         game.AllyKindAlly,
		Ritual:       e.Name,
		Tier:         e.Tier,
		Level:        summoner.Level,
		HP:           hp,
		MaxHP:        hp,
		Attack:       int(math.Floor(float64(summoner.Level) * 1.5)),
		Defense:      int(math.Floor(float64(summoner.Level) * 1.2)),
		Personality:  personality,
		Relationship: g.relationship(q),
		Elements:     e.Elements,
		DataCost:     e.DataCost,
		ManaRequired: e.BaseMana,
		Description:  e.Description,
		Summoner:     summoner.Name,
		SummonedAt:   g.now(),
		Quality:      q,
		Experimental: true,
		Ephemeral:    ephemeral,
	}
}

// Aberration is the hostile creature a botched ritual produces. It is
// stronger than a regular encounter of the summoner's level.
func (g *Generator) Aberration(c game.Composition, summoner game.Character) game.Ally {
	tag := "VOID"
	if len(c.Elements) > 0 {
		tag = strings.ToUpper(c.Elements[0])
	}
	hp := summoner.Level * 4
	return game.Ally{
		ID:          g.newID("aberration"),
		Name:        fmt.Sprintf("Ritual Aberration [%s]", tag),
		Kind:        game.AllyKindAberration,
		Level:       summoner.Level + 2,
		HP:          hp,
		MaxHP:       hp,
		Attack:      summoner.Level * 2,
		Defense:     int(math.Floor(float64(summoner.Level) * 0.8)),
		Elements:    c.Elements,
		Description: "A warped creature born from ritual failure.",
		Memory:      "Accidentally summoned by " + summoner.Name,
		Summoner:    summoner.Name,
		SummonedAt:  g.now(),
		Quality:     game.QualityLow,
		Hostile:     true,
	}
}
