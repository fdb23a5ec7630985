package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericogr/technonomicon/internal/game"
)

// Playstyle summarizes how a caster has been crafting.
type Playstyle string

const (
	PlaystyleAggressive   Playstyle = "aggressive"
	PlaystyleDefensive    Playstyle = "defensive"
	PlaystyleHybrid       Playstyle = "hybrid"
	PlaystyleExperimental Playstyle = "experimental"
)

// History is the slice of discovery state the Warden reward is woven from.
type History struct {
	ElementUsage map[string]int
	CodeBitUsage map[string]int
	// Discovered holds every recorded spell and ritual entry.
	Discovered []game.Entry
	// Fallback elements are used when fewer than two elements were ever
	// crafted with.
	Fallback []string
}

// FavoriteElements returns up to n element ids ordered by usage, ties broken
// by id, padded from the fallback list.
func FavoriteElements(h History, n int) []string {
	type used struct {
		id    string
		count int
	}
	var all []used
	for id, c := range h.ElementUsage {
		if c > 0 {
			all = append(all, used{id, c})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].id < all[j].id
	})
	out := make([]string, 0, n)
	seen := map[string]bool{}
	for _, u := range all {
		if len(out) == n {
			return out
		}
		out = append(out, u.id)
		seen[u.id] = true
	}
	fallback := append([]string(nil), h.Fallback...)
	sort.Strings(fallback)
	for _, id := range fallback {
		if len(out) == n {
			break
		}
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

// PlaystyleOf classifies the history. Mostly experimental discoveries make
// an experimental caster; otherwise offensive against defensive code-bit
// usage decides, with a tie meaning hybrid.
func (g *Generator) PlaystyleOf(h History) Playstyle {
	experimental := 0
	for _, e := range h.Discovered {
		if e.Experimental {
			experimental++
		}
	}
	if experimental > 0 && experimental*2 >= len(h.Discovered) {
		return PlaystyleExperimental
	}
	offense, defense := 0, 0
	for id, n := range h.CodeBitUsage {
		b, ok := g.catalog.CodeBit(id)
		if !ok {
			continue
		}
		switch {
		case b.Style.DealsDamage():
			offense += n
		case b.Style == game.StyleSupportive || b.Style == game.StyleDefensive:
			defense += n
		}
	}
	switch {
	case offense > defense:
		return PlaystyleAggressive
	case defense > offense:
		return PlaystyleDefensive
	default:
		return PlaystyleHybrid
	}
}

// BonusSpell is the templated reward for defeating the Technonomicon
// Warden: a tier-4 epic spell binding the caster's two favorite elements
// with transmute.
func (g *Generator) BonusSpell(h History) game.Entry {
	style := g.PlaystyleOf(h)
	elements := FavoriteElements(h, 2)
	c := game.NewComposition(elements, []string{"transmute"})
	baseMana := 0
	for _, id := range c.Elements {
		if el, ok := g.catalog.Element(id); ok {
			baseMana += el.Tier * 5
		}
	}
	if b, ok := g.catalog.CodeBit("transmute"); ok {
		baseMana += b.ManaBase
	}
	return game.Entry{
		Name:        fmt.Sprintf("Warden's %s Codex of %s", titleCase(string(style)), strings.Join(titled(c.Elements), " and ")),
		Kind:        game.EntryKindSpell,
		Tier:        4,
		Elements:    c.Elements,
		CodeBits:    c.CodeBits,
		BaseMana:    baseMana,
		DataCost:    500,
		Description: fmt.Sprintf("The Technonomicon weaves your %s playstyle into a new spell.", style),
		EpicVariant: true,
		Custom:      true,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func titled(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = titleCase(id)
	}
	return out
}
