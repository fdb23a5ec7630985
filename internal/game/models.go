package game

import "github.com/ericogr/technonomicon/internal/keys"

// EntryKind separates the two registries that share the resolution engine.
type EntryKind string

const (
	EntryKindSpell  EntryKind = "spell"
	EntryKindRitual EntryKind = "ritual"
)

// Element is one tag of the elemental vocabulary. Core elements are always
// available; esoteric ones must be unlocked through library evolution.
type Element struct {
	ID         string `json:"id"`
	Tier       int    `json:"tier"`
	DataWeight int    `json:"data_weight"`
	Color      string `json:"color"`
	Esoteric   bool   `json:"esoteric"`
	// Temperament and Trait feed the personality synthesized for
	// experimental summons.
	Temperament string `json:"temperament,omitempty"`
	Trait       string `json:"trait,omitempty"`
}

// CodeBitStyle drives the combat style of experimental summons.
type CodeBitStyle string

const (
	StyleNeutral    CodeBitStyle = ""
	StyleAggressive CodeBitStyle = "aggressive"
	StyleSupportive CodeBitStyle = "supportive"
	StyleDefensive  CodeBitStyle = "defensive"
	// StyleOffensive bits deal damage in spells without flavoring a
	// summon's combat style.
	StyleOffensive CodeBitStyle = "offensive"
)

// DealsDamage reports whether the style contributes spell attack.
func (s CodeBitStyle) DealsDamage() bool {
	return s == StyleAggressive || s == StyleOffensive
}

// CodeBit is one tag of the code vocabulary.
type CodeBit struct {
	ID           string `json:"id"`
	Tier         int    `json:"tier"`
	ManaBase     int    `json:"mana_base"`
	DataRequired int    `json:"data_required"`
	Core         bool   `json:"core"`
	// Action marks the designated bit a ritual cannot be performed without
	// (summon). A spell made only of action bits is meaningless.
	Action bool         `json:"action"`
	Style  CodeBitStyle `json:"style,omitempty"`
}

// Personality describes a summoned ally's temperament. Known rituals carry a
// fixed personality; experimental ones get a synthesized one.
type Personality struct {
	Archetype   string   `json:"archetype"`
	Temperament string   `json:"temperament"`
	CombatStyle string   `json:"combat_style"`
	Traits      []string `json:"traits,omitempty"`
}

// Entry is a registered spell or ritual keyed by its normalized name.
type Entry struct {
	Key          string       `json:"key"`
	Name         string       `json:"name"`
	Kind         EntryKind    `json:"kind"`
	Tier         int          `json:"tier"`
	Elements     []string     `json:"elements"`
	CodeBits     []string     `json:"code_bits"`
	BaseMana     int          `json:"base_mana"`
	DataCost     int          `json:"data_cost"`
	Description  string       `json:"description,omitempty"`
	EpicVariant  bool         `json:"epic_variant,omitempty"`
	RequiresRoll QualityTier  `json:"requires_roll,omitempty"`
	Personality  *Personality `json:"personality,omitempty"`
	Experimental bool         `json:"experimental,omitempty"`
	Custom       bool         `json:"custom,omitempty"`
}

// Composition returns the entry's element and code-bit sets.
func (e Entry) Composition() Composition {
	return NewComposition(e.Elements, e.CodeBits)
}

// LevelRequired is the minimum character level that can craft the entry.
func (e Entry) LevelRequired() int {
	return e.Tier * 5
}

// MeetsRollFloor reports whether q satisfies the entry's optional floor.
func (e Entry) MeetsRollFloor(q QualityTier) bool {
	if e.RequiresRoll == QualityNone {
		return true
	}
	return q >= e.RequiresRoll
}

// Composition is an unordered pair of element and code-bit sets. Both
// slices are kept sorted so equality is a plain slice comparison.
type Composition struct {
	Elements []string `json:"elements"`
	CodeBits []string `json:"code_bits"`
}

// NewComposition trims, lower-cases and sorts both sets. Duplicates are
// preserved so validation can reject them.
func NewComposition(elements, codeBits []string) Composition {
	return Composition{Elements: keys.SortedSet(elements), CodeBits: keys.SortedSet(codeBits)}
}

// Key is the canonical string form used for the attempted-composition set.
func (c Composition) Key() string {
	return keys.CompositionKey(c.Elements, c.CodeBits)
}

// Equal reports set equality of both halves.
func (c Composition) Equal(o Composition) bool {
	return equalSorted(c.Elements, o.Elements) && equalSorted(c.CodeBits, o.CodeBits)
}

// HasCodeBit reports whether id is part of the code-bit set.
func (c Composition) HasCodeBit(id string) bool {
	for _, b := range c.CodeBits {
		if b == id {
			return true
		}
	}
	return false
}

func equalSorted(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Buff is a situational modifier applied to a named skill ("all" matches
// every skill).
type Buff struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Character is the acting character supplied by the game loop.
type Character struct {
	Name       string         `json:"name"`
	Level      int            `json:"level"`
	ClassBonus map[string]int `json:"class_bonus,omitempty"`
	Equipment  map[string]int `json:"equipment,omitempty"`
	Buffs      []Buff         `json:"buffs,omitempty"`
	Debuffs    []Buff         `json:"debuffs,omitempty"`
}
