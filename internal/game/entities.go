package game

import "time"

// SpellEffect is the record produced when a spell craft resolves.
type SpellEffect struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Entry        string      `json:"entry"`
	Tier         int         `json:"tier"`
	Level        int         `json:"level"`
	Power        int         `json:"power"`
	Attack       int         `json:"attack"`
	Defense      int         `json:"defense"`
	Healing      int         `json:"healing"`
	ManaCost     int         `json:"mana_cost"`
	DataCost     int         `json:"data_cost"`
	Epic         bool        `json:"epic"`
	Quality      QualityTier `json:"quality"`
	Experimental bool        `json:"experimental,omitempty"`
	Ephemeral    bool        `json:"ephemeral,omitempty"`
	Caster       string      `json:"caster"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AllyKind separates summoned allies from the hostile aberrations a failed
// ritual produces.
type AllyKind string

const (
	AllyKindAlly       AllyKind = "ally"
	AllyKindAberration AllyKind = "aberration"
)

// Relationship is the loyalty/memory sub-record kept for each ally.
type Relationship struct {
	Loyalty       int      `json:"loyalty"`
	Compatibility float64  `json:"compatibility"`
	Memories      []string `json:"memories"`
}

// Ally is a summoned companion or, when Hostile, a ritual aberration.
type Ally struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Kind         AllyKind      `json:"kind"`
	Ritual       string        `json:"ritual,omitempty"`
	Tier         int           `json:"tier"`
	Level        int           `json:"level"`
	HP           int           `json:"hp"`
	MaxHP        int           `json:"max_hp"`
	Attack       int           `json:"attack"`
	Defense      int           `json:"defense"`
	Personality  *Personality  `json:"personality,omitempty"`
	Relationship *Relationship `json:"relationship,omitempty"`
	Elements     []string      `json:"elements,omitempty"`
	DataCost     int           `json:"data_cost,omitempty"`
	ManaRequired int           `json:"mana_required,omitempty"`
	Description  string        `json:"description,omitempty"`
	Memory       string        `json:"memory,omitempty"`
	Summoner     string        `json:"summoner"`
	SummonedAt   time.Time     `json:"summoned_at"`
	Quality      QualityTier   `json:"quality"`
	Experimental bool          `json:"experimental,omitempty"`
	Ephemeral    bool          `json:"ephemeral,omitempty"`
	Hostile      bool          `json:"hostile,omitempty"`
}

// Clone returns a copy that shares no pointers or slices with a.
func (a Ally) Clone() Ally {
	out := a
	if a.Personality != nil {
		p := *a.Personality
		p.Traits = append([]string(nil), a.Personality.Traits...)
		out.Personality = &p
	}
	if a.Relationship != nil {
		r := *a.Relationship
		r.Memories = append([]string{}, a.Relationship.Memories...)
		out.Relationship = &r
	}
	out.Elements = append([]string(nil), a.Elements...)
	return out
}

// Miniboss is the fixed descriptor spawned by a supreme library evolution.
// The battle itself is resolved outside this engine.
type Miniboss struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	HP          int    `json:"hp"`
	Description string `json:"description"`
	Reward      string `json:"reward"`
}

// TechnonomiconWarden is the guardian a supreme library evolution spawns.
func TechnonomiconWarden() Miniboss {
	return Miniboss{
		Name:        "The Technonomicon Warden",
		Level:       25,
		HP:          500,
		Description: "A guardian entity that protects the grimoire's deepest secrets.",
		Reward:      "Bonus spell woven from the caster's playstyle",
	}
}
