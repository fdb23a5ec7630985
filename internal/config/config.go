package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/keys"
	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/registry"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .toml is read as JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

type elementEntry struct {
	ID          string `json:"id" toml:"id"`
	Tier        int    `json:"tier" toml:"tier"`
	DataWeight  int    `json:"data_weight" toml:"data_weight"`
	Color       string `json:"color" toml:"color"`
	Esoteric    bool   `json:"esoteric" toml:"esoteric"`
	Temperament string `json:"temperament" toml:"temperament"`
	Trait       string `json:"trait" toml:"trait"`
}

type codeBitEntry struct {
	ID           string `json:"id" toml:"id"`
	Tier         int    `json:"tier" toml:"tier"`
	ManaBase     int    `json:"mana_base" toml:"mana_base"`
	DataRequired int    `json:"data_required" toml:"data_required"`
	Core         bool   `json:"core" toml:"core"`
	Action       bool   `json:"action" toml:"action"`
	Style        string `json:"style" toml:"style"`
}

type personalityEntry struct {
	Archetype   string   `json:"archetype" toml:"archetype"`
	Temperament string   `json:"temperament" toml:"temperament"`
	CombatStyle string   `json:"combat_style" toml:"combat_style"`
	Traits      []string `json:"traits" toml:"traits"`
}

type registryEntry struct {
	Name         string            `json:"name" toml:"name"`
	Tier         int               `json:"tier" toml:"tier"`
	Elements     []string          `json:"elements" toml:"elements"`
	CodeBits     []string          `json:"code_bits" toml:"code_bits"`
	BaseMana     int               `json:"base_mana" toml:"base_mana"`
	DataCost     int               `json:"data_cost" toml:"data_cost"`
	Description  string            `json:"description" toml:"description"`
	EpicVariant  bool              `json:"epic_variant" toml:"epic_variant"`
	RequiresRoll string            `json:"requires_roll" toml:"requires_roll"`
	Personality  *personalityEntry `json:"personality" toml:"personality"`
}

type rawCatalog struct {
	Elements  []elementEntry      `json:"elements" toml:"elements"`
	CodeBits  []codeBitEntry      `json:"code_bits" toml:"code_bits"`
	Spells    []registryEntry     `json:"spells" toml:"spells"`
	Rituals   []registryEntry     `json:"rituals" toml:"rituals"`
	NamePools map[string][]string `json:"name_pools" toml:"name_pools"`
}

// LoadedCatalog is a validated catalog: the vocabulary plus the seed
// entries of both registries.
type LoadedCatalog struct {
	Catalog *registry.Catalog
	Spells  []game.Entry
	Rituals []game.Entry
}

// NewStores builds fresh registry stores seeded with the catalog entries.
// Each session gets its own pair so promotions stay session-local.
func (lc *LoadedCatalog) NewStores() (spells, rituals registry.Store, err error) {
	spells, err = registry.NewStore(game.EntryKindSpell, lc.Spells)
	if err != nil {
		return nil, nil, err
	}
	rituals, err = registry.NewStore(game.EntryKindRitual, lc.Rituals)
	if err != nil {
		return nil, nil, err
	}
	return spells, rituals, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*LoadedCatalog, error) {
	return ParseCatalog(defaultCatalog, FormatJSON, "default catalog")
}

// LoadCatalog reads the catalog at path, or the built-in catalog when path
// is empty.
func LoadCatalog(path string) (*LoadedCatalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return ParseCatalog(b, FormatFor(path), path)
}

// ParseCatalog decodes and validates catalog data. source only labels
// error messages.
func ParseCatalog(data []byte, format Format, source string) (*LoadedCatalog, error) {
	var rc rawCatalog
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&rc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			logging.Warn("catalog has unknown keys", logging.Fields{"source": source, "keys": fmt.Sprint(undecoded)})
		}
	default:
		if err := json.Unmarshal(data, &rc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
		}
	}
	return build(rc, source)
}

func build(rc rawCatalog, source string) (*LoadedCatalog, error) {
	if len(rc.Elements) == 0 {
		return nil, fmt.Errorf("catalog %s: elements is empty (provide 'elements' array)", source)
	}
	if len(rc.CodeBits) == 0 {
		return nil, fmt.Errorf("catalog %s: code_bits is empty (provide 'code_bits' array)", source)
	}

	elements := make([]game.Element, 0, len(rc.Elements))
	for _, e := range rc.Elements {
		if e.Tier < 1 || e.Tier > 4 {
			return nil, fmt.Errorf("catalog %s: element '%s' has tier %d outside 1..4", source, e.ID, e.Tier)
		}
		elements = append(elements, game.Element{
			ID:          e.ID,
			Tier:        e.Tier,
			DataWeight:  e.DataWeight,
			Color:       e.Color,
			Esoteric:    e.Esoteric,
			Temperament: e.Temperament,
			Trait:       e.Trait,
		})
	}

	actions := 0
	codeBits := make([]game.CodeBit, 0, len(rc.CodeBits))
	for _, b := range rc.CodeBits {
		if b.Tier < 1 || b.Tier > 4 {
			return nil, fmt.Errorf("catalog %s: code bit '%s' has tier %d outside 1..4", source, b.ID, b.Tier)
		}
		style := game.CodeBitStyle(strings.ToLower(strings.TrimSpace(b.Style)))
		switch style {
		case game.StyleNeutral, game.StyleAggressive, game.StyleSupportive, game.StyleDefensive, game.StyleOffensive:
		default:
			return nil, fmt.Errorf("catalog %s: code bit '%s' has unknown style '%s'", source, b.ID, b.Style)
		}
		if b.Action {
			actions++
		}
		codeBits = append(codeBits, game.CodeBit{
			ID:           b.ID,
			Tier:         b.Tier,
			ManaBase:     b.ManaBase,
			DataRequired: b.DataRequired,
			Core:         b.Core,
			Action:       b.Action,
			Style:        style,
		})
	}
	if actions != 1 {
		return nil, fmt.Errorf("catalog %s: exactly one code bit must be marked 'action', found %d", source, actions)
	}

	for archetype, pool := range rc.NamePools {
		if len(pool) == 0 {
			return nil, fmt.Errorf("catalog %s: name pool '%s' is empty", source, archetype)
		}
	}

	cat, err := registry.NewCatalog(elements, codeBits, rc.NamePools)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	spells, err := buildEntries(cat, rc.Spells, game.EntryKindSpell, source)
	if err != nil {
		return nil, err
	}
	rituals, err := buildEntries(cat, rc.Rituals, game.EntryKindRitual, source)
	if err != nil {
		return nil, err
	}
	return &LoadedCatalog{Catalog: cat, Spells: spells, Rituals: rituals}, nil
}

// buildEntries converts and cross-validates one registry: unique keys,
// known ids, the action bit rule per kind and unique compositions.
func buildEntries(cat *registry.Catalog, raw []registryEntry, kind game.EntryKind, source string) ([]game.Entry, error) {
	out := make([]game.Entry, 0, len(raw))
	keySet := make(map[string]struct{}, len(raw))
	compSet := make(map[string]string, len(raw))
	for _, r := range raw {
		key := keys.NormalizeName(r.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog %s: %s entry missing 'name'", source, kind)
		}
		if _, exists := keySet[key]; exists {
			return nil, fmt.Errorf("catalog %s: duplicate %s name '%s'", source, kind, r.Name)
		}
		keySet[key] = struct{}{}
		if r.Tier < 1 || r.Tier > 4 {
			return nil, fmt.Errorf("catalog %s: %s '%s' has tier %d outside 1..4", source, kind, r.Name, r.Tier)
		}
		floor, err := game.ParseQualityTier(r.RequiresRoll)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %s '%s': %w", source, kind, r.Name, err)
		}

		e := game.Entry{
			Key:          key,
			Name:         r.Name,
			Kind:         kind,
			Tier:         r.Tier,
			BaseMana:     r.BaseMana,
			DataCost:     r.DataCost,
			Description:  r.Description,
			EpicVariant:  r.EpicVariant,
			RequiresRoll: floor,
		}
		c := game.NewComposition(r.Elements, r.CodeBits)
		e.Elements, e.CodeBits = c.Elements, c.CodeBits
		if len(c.Elements) == 0 || len(c.CodeBits) == 0 {
			return nil, fmt.Errorf("catalog %s: %s '%s' needs at least one element and one code bit", source, kind, r.Name)
		}
		if err := cat.CheckKnown(c); err != nil {
			return nil, fmt.Errorf("catalog %s: %s '%s': %w", source, kind, r.Name, err)
		}
		if err := checkActionRule(cat, c, kind); err != nil {
			return nil, fmt.Errorf("catalog %s: %s '%s': %w", source, kind, r.Name, err)
		}
		if other, exists := compSet[c.Key()]; exists {
			return nil, fmt.Errorf("catalog %s: %s '%s' repeats the composition of '%s'", source, kind, r.Name, other)
		}
		compSet[c.Key()] = r.Name

		if r.Personality != nil {
			e.Personality = &game.Personality{
				Archetype:   r.Personality.Archetype,
				Temperament: r.Personality.Temperament,
				CombatStyle: r.Personality.CombatStyle,
				Traits:      r.Personality.Traits,
			}
		} else if kind == game.EntryKindRitual {
			return nil, fmt.Errorf("catalog %s: ritual '%s' missing 'personality'", source, r.Name)
		}
		out = append(out, e)
	}
	return out, nil
}

func checkActionRule(cat *registry.Catalog, c game.Composition, kind game.EntryKind) error {
	hasAction, hasOther := false, false
	for _, id := range c.CodeBits {
		b, _ := cat.CodeBit(id)
		if b.Action {
			hasAction = true
		} else {
			hasOther = true
		}
	}
	if kind == game.EntryKindRitual && !hasAction {
		return fmt.Errorf("ritual is missing the action code bit")
	}
	if kind == game.EntryKindSpell && !hasOther {
		return fmt.Errorf("spell has no non-action code bit")
	}
	return nil
}
