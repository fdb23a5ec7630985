package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/registry"
)

func TestDefaultCatalog(t *testing.T) {
	lc, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if len(lc.Spells) != 8 || len(lc.Rituals) != 8 {
		t.Fatalf("expected 8 spells and 8 rituals, got %d and %d", len(lc.Spells), len(lc.Rituals))
	}
	if got := lc.Catalog.CoreElementIDs(); len(got) != 5 {
		t.Fatalf("expected 5 core elements, got %v", got)
	}
	if got := lc.Catalog.EsotericElementIDs(); len(got) != 8 {
		t.Fatalf("expected 8 esoteric elements, got %v", got)
	}
	spells, rituals, err := lc.NewStores()
	if err != nil {
		t.Fatalf("new stores: %v", err)
	}
	fb, ok := spells.Lookup("fireball")
	if !ok || fb.DataCost != 100 || fb.BaseMana != 15 {
		t.Fatalf("unexpected fireball entry: %+v", fb)
	}
	pt, ok := spells.Lookup("Philosopher's Transmute")
	if !ok || pt.RequiresRoll != game.QualityCritical || !pt.EpicVariant {
		t.Fatalf("unexpected philosopher's transmute: %+v", pt)
	}
	wyrm, ok := rituals.Match(game.NewComposition([]string{"chaos", "fire"}, []string{"damage", "summon"}))
	if !ok || wyrm.Name != "Inferno Wyrm" || wyrm.Personality == nil || wyrm.Personality.Archetype != "fire_wyrm" {
		t.Fatalf("unexpected inferno wyrm: %+v", wyrm)
	}
	if pool := lc.Catalog.NamePool("entropy_being"); len(pool) != 5 {
		t.Fatalf("expected entropy_being name pool, got %v", pool)
	}
}

func TestNewStoresAreIndependent(t *testing.T) {
	lc, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	a, _, _ := lc.NewStores()
	b, _, _ := lc.NewStores()
	if _, _, err := a.Promote(game.Entry{Name: "fire + wind:heal", Elements: []string{"fire", "wind"}, CodeBits: []string{"heal"}}); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if len(b.Promoted()) != 0 {
		t.Fatalf("promotion leaked into another store")
	}
}

const tomlCatalog = `
[[elements]]
id = "fire"
tier = 1

[[elements]]
id = "chaos"
tier = 2
esoteric = true

[[code_bits]]
id = "damage"
tier = 1
mana_base = 15
core = true
style = "aggressive"

[[code_bits]]
id = "summon"
tier = 3
mana_base = 50
action = true

[[spells]]
name = "Fireball"
tier = 1
elements = ["fire"]
code_bits = ["damage"]
base_mana = 15
data_cost = 100

[[rituals]]
name = "Chaos Imp"
tier = 2
elements = ["chaos"]
code_bits = ["summon"]
data_cost = 300
requires_roll = "high"

[rituals.personality]
archetype = "imp"
temperament = "wild"
combat_style = "aggressive"

[name_pools]
imp = ["Skrit", "Nib"]
`

func TestLoadCatalogTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(tomlCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	lc, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load toml: %v", err)
	}
	if len(lc.Spells) != 1 || len(lc.Rituals) != 1 {
		t.Fatalf("unexpected entries: %+v", lc)
	}
	imp := lc.Rituals[0]
	if imp.Key != "chaos_imp" || imp.RequiresRoll != game.QualityHigh || imp.Personality.Archetype != "imp" {
		t.Fatalf("unexpected ritual: %+v", imp)
	}
	if b, ok := lc.Catalog.CodeBit("damage"); !ok || b.Style != game.StyleAggressive {
		t.Fatalf("unexpected damage code bit: %+v", b)
	}
}

func TestLoadCatalogEmptyPathUsesDefault(t *testing.T) {
	lc, err := LoadCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	if len(lc.Spells) == 0 {
		t.Fatal("expected default spells")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to read catalog file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

const baseJSON = `"elements":[{"id":"fire","tier":1},{"id":"chaos","tier":2,"esoteric":true}],
"code_bits":[{"id":"damage","tier":1,"core":true},{"id":"summon","tier":3,"action":true}]`

func TestParseCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no elements", `{"code_bits":[{"id":"damage","tier":1}]}`, "elements is empty"},
		{"no code bits", `{"elements":[{"id":"fire","tier":1}]}`, "code_bits is empty"},
		{"bad element tier", `{"elements":[{"id":"fire","tier":9}],"code_bits":[{"id":"summon","tier":1,"action":true}]}`, "outside 1..4"},
		{"duplicate element", `{"elements":[{"id":"fire","tier":1},{"id":"FIRE","tier":1}],"code_bits":[{"id":"summon","tier":1,"action":true}]}`, "duplicate identifier"},
		{"no action bit", `{"elements":[{"id":"fire","tier":1}],"code_bits":[{"id":"damage","tier":1}]}`, "exactly one code bit"},
		{"unknown style", `{"elements":[{"id":"fire","tier":1}],"code_bits":[{"id":"summon","tier":1,"action":true,"style":"sneaky"}]}`, "unknown style"},
		{"unknown element", `{` + baseJSON + `,"spells":[{"name":"X","tier":1,"elements":["void"],"code_bits":["damage"]}]}`, "unknown element"},
		{"duplicate name", `{` + baseJSON + `,"spells":[{"name":"Bolt","tier":1,"elements":["fire"],"code_bits":["damage"]},{"name":"bolt","tier":1,"elements":["chaos"],"code_bits":["damage"]}]}`, "duplicate spell name"},
		{"shared composition", `{` + baseJSON + `,"spells":[{"name":"A","tier":1,"elements":["fire"],"code_bits":["damage"]},{"name":"B","tier":1,"elements":["fire"],"code_bits":["damage"]}]}`, "repeats the composition"},
		{"ritual without action", `{` + baseJSON + `,"rituals":[{"name":"R","tier":1,"elements":["fire"],"code_bits":["damage"],"personality":{"archetype":"x"}}]}`, "missing the action code bit"},
		{"spell of only action", `{` + baseJSON + `,"spells":[{"name":"S","tier":1,"elements":["fire"],"code_bits":["summon"]}]}`, "no non-action code bit"},
		{"ritual without personality", `{` + baseJSON + `,"rituals":[{"name":"R","tier":1,"elements":["fire"],"code_bits":["summon"]}]}`, "missing 'personality'"},
		{"bad roll floor", `{` + baseJSON + `,"spells":[{"name":"S","tier":1,"elements":["fire"],"code_bits":["damage"],"requires_roll":"legendary"}]}`, "unknown quality tier"},
		{"empty composition", `{` + baseJSON + `,"spells":[{"name":"S","tier":1,"elements":[],"code_bits":["damage"]}]}`, "at least one element"},
		{"empty name pool", `{` + baseJSON + `,"name_pools":{"imp":[]}}`, "name pool 'imp' is empty"},
		{"malformed", `{`, "failed to parse catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.body), FormatJSON, "test")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestUnknownElementErrorIsWrapped(t *testing.T) {
	_, err := ParseCatalog([]byte(`{`+baseJSON+`,"spells":[{"name":"X","tier":1,"elements":["void"],"code_bits":["damage"]}]}`), FormatJSON, "test")
	if err == nil || !strings.Contains(err.Error(), registry.ErrUnknownElement.Error()) {
		t.Fatalf("expected unknown element error, got %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor("a/b.TOML") != FormatTOML || FormatFor("a.json") != FormatJSON || FormatFor("noext") != FormatJSON {
		t.Fatal("unexpected format detection")
	}
}
