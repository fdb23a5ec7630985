package generator

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/registry"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *registry.Catalog {
	t.Helper()
	cat, err := registry.NewCatalog(
		[]game.Element{
			{ID: "fire", Tier: 1, Temperament: "aggressive", Trait: "passionate"},
			{ID: "water", Tier: 1, Temperament: "calm", Trait: "adaptive"},
			{ID: "wind", Tier: 1, Temperament: "playful", Trait: "unpredictable"},
			{ID: "chaos", Tier: 2, Esoteric: true, Temperament: "wild", Trait: "chaotic"},
			{ID: "liminality", Tier: 3, Esoteric: true, Temperament: "enigmatic", Trait: "boundary-bound"},
			{ID: "atoms", Tier: 3, Esoteric: true},
		},
		[]game.CodeBit{
			{ID: "damage", Tier: 1, ManaBase: 15, Core: true, Style: game.StyleAggressive},
			{ID: "heal", Tier: 1, ManaBase: 20, Core: true, Style: game.StyleSupportive},
			{ID: "shield", Tier: 1, ManaBase: 20, Core: true, Style: game.StyleDefensive},
			{ID: "drain", Tier: 2, ManaBase: 25, Style: game.StyleOffensive},
			{ID: "summon", Tier: 3, ManaBase: 50, Action: true},
			{ID: "transmute", Tier: 4, ManaBase: 60},
		},
		map[string][]string{"fire_spirit": {"Embercall", "Flamebringer", "Scorch", "Ignara", "Pyrix"}},
	)
	require.NoError(t, err)
	return cat
}

func newGen(t *testing.T, seed int64) *Generator {
	return New(testCatalog(t), rand.New(rand.NewSource(seed))).WithClock(func() time.Time { return fixedNow })
}

var fireball = game.Entry{Key: "fireball", Name: "Fireball", Kind: game.EntryKindSpell, Tier: 1,
	Elements: []string{"fire"}, CodeBits: []string{"damage"}, BaseMana: 15, DataCost: 100}

func TestSpellMultipliers(t *testing.T) {
	assert.Equal(t, 2.0, SpellMultiplier(game.QualityCritical))
	assert.Equal(t, 1.5, SpellMultiplier(game.QualityHigh))
	assert.Equal(t, 1.0, SpellMultiplier(game.QualityMedium))
	assert.Equal(t, 0.6, SpellMultiplier(game.QualityLow))

	assert.Equal(t, 1.5, AllyMultiplier(game.QualityCritical))
	assert.Equal(t, 1.2, AllyMultiplier(game.QualityHigh))
	assert.Equal(t, 1.0, AllyMultiplier(game.QualityMedium))
	assert.Equal(t, 1.0, AllyMultiplier(game.QualityLow))
}

func TestSpellStats(t *testing.T) {
	g := newGen(t, 1)
	fx := g.Spell(fireball, game.Character{Name: "Ada", Level: 5}, game.QualityHigh)

	// base = 15 + 5*1.5 = 22.5
	assert.Equal(t, 33, fx.Power)
	assert.Equal(t, 33, fx.Attack)
	assert.Zero(t, fx.Healing)
	assert.Zero(t, fx.Defense)
	assert.Equal(t, 19, fx.ManaCost)
	assert.Equal(t, "fireball", fx.Entry)
	assert.Equal(t, fixedNow, fx.CreatedAt)
	assert.True(t, strings.HasPrefix(fx.ID, "spell_"))
}

func TestSpellStatsPerStyle(t *testing.T) {
	g := newGen(t, 1)
	e := game.Entry{Name: "Ward", Tier: 1, Elements: []string{"water"}, CodeBits: []string{"heal", "shield"}, BaseMana: 20}
	fx := g.Spell(e, game.Character{Level: 10}, game.QualityMedium)
	assert.Zero(t, fx.Attack)
	assert.Equal(t, 35, fx.Healing)
	assert.Equal(t, 21, fx.Defense)

	drain := game.Entry{Name: "Sap", Tier: 2, Elements: []string{"chaos"}, CodeBits: []string{"drain"}, BaseMana: 25}
	fx = g.Spell(drain, game.Character{Level: 0}, game.QualityLow)
	assert.Equal(t, 15, fx.Attack)
}

func TestManaCost(t *testing.T) {
	g := newGen(t, 1)
	inferno := game.Entry{Elements: []string{"chaos", "fire"}, CodeBits: []string{"damage"}, BaseMana: 30}
	assert.Equal(t, 45, g.ManaCost(inferno, 0))
	assert.Equal(t, 41, g.ManaCost(inferno, 20))

	cheap := game.Entry{Elements: []string{"fire"}, CodeBits: []string{"damage"}, BaseMana: 1}
	assert.Equal(t, 5, g.ManaCost(cheap, 50))
}

func TestExperimentalSpellIsReproducible(t *testing.T) {
	g := newGen(t, 1)
	c := game.NewComposition([]string{"wind", "fire"}, []string{"heal"})
	e := g.ExperimentalSpell(c, game.QualityHigh)
	assert.Equal(t, "fire + wind:heal", e.Name)
	assert.Equal(t, 30, e.BaseMana)
	assert.Equal(t, 2, e.Tier)
	assert.Equal(t, 150, e.DataCost)
	assert.False(t, e.EpicVariant)
	assert.True(t, e.Experimental)

	other := newGen(t, 99).ExperimentalSpell(game.NewComposition([]string{"fire", "wind"}, []string{"heal"}), game.QualityHigh)
	assert.Equal(t, e, other)
}

func TestExperimentalSpellEpic(t *testing.T) {
	g := newGen(t, 1)
	tests := []struct {
		name string
		c    game.Composition
		q    game.QualityTier
	}{
		{"critical roll", game.NewComposition([]string{"fire"}, []string{"heal"}), game.QualityCritical},
		{"tier 3 element", game.NewComposition([]string{"atoms"}, []string{"heal"}), game.QualityMedium},
		{"tier 3 code bit", game.NewComposition([]string{"fire"}, []string{"transmute"}), game.QualityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := g.ExperimentalSpell(tt.c, tt.q)
			assert.True(t, e.EpicVariant)
			assert.Equal(t, 3, e.Tier)
			assert.Equal(t, 250, e.DataCost)
		})
	}
}

func TestAllyFromKnownRitual(t *testing.T) {
	g := newGen(t, 3)
	ritual := game.Entry{Key: "lesser_flame_ally", Name: "Lesser Flame Ally", Kind: game.EntryKindRitual, Tier: 1,
		Elements: []string{"fire"}, CodeBits: []string{"summon"}, BaseMana: 50, DataCost: 250,
		Personality: &game.Personality{Archetype: "fire_spirit", Temperament: "eager", CombatStyle: "aggressive"}}

	a := g.Ally(ritual, game.Character{Name: "Ada", Level: 10}, game.QualityCritical)
	// base = 10*2 + 1*5 = 25
	assert.Equal(t, 37, a.HP)
	assert.Equal(t, 37, a.MaxHP)
	assert.Equal(t, 30, a.Attack)
	assert.Equal(t, 22, a.Defense)
	assert.Equal(t, 3, a.Tier)
	assert.Equal(t, 100, a.Relationship.Loyalty)
	assert.GreaterOrEqual(t, a.Relationship.Compatibility, 70.0)
	assert.Less(t, a.Relationship.Compatibility, 100.0)
	assert.Contains(t, testCatalog(t).NamePool("fire_spirit"), a.Name)
	assert.Equal(t, "eager", a.Personality.Temperament)
	assert.NotSame(t, ritual.Personality, a.Personality)

	b := newGen(t, 3).Ally(ritual, game.Character{Name: "Ada", Level: 10}, game.QualityCritical)
	assert.Equal(t, a.Name, b.Name, "same seed, same name")

	medium := g.Ally(ritual, game.Character{Level: 10}, game.QualityMedium)
	assert.Equal(t, 25, medium.HP)
	assert.Equal(t, 75, medium.Relationship.Loyalty)
}

func TestNameFallsBackForUnknownArchetype(t *testing.T) {
	g := newGen(t, 1)
	assert.Contains(t, fallbackNames, g.Name("nobody"))
}

func TestExperimentalRitual(t *testing.T) {
	g := newGen(t, 1)
	c := game.NewComposition([]string{"fire", "chaos"}, []string{"summon", "damage"})
	e := g.ExperimentalRitual(c)
	assert.Equal(t, "chaos + fire damage", e.Name)
	assert.Equal(t, 4, e.Tier)
	assert.Equal(t, 500, e.DataCost)
	assert.Equal(t, 100, e.BaseMana)
	require.NotNil(t, e.Personality)
	assert.Equal(t, "chaos_fire", e.Personality.Archetype)
	assert.Equal(t, "neutral", e.Personality.Temperament)
	assert.Equal(t, []string{"chaotic", "passionate"}, e.Personality.Traits)
	assert.Equal(t, "aggressive", e.Personality.CombatStyle)

	solo := g.ExperimentalRitual(game.NewComposition([]string{"water"}, []string{"summon"}))
	assert.Equal(t, "water summon", solo.Name)
	assert.Equal(t, "calm", solo.Personality.Temperament)
	assert.Equal(t, "balanced", solo.Personality.CombatStyle)

	healer := g.ExperimentalRitual(game.NewComposition([]string{"water"}, []string{"summon", "heal"}))
	assert.Equal(t, "supportive", healer.Personality.CombatStyle)
}

func TestExperimentalAlly(t *testing.T) {
	g := newGen(t, 1)
	e := g.ExperimentalRitual(game.NewComposition([]string{"fire", "chaos"}, []string{"summon", "damage"}))
	a := g.ExperimentalAlly(e, game.Character{Name: "Ada", Level: 7}, game.QualityHigh, true)
	assert.Equal(t, "chaos + fire damage", a.Name)
	assert.Equal(t, 28, a.HP)
	assert.Equal(t, 10, a.Attack)
	assert.Equal(t, 8, a.Defense)
	assert.True(t, a.Ephemeral)
	assert.True(t, a.Experimental)
	assert.True(t, strings.HasPrefix(a.ID, "experimental_"))
}

func TestAberration(t *testing.T) {
	g := newGen(t, 1)
	a := g.Aberration(game.NewComposition([]string{"wind"}, []string{"summon", "heal"}), game.Character{Name: "Ada", Level: 5})
	assert.Equal(t, "Ritual Aberration [WIND]", a.Name)
	assert.Equal(t, 7, a.Level)
	assert.Equal(t, 20, a.HP)
	assert.Equal(t, 10, a.Attack)
	assert.Equal(t, 4, a.Defense)
	assert.True(t, a.Hostile)
	assert.Equal(t, game.AllyKindAberration, a.Kind)
	assert.Equal(t, "Accidentally summoned by Ada", a.Memory)
}

func TestIDsAreUnique(t *testing.T) {
	g := newGen(t, 1)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := g.Spell(fireball, game.Character{Level: 1}, game.QualityMedium).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFavoriteElements(t *testing.T) {
	h := History{ElementUsage: map[string]int{"fire": 3, "water": 3, "chaos": 5, "wind": 0}}
	assert.Equal(t, []string{"chaos", "fire"}, FavoriteElements(h, 2))

	h = History{ElementUsage: map[string]int{"wind": 1}, Fallback: []string{"water", "fire", "wind"}}
	assert.Equal(t, []string{"wind", "fire"}, FavoriteElements(h, 2))
}

func TestPlaystyleAndBonusSpell(t *testing.T) {
	g := newGen(t, 1)
	tests := []struct {
		name string
		h    History
		want Playstyle
	}{
		{"aggressive", History{CodeBitUsage: map[string]int{"damage": 4, "heal": 1}}, PlaystyleAggressive},
		{"defensive", History{CodeBitUsage: map[string]int{"shield": 2, "drain": 1}}, PlaystyleDefensive},
		{"hybrid", History{CodeBitUsage: map[string]int{"damage": 1, "heal": 1}}, PlaystyleHybrid},
		{"experimental", History{
			CodeBitUsage: map[string]int{"damage": 9},
			Discovered:   []game.Entry{{Key: "a", Experimental: true}, {Key: "b"}},
		}, PlaystyleExperimental},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.PlaystyleOf(tt.h))
		})
	}

	bonus := g.BonusSpell(History{
		ElementUsage: map[string]int{"fire": 4, "chaos": 2},
		CodeBitUsage: map[string]int{"damage": 6},
	})
	assert.Equal(t, "Warden's Aggressive Codex of Chaos and Fire", bonus.Name)
	assert.Equal(t, 4, bonus.Tier)
	assert.Equal(t, []string{"chaos", "fire"}, bonus.Elements)
	assert.Equal(t, []string{"transmute"}, bonus.CodeBits)
	assert.Equal(t, 75, bonus.BaseMana)
	assert.True(t, bonus.EpicVariant)
	assert.True(t, bonus.Custom)
}
