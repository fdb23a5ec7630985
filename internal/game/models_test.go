package game

import (
	"encoding/json"
	"testing"
)

func TestCompositionEqualIgnoresOrderAndCase(t *testing.T) {
	a := NewComposition([]string{"fire", "chaos"}, []string{"damage"})
	b := NewComposition([]string{" Chaos", "FIRE"}, []string{"damage"})
	if !a.Equal(b) {
		t.Fatalf("expected %v == %v", a, b)
	}
	if a.Key() != "chaos,fire|damage" {
		t.Fatalf("unexpected key %q", a.Key())
	}
}

func TestCompositionEqualIsLengthExact(t *testing.T) {
	base := NewComposition([]string{"fire"}, []string{"damage"})
	super := NewComposition([]string{"fire", "chaos"}, []string{"damage"})
	sub := NewComposition([]string{"fire"}, nil)
	if base.Equal(super) || base.Equal(sub) {
		t.Fatalf("superset/subset must not be equal")
	}
}

func TestParseQualityTier(t *testing.T) {
	tests := []struct {
		in   string
		want QualityTier
	}{
		{"", QualityNone},
		{"low", QualityLow},
		{"Medium", QualityMedium},
		{"high", QualityHigh},
		{"critical", QualityCritical},
		{"god", QualityCritical},
		{"supreme", QualityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQualityTier(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseQualityTier(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
	if _, err := ParseQualityTier("legendary"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}

func TestEntryRollFloorJSON(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"name":"Inferno","requires_roll":"high"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.RequiresRoll != QualityHigh {
		t.Fatalf("expected high floor, got %v", e.RequiresRoll)
	}
	if e.MeetsRollFloor(QualityMedium) || !e.MeetsRollFloor(QualityCritical) {
		t.Fatalf("floor check wrong")
	}
	if !(Entry{}).MeetsRollFloor(QualityLow) {
		t.Fatalf("entry without floor accepts any tier")
	}
}
