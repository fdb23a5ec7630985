package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ericogr/technonomicon/internal/dice"
	"github.com/fatih/color"
)

func TestRunAttemptCraftJSON(t *testing.T) {
	var buf bytes.Buffer
	err := runAttempt(&buf, kindSpell, attemptFlags{
		elements: []string{"fire"},
		codeBits: []string{"damage"},
		level:    5,
		name:     "Ada",
		data:     150,
		seed:     1,
		rolls:    []int{15},
		asJSON:   true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("expected JSON, got %q", buf.String())
	}
	if out["outcome"] != "known_success" || out["data_cost"].(float64) != 100 {
		t.Fatalf("unexpected result: %v", out)
	}
}

func TestRunAttemptSummonAberration(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	err := runAttempt(&buf, kindRitual, attemptFlags{
		elements: []string{"wind"},
		codeBits: []string{"summon", "heal"},
		level:    3,
		name:     "Ada",
		seed:     1,
		rolls:    []int{5},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := buf.String()
	if !strings.Contains(s, "[✗]") || !strings.Contains(s, "(hostile)") {
		t.Fatalf("expected a hostile aberration, got %q", s)
	}
}

func TestRunAttemptRejected(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	err := runAttempt(&buf, kindSpell, attemptFlags{
		elements: []string{"liminality"},
		codeBits: []string{"summon"},
		level:    1,
		seed:     1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "[⊥]") {
		t.Fatalf("expected rejected marker, got %q", buf.String())
	}
}

func TestRunAttemptRejectsImpossibleRoll(t *testing.T) {
	var buf bytes.Buffer
	err := runAttempt(&buf, kindSpell, attemptFlags{
		elements: []string{"fire"},
		codeBits: []string{"damage"},
		level:    5,
		data:     150,
		seed:     1,
		rolls:    []int{25},
	})
	if !errors.Is(err, dice.ErrRollOutOfRange) {
		t.Fatalf("expected ErrRollOutOfRange, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be printed, got %q", buf.String())
	}
}
