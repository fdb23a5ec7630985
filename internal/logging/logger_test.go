package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestInfoWritesJSONLine(t *testing.T) {
	buf := capture(t)
	Info("spell crafted", Fields{"spell": "Fireball"})

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if line["level"] != "info" || line["msg"] != "spell crafted" || line["spell"] != "Fireball" {
		t.Fatalf("unexpected line: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}

func TestErrorIncludesErrorText(t *testing.T) {
	buf := capture(t)
	Error("save failed", errors.New("disk full"), nil)
	if !strings.Contains(buf.String(), `"error":"disk full"`) {
		t.Fatalf("expected error field, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelWarn)
	Debug("roll", nil)
	Info("harvest", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	Warn("threshold not met", nil)
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestCallerFieldsAreNotMutated(t *testing.T) {
	capture(t)
	f := Fields{"k": "v"}
	Info("x", f)
	if len(f) != 1 {
		t.Fatalf("caller fields mutated: %v", f)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"WARN", LevelWarn},
		{" error ", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
