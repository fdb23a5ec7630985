package version

import "testing"

func TestInfoString(t *testing.T) {
	i := Info{Version: "v0.3.0", Commit: "abc123"}
	if got := i.String(); got != "v0.3.0 (abc123)" {
		t.Fatalf("unexpected %q", got)
	}
	i.Dirty = true
	if got := i.String(); got != "v0.3.0 (abc123, dirty)" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestCurrentParsesDirty(t *testing.T) {
	old := Dirty
	t.Cleanup(func() { Dirty = old })
	Dirty = "true"
	if !Current().Dirty {
		t.Fatalf("expected dirty build")
	}
}
