package registry

import (
	"errors"
	"fmt"

	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/keys"
)

var (
	// ErrKeyConflict is returned when an entry is registered under a key that
	// already maps to a different composition.
	ErrKeyConflict = errors.New("registry key already bound to a different composition")
	ErrWrongKind   = errors.New("entry kind does not match registry")
	ErrEmptyName   = errors.New("entry name normalizes to an empty key")
)

// Store is the append-only registry of one entry kind. Entries are never
// removed or rewritten; promotion only appends.
type Store interface {
	Kind() game.EntryKind
	// Match returns the first registered entry whose composition is
	// set-equal to c.
	Match(c game.Composition) (game.Entry, bool)
	Lookup(key string) (game.Entry, bool)
	ByTier(tier int) []game.Entry
	All() []game.Entry
	// Promoted returns the entries appended after construction, in order.
	Promoted() []game.Entry
	// Promote appends e under its normalized name. Promoting a composition
	// already registered under the same key is a no-op that returns the
	// existing entry with created=false.
	Promote(e game.Entry) (entry game.Entry, created bool, err error)
}

type memStore struct {
	kind    game.EntryKind
	entries []game.Entry
	byKey   map[string]int
	base    int
}

// NewStore builds an in-memory store seeded with the static entries. Seed
// entries must have unique keys and unique compositions.
func NewStore(kind game.EntryKind, seed []game.Entry) (Store, error) {
	s := &memStore{kind: kind, byKey: make(map[string]int, len(seed))}
	for _, e := range seed {
		e, err := s.prepare(e)
		if err != nil {
			return nil, err
		}
		if _, ok := s.byKey[e.Key]; ok {
			return nil, fmt.Errorf("%s %q: %w", kind, e.Key, ErrDuplicateID)
		}
		if other, ok := Match(s.entries, e.Composition()); ok {
			return nil, fmt.Errorf("%s %q shares its composition with %q: %w", kind, e.Key, other.Key, ErrDuplicateID)
		}
		s.append(e)
	}
	s.base = len(s.entries)
	return s, nil
}

func (s *memStore) prepare(e game.Entry) (game.Entry, error) {
	if e.Kind == "" {
		e.Kind = s.kind
	}
	if e.Kind != s.kind {
		return e, fmt.Errorf("%w: %s into %s registry", ErrWrongKind, e.Kind, s.kind)
	}
	if e.Key == "" {
		e.Key = keys.NormalizeName(e.Name)
	} else {
		e.Key = keys.NormalizeName(e.Key)
	}
	if e.Key == "" {
		return e, fmt.Errorf("%w: %q", ErrEmptyName, e.Name)
	}
	c := e.Composition()
	e.Elements, e.CodeBits = c.Elements, c.CodeBits
	return e, nil
}

func (s *memStore) append(e game.Entry) {
	s.byKey[e.Key] = len(s.entries)
	s.entries = append(s.entries, e)
}

func (s *memStore) Kind() game.EntryKind { return s.kind }

func (s *memStore) Match(c game.Composition) (game.Entry, bool) {
	return Match(s.entries, c)
}

func (s *memStore) Lookup(key string) (game.Entry, bool) {
	i, ok := s.byKey[keys.NormalizeName(key)]
	if !ok {
		return game.Entry{}, false
	}
	return s.entries[i], true
}

func (s *memStore) ByTier(tier int) []game.Entry {
	var out []game.Entry
	for _, e := range s.entries {
		if e.Tier == tier {
			out = append(out, e)
		}
	}
	return out
}

func (s *memStore) All() []game.Entry {
	return append([]game.Entry(nil), s.entries...)
}

func (s *memStore) Promoted() []game.Entry {
	return append([]game.Entry(nil), s.entries[s.base:]...)
}

func (s *memStore) Promote(e game.Entry) (game.Entry, bool, error) {
	e, err := s.prepare(e)
	if err != nil {
		return game.Entry{}, false, err
	}
	if i, ok := s.byKey[e.Key]; ok {
		existing := s.entries[i]
		if existing.Composition().Equal(e.Composition()) {
			return existing, false, nil
		}
		return game.Entry{}, false, fmt.Errorf("%w: %s", ErrKeyConflict, e.Key)
	}
	if existing, ok := s.Match(e.Composition()); ok {
		return existing, false, nil
	}
	s.append(e)
	return e, true, nil
}
