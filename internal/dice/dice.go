// Package dice provides the two narrow collaborators the resolution engine
// pulls chance from: a d20 roller and a character modifier service.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/ericogr/technonomicon/internal/game"
)

var ErrRollOutOfRange = errors.New("d20 roll must be between 1 and 20")

// Roller produces d20 rolls in [1, 20].
type Roller interface {
	RollD20() int
}

// ModifierSource returns a situational modifier for a named skill.
type ModifierSource interface {
	ModifierFor(c game.Character, skill string) int
}

// RandRoller rolls dice from an injected random source.
type RandRoller struct {
	rng *rand.Rand
}

// NewRandRoller wraps rng. The same rng seed always yields the same rolls.
func NewRandRoller(rng *rand.Rand) *RandRoller {
	return &RandRoller{rng: rng}
}

func (r *RandRoller) RollD20() int {
	return r.rng.Intn(20) + 1
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// CharacterModifiers computes modifier = floor(level/2) + class bonus +
// equipment + matching buffs - matching debuffs. Buffs of type "all" apply to
// every skill.
type CharacterModifiers struct{}

func (CharacterModifiers) ModifierFor(c game.Character, skill string) int {
	mod := 0
	if c.Level > 0 {
		mod += c.Level / 2
	}
	mod += c.ClassBonus[skill]
	mod += c.Equipment[skill]
	for _, b := range c.Buffs {
		if b.Type == skill || b.Type == "all" {
			mod += b.Value
		}
	}
	for _, d := range c.Debuffs {
		if d.Type == skill || d.Type == "all" {
			mod -= d.Value
		}
	}
	return mod
}

// FixedModifier returns the same modifier for every character and skill.
type FixedModifier int

func (f FixedModifier) ModifierFor(game.Character, string) int { return int(f) }

// Script replays a fixed sequence of rolls, cycling when exhausted. It is
// used by tests and by the CLI's --roll flag.
type Script struct {
	rolls []int
	next  int
}

// NewScript returns a roller that yields rolls in order. Rolls are trusted;
// use ParseScript for user input.
func NewScript(rolls ...int) *Script {
	return &Script{rolls: rolls}
}

// ParseScript is NewScript for untrusted rolls: every value must be a face
// of a d20.
func ParseScript(rolls ...int) (*Script, error) {
	for _, v := range rolls {
		if v < 1 || v > 20 {
			return nil, fmt.Errorf("%w: got %d", ErrRollOutOfRange, v)
		}
	}
	return NewScript(rolls...), nil
}

func (s *Script) RollD20() int {
	if len(s.rolls) == 0 {
		return 1
	}
	v := s.rolls[s.next%len(s.rolls)]
	s.next++
	return v
}
