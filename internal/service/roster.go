package service

import (
	"fmt"

	"github.com/ericogr/technonomicon/internal/game"
)

const (
	victoryLoyalty = 5
	victoryMemory  = "Fought alongside you in victory."
	defeatMemory   = "Fought alongside you in defeat."
)

// Roster tracks summoned allies. Summoned holds the allies currently at the
// caster's side (ephemeral ones included until dismissed), History every
// entity ever summoned, and Failed the aberrations of botched rituals.
// Allies are copied on the way in and out, so history entries and returned
// values are snapshots that later battles do not touch.
type Roster struct {
	summoned []game.Ally
	history  []game.Ally
	failed   []game.Ally
	count    int
}

func NewRoster() *Roster {
	return &Roster{}
}

// summon seats a new ally. Ephemeral ones join history but are not counted.
func (r *Roster) summon(a game.Ally) {
	r.summoned = append(r.summoned, a.Clone())
	r.history = append(r.history, a.Clone())
	if !a.Ephemeral {
		r.count++
	}
}

func (r *Roster) fail(a game.Ally) {
	r.failed = append(r.failed, a.Clone())
}

func cloneAll(in []game.Ally) []game.Ally {
	out := make([]game.Ally, 0, len(in))
	for _, a := range in {
		out = append(out, a.Clone())
	}
	return out
}

// Active returns the summoned allies that persist beyond one encounter.
func (r *Roster) Active() []game.Ally {
	out := []game.Ally{}
	for _, a := range r.summoned {
		if !a.Ephemeral && !a.Hostile {
			out = append(out, a.Clone())
		}
	}
	return out
}

// History returns every summoned entity, ephemeral ones included.
func (r *Roster) History() []game.Ally {
	return cloneAll(r.history)
}

func (r *Roster) FailedRituals() []game.Ally {
	return cloneAll(r.failed)
}

func (r *Roster) SummonCount() int { return r.count }

func (r *Roster) find(id string) (int, error) {
	for i := range r.summoned {
		if r.summoned[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrAllyNotFound, id)
}

// Dismiss removes the ally from the caster's side. History keeps it.
func (r *Roster) Dismiss(id string) (game.Ally, error) {
	i, err := r.find(id)
	if err != nil {
		return game.Ally{}, err
	}
	a := r.summoned[i]
	r.summoned = append(r.summoned[:i], r.summoned[i+1:]...)
	return a.Clone(), nil
}

// RecordBattle applies an encounter's outcome: hit points drop by the damage
// received (never below zero) and the relationship remembers the fight.
// Victory also raises loyalty.
func (r *Roster) RecordBattle(id string, damageDealt, damageReceived int, victory bool) (game.Ally, error) {
	if damageDealt < 0 || damageReceived < 0 {
		return game.Ally{}, ErrNegativeDamage
	}
	i, err := r.find(id)
	if err != nil {
		return game.Ally{}, err
	}
	a := &r.summoned[i]
	a.HP -= damageReceived
	if a.HP < 0 {
		a.HP = 0
	}
	if a.Relationship == nil {
		a.Relationship = &game.Relationship{Memories: []string{}}
	}
	if victory {
		a.Relationship.Loyalty += victoryLoyalty
		a.Relationship.Memories = append(a.Relationship.Memories, victoryMemory)
	} else {
		a.Relationship.Memories = append(a.Relationship.Memories, defeatMemory)
	}
	return a.Clone(), nil
}

// AllyStats is the display summary of one ally.
type AllyStats struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	HP            string `json:"hp"`
	Attack        int    `json:"attack"`
	Defense       int    `json:"defense"`
	Loyalty       int    `json:"loyalty"`
	Compatibility int    `json:"compatibility"`
	Memories      int    `json:"memories"`
}

func (r *Roster) Stats(id string) (AllyStats, error) {
	i, err := r.find(id)
	if err != nil {
		return AllyStats{}, err
	}
	a := r.summoned[i]
	st := AllyStats{
		ID:      a.ID,
		Name:    a.Name,
		Level:   a.Level,
		HP:      fmt.Sprintf("%d/%d", a.HP, a.MaxHP),
		Attack:  a.Attack,
		Defense: a.Defense,
	}
	if rel := a.Relationship; rel != nil {
		st.Loyalty = rel.Loyalty
		st.Compatibility = int(rel.Compatibility)
		st.Memories = len(rel.Memories)
	}
	return st, nil
}
