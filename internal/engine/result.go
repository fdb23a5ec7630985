package engine

import (
	"encoding/json"

	"github.com/ericogr/technonomicon/internal/game"
	"github.com/ericogr/technonomicon/internal/ledger"
)

// OutcomeKind tags the terminal state of an attempt.
type OutcomeKind string

const (
	OutcomeKnownSuccess OutcomeKind = "known_success"
	OutcomeNewDiscovery OutcomeKind = "new_discovery"
	OutcomeEphemeral    OutcomeKind = "ephemeral"
	OutcomeFailure      OutcomeKind = "failure"
	OutcomeRejected     OutcomeKind = "rejected"
)

// Outcome is one of KnownSuccess, NewDiscovery, Ephemeral, Failure or
// Rejected. Each variant carries only the fields valid for it.
type Outcome interface {
	Kind() OutcomeKind
}

// KnownSuccess is a registered composition crafted at sufficient quality.
type KnownSuccess[E any] struct {
	Entry    game.Entry
	Entity   E
	DataCost int
	// Evolution is set when this craft triggered a library evolution check.
	Evolution *ledger.Evolution
}

// NewDiscovery is an unregistered composition rolled critical and promoted
// into the registry.
type NewDiscovery[E any] struct {
	Entry  game.Entry
	Entity E
	// Created is false when an identical composition had already been
	// promoted.
	Created bool
}

// Ephemeral is an unregistered composition that manifested briefly.
type Ephemeral[E any] struct {
	Entry  game.Entry
	Entity E
}

// FailureReason explains a failed attempt.
type FailureReason string

const (
	ReasonLowRoll    FailureReason = "low_roll"
	ReasonBelowFloor FailureReason = "below_roll_floor"
	ReasonUnstable   FailureReason = "unstable_composition"
	ReasonAberration FailureReason = "aberration"
)

// Failure is a normal unsuccessful attempt. Aberration is set when a botched
// ritual produced a hostile entity instead.
type Failure[E any] struct {
	Reason     FailureReason
	Entry      *game.Entry
	Aberration *E
}

// Rejected is an attempt refused before any state changed: a validation
// error or a balance too short for the matched entry.
type Rejected struct {
	Err error
}

func (KnownSuccess[E]) Kind() OutcomeKind { return OutcomeKnownSuccess }
func (NewDiscovery[E]) Kind() OutcomeKind { return OutcomeNewDiscovery }
func (Ephemeral[E]) Kind() OutcomeKind    { return OutcomeEphemeral }
func (Failure[E]) Kind() OutcomeKind      { return OutcomeFailure }
func (Rejected) Kind() OutcomeKind        { return OutcomeRejected }

// Result is what an attempt returns to the caller. Errors never escape the
// engine; they ride inside a Rejected outcome.
type Result[E any] struct {
	Kind        game.EntryKind
	Composition game.Composition
	Roll        int
	Modifier    int
	Quality     game.QualityTier
	// Repeat reports that the composition had been attempted before.
	Repeat  bool
	Message string
	Outcome Outcome
}

// Success is true for known successes, discoveries and ephemeral results.
func (r Result[E]) Success() bool {
	switch r.Outcome.(type) {
	case KnownSuccess[E], NewDiscovery[E], Ephemeral[E]:
		return true
	}
	return false
}

// Entity returns the generated entity, if any. For a botched ritual it is
// the hostile aberration.
func (r Result[E]) Entity() (E, bool) {
	switch o := r.Outcome.(type) {
	case KnownSuccess[E]:
		return o.Entity, true
	case NewDiscovery[E]:
		return o.Entity, true
	case Ephemeral[E]:
		return o.Entity, true
	case Failure[E]:
		if o.Aberration != nil {
			return *o.Aberration, true
		}
	}
	var zero E
	return zero, false
}

// Entry returns the registry entry the attempt resolved against, if any.
func (r Result[E]) Entry() (game.Entry, bool) {
	switch o := r.Outcome.(type) {
	case KnownSuccess[E]:
		return o.Entry, true
	case NewDiscovery[E]:
		return o.Entry, true
	case Ephemeral[E]:
		return o.Entry, true
	case Failure[E]:
		if o.Entry != nil {
			return *o.Entry, true
		}
	}
	return game.Entry{}, false
}

// Err returns the rejection error, if the attempt was rejected.
func (r Result[E]) Err() error {
	if o, ok := r.Outcome.(Rejected); ok {
		return o.Err
	}
	return nil
}

type resultJSON struct {
	Success        bool              `json:"success"`
	Outcome        OutcomeKind       `json:"outcome"`
	Kind           game.EntryKind    `json:"kind"`
	Composition    game.Composition  `json:"composition"`
	Roll           int               `json:"roll,omitempty"`
	Modifier       int               `json:"modifier,omitempty"`
	QualityTier    game.QualityTier  `json:"quality_tier,omitempty"`
	Entry          *game.Entry       `json:"entry,omitempty"`
	Entity         interface{}       `json:"entity,omitempty"`
	DataCost       int               `json:"data_cost,omitempty"`
	IsNewDiscovery bool              `json:"is_new_discovery,omitempty"`
	IsEphemeral    bool              `json:"is_ephemeral,omitempty"`
	Repeat         bool              `json:"repeat,omitempty"`
	Reason         FailureReason     `json:"reason,omitempty"`
	Evolution      *ledger.Evolution `json:"evolution,omitempty"`
	Error          string            `json:"error,omitempty"`
	Message        string            `json:"message"`
}

// MarshalJSON flattens the variant into the record shape the host expects.
func (r Result[E]) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Success:     r.Success(),
		Kind:        r.Kind,
		Composition: r.Composition,
		Roll:        r.Roll,
		Modifier:    r.Modifier,
		QualityTier: r.Quality,
		Repeat:      r.Repeat,
		Message:     r.Message,
	}
	if r.Outcome != nil {
		out.Outcome = r.Outcome.Kind()
	}
	if e, ok := r.Entry(); ok {
		out.Entry = &e
	}
	if ent, ok := r.Entity(); ok {
		out.Entity = ent
	}
	switch o := r.Outcome.(type) {
	case KnownSuccess[E]:
		out.DataCost = o.DataCost
		out.Evolution = o.Evolution
	case NewDiscovery[E]:
		out.IsNewDiscovery = true
	case Ephemeral[E]:
		out.IsEphemeral = true
	case Failure[E]:
		out.Reason = o.Reason
	case Rejected:
		if o.Err != nil {
			out.Error = o.Err.Error()
		}
	}
	return json.Marshal(out)
}
