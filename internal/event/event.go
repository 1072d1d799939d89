// Package event defines the raw input unit consumed by the behavior
// analyzer: a timestamped text delta recorded while the user edits an
// input field.
package event

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidEventOrder is returned when a sequence's timestamps are not
// non-decreasing.
var ErrInvalidEventOrder = errors.New("event timestamps not monotonic")

// ErrNegativeDelete is returned when an event reports a negative deleted
// length.
var ErrNegativeDelete = errors.New("negative deleted length")

// Event is one atomic edit. Timestamps are milliseconds on a monotonic
// scale whose origin is owned by the recorder; only differences matter.
type Event struct {
	TimestampMs   int64  `json:"timestamp_ms" yaml:"timestamp_ms"`
	InsertedText  string `json:"inserted_text,omitempty" yaml:"inserted_text,omitempty"`
	DeletedLength int    `json:"deleted_length,omitempty" yaml:"deleted_length,omitempty"`
}

// InsertedRunes returns the number of characters inserted by the event.
func (e Event) InsertedRunes() int {
	return utf8.RuneCountInString(e.InsertedText)
}

// Sequence is a validated, temporally ordered list of events. Construct
// one with NewSequence; a Sequence obtained that way always satisfies the
// ordering invariant.
type Sequence struct {
	events []Event
}

// NewSequence validates events and wraps them in a Sequence. Events must
// have non-negative deleted lengths and non-decreasing timestamps; a
// malformed sequence is rejected outright, never reordered.
func NewSequence(events []Event) (Sequence, error) {
	for i, ev := range events {
		if ev.DeletedLength < 0 {
			return Sequence{}, fmt.Errorf("event %d: %w (%d)", i, ErrNegativeDelete, ev.DeletedLength)
		}
		if i > 0 && ev.TimestampMs < events[i-1].TimestampMs {
			return Sequence{}, fmt.Errorf("event %d: %w (%d after %d)",
				i, ErrInvalidEventOrder, ev.TimestampMs, events[i-1].TimestampMs)
		}
	}
	copied := make([]Event, len(events))
	copy(copied, events)
	return Sequence{events: copied}, nil
}

// Events returns a copy of the underlying events.
func (s Sequence) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of events in the sequence.
func (s Sequence) Len() int {
	return len(s.events)
}

// At returns the event at index i.
func (s Sequence) At(i int) Event {
	return s.events[i]
}

// TotalInsertedRunes sums the inserted character counts across the
// sequence.
func (s Sequence) TotalInsertedRunes() int {
	total := 0
	for _, ev := range s.events {
		total += ev.InsertedRunes()
	}
	return total
}

// ElapsedMs is the wall time between the first and last event.
func (s Sequence) ElapsedMs() int64 {
	if len(s.events) < 2 {
		return 0
	}
	return s.events[len(s.events)-1].TimestampMs - s.events[0].TimestampMs
}
