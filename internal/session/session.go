// Package session provides the host-owned event buffer described by
// the core contract: events accumulate here and the stateless analysis
// pipeline is re-invoked wholesale on each query.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"inputlens/internal/event"
	"inputlens/internal/profile"
	"inputlens/internal/rules"
)

// ErrUnknownSession is returned for operations on an unknown or already
// finalized session ID.
var ErrUnknownSession = errors.New("unknown session")

// Manager tracks in-flight input sessions. The analysis core stays
// stateless; Manager only buffers events between queries.
type Manager struct {
	analyzer *profile.Analyzer

	mu       sync.Mutex
	sessions map[string][]event.Event
}

// NewManager creates a session manager over the given pipeline.
func NewManager(analyzer *profile.Analyzer) *Manager {
	return &Manager{
		analyzer: analyzer,
		sessions: make(map[string][]event.Event),
	}
}

// Start opens a new session and returns its ID.
func (m *Manager) Start() string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = nil
	return id
}

// Push appends an event to a session. Ordering is enforced at this
// boundary: an event older than the session's last one is rejected,
// never reordered.
func (m *Manager) Push(id string, ev event.Event) error {
	if ev.DeletedLength < 0 {
		return fmt.Errorf("session %s: %w (%d)", id, event.ErrNegativeDelete, ev.DeletedLength)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	events, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	if n := len(events); n > 0 && ev.TimestampMs < events[n-1].TimestampMs {
		return fmt.Errorf("session %s: %w (%d after %d)",
			id, event.ErrInvalidEventOrder, ev.TimestampMs, events[n-1].TimestampMs)
	}
	m.sessions[id] = append(events, ev)
	return nil
}

// Preview analyzes the session against the current text without
// consuming it. Repeated previews with identical input yield identical
// analyzer output.
func (m *Manager) Preview(id, text string, ctx rules.Context) (*profile.InputProfile, error) {
	seq, err := m.sequence(id)
	if err != nil {
		return nil, err
	}
	return m.analyzer.AnalyzeTimeline(seq, text, ctx), nil
}

// Finalize analyzes the session against the final text and removes it.
func (m *Manager) Finalize(id, text string, ctx rules.Context) (*profile.InputProfile, error) {
	seq, err := m.sequence(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return m.analyzer.AnalyzeTimeline(seq, text, ctx), nil
}

// Discard drops a session without analyzing it.
func (m *Manager) Discard(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// ExportEvents writes the session's buffered events as a JSON timeline.
func (m *Manager) ExportEvents(id string, w io.Writer) error {
	seq, err := m.sequence(id)
	if err != nil {
		return err
	}
	return event.WriteTimeline(w, seq)
}

// ImportEvents opens a new session pre-filled from a JSON timeline.
func (m *Manager) ImportEvents(r io.Reader) (string, error) {
	seq, err := event.ParseTimeline(r)
	if err != nil {
		return "", err
	}
	id := m.Start()
	m.mu.Lock()
	m.sessions[id] = seq.Events()
	m.mu.Unlock()
	return id, nil
}

func (m *Manager) sequence(id string) (event.Sequence, error) {
	m.mu.Lock()
	events, ok := m.sessions[id]
	buffered := make([]event.Event, len(events))
	copy(buffered, events)
	m.mu.Unlock()

	if !ok {
		return event.Sequence{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	// Push enforced ordering incrementally, so this cannot fail.
	return event.NewSequence(buffered)
}
