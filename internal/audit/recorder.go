// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package audit records catalog mutations as structured events.
//
// The catalog manager wraps every successful mutating operation in a call
// to Recorder.Record, so the action name, target entity, and timestamp of
// each mutation land both in the log stream and in a bounded in-memory
// ring the CLI can display.
package audit

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/showlog/internal/logging"
)

// Action names recorded by the catalog manager.
const (
	ActionCreateUser     = "create_user"
	ActionAddShow        = "add_show"
	ActionAddToWatchlist = "add_to_watchlist"
	ActionMarkWatched    = "mark_watched"
)

// Event is one recorded mutation.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// Timestamp when the mutation completed.
	Timestamp time.Time `json:"timestamp"`

	// Action is the operation name (see the Action constants).
	Action string `json:"action"`

	// Target names the mutated entity (username, show title, ...).
	Target string `json:"target"`
}

// Config holds recorder configuration.
type Config struct {
	// Enabled controls whether events are recorded at all.
	Enabled bool

	// History is the ring capacity: how many recent events are retained.
	History int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Enabled: true, History: 100}
}

// Recorder logs mutation events and keeps the most recent ones in memory.
// Safe for concurrent use, although the manager serializes callers today.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	ring    []Event
	next    int
	filled  bool
}

// NewRecorder creates a recorder. A nonpositive history falls back to the
// default capacity.
func NewRecorder(cfg Config) *Recorder {
	if cfg.History <= 0 {
		cfg.History = DefaultConfig().History
	}
	return &Recorder{
		enabled: cfg.Enabled,
		ring:    make([]Event, cfg.History),
	}
}

// Record stores and logs one mutation event. Disabled recorders drop
// events silently.
func (r *Recorder) Record(action, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}

	event := Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    action,
		Target:    target,
	}

	r.ring[r.next] = event
	r.next++
	if r.next == len(r.ring) {
		r.next = 0
		r.filled = true
	}

	data, err := json.Marshal(event)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal audit event")
		return
	}
	logging.Info().RawJSON("event", data).Msg("Action completed")
}

// Recent returns the retained events, oldest first.
func (r *Recorder) Recent() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.filled {
		out := make([]Event, r.next)
		copy(out, r.ring[:r.next])
		return out
	}
	out := make([]Event, 0, len(r.ring))
	out = append(out, r.ring[r.next:]...)
	out = append(out, r.ring[:r.next]...)
	return out
}

// Enabled reports whether the recorder is active.
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}
