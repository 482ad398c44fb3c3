// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package catalog implements the manager facade over the show catalog and
// user profiles.
//
// Every operation validates its references before mutating, so a failed
// call leaves no partial state behind. Successful mutations are recorded
// through the audit recorder and persisted through the store; a
// persistence failure is demoted to a warning, the in-memory operation
// stands, and the caller can retry with Save.
//
// The manager is synchronous and assumes one caller at a time. If a
// concurrent caller ever appears, this facade is the serialization
// boundary: one mutation in flight at a time.
package catalog

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/showlog/internal/audit"
	"github.com/tomtom215/showlog/internal/logging"
	"github.com/tomtom215/showlog/internal/models"
	"github.com/tomtom215/showlog/internal/store"
	"github.com/tomtom215/showlog/internal/validation"
)

var (
	// ErrNilStore indicates the manager was constructed without a store.
	ErrNilStore = errors.New("store cannot be nil")

	// ErrUserExists indicates the username is already taken (case-insensitive).
	ErrUserExists = errors.New("user already exists")

	// ErrShowExists indicates a show with the same (title, genre) already exists.
	ErrShowExists = errors.New("show already exists")

	// ErrUserNotFound indicates no user matches the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrShowNotFound indicates no show matches the given reference.
	ErrShowNotFound = errors.New("show not found")

	// ErrShowAmbiguous indicates a title reference matches several shows.
	ErrShowAmbiguous = errors.New("show reference is ambiguous, qualify by catalog number")
)

// Options configures a Manager.
type Options struct {
	// Store is the persistence gateway. Required.
	Store *store.Store

	// Recorder receives mutation events. Optional; nil disables auditing.
	Recorder *audit.Recorder

	// DefaultRecommendLimit caps recommendations when the caller does not
	// ask for a specific count. Nonpositive falls back to 5.
	DefaultRecommendLimit int
}

// Manager orchestrates all catalog and user operations.
type Manager struct {
	shows     []*models.Show          // catalog insertion order
	showIndex map[string]*models.Show // models.Key -> show

	users     []*models.User          // creation order
	userIndex map[string]*models.User // lowercase username -> user

	store        *store.Store
	recorder     *audit.Recorder
	defaultLimit int
	log          zerolog.Logger
}

// New creates a manager and loads the existing snapshot, if any.
func New(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, ErrNilStore
	}
	if opts.DefaultRecommendLimit <= 0 {
		opts.DefaultRecommendLimit = 5
	}

	m := &Manager{
		showIndex:    make(map[string]*models.Show),
		userIndex:    make(map[string]*models.User),
		store:        opts.Store,
		recorder:     opts.Recorder,
		defaultLimit: opts.DefaultRecommendLimit,
		log:          logging.With().Str("component", "catalog").Logger(),
	}

	shows, users := opts.Store.Load()
	for _, show := range shows {
		m.shows = append(m.shows, show)
		m.showIndex[show.Key()] = show
	}
	for _, user := range users {
		m.users = append(m.users, user)
		m.userIndex[strings.ToLower(user.Username)] = user
	}

	m.log.Info().Int("shows", len(m.shows)).Int("users", len(m.users)).
		Str("path", opts.Store.Path()).Msg("Catalog ready")
	return m, nil
}

// CreateUser registers a new user profile.
func (m *Manager) CreateUser(username string) (*models.User, error) {
	user, err := models.NewUser(username)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(user.Username)
	if _, taken := m.userIndex[lower]; taken {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, user.Username)
	}

	m.users = append(m.users, user)
	m.userIndex[lower] = user

	m.record(audit.ActionCreateUser, user.Username)
	m.persist()
	return user, nil
}

// AddShowInput carries the fields of a new catalog show.
type AddShowInput struct {
	Title    string  `validate:"required"`
	Genre    string  `validate:"required"`
	Duration int     `validate:"gt=0"`
	Rating   float64 `validate:"gte=0,lte=10"`
}

// AddShow adds a show to the catalog. Re-adding an existing (title, genre)
// pair is rejected, not merged.
func (m *Manager) AddShow(input AddShowInput) (*models.Show, error) {
	if err := validation.ValidateStruct(&input); err != nil {
		return nil, err
	}
	show, err := models.NewShow(input.Title, input.Genre, input.Duration, input.Rating)
	if err != nil {
		return nil, err
	}
	if _, exists := m.showIndex[show.Key()]; exists {
		return nil, fmt.Errorf("%w: %s (%s)", ErrShowExists, show.Title, show.Genre)
	}

	m.shows = append(m.shows, show)
	m.showIndex[show.Key()] = show

	m.record(audit.ActionAddShow, show.Title)
	m.persist()
	return show, nil
}

// ListShows returns a lazy, restartable sequence of all shows in catalog
// insertion order. Each range over the sequence starts from the beginning.
func (m *Manager) ListShows() iter.Seq[*models.Show] {
	return func(yield func(*models.Show) bool) {
		for _, show := range m.shows {
			if !yield(show) {
				return
			}
		}
	}
}

// ShowCount returns the catalog size.
func (m *Manager) ShowCount() int {
	return len(m.shows)
}

// FindShows returns all shows whose title contains the query,
// case-insensitively, in catalog order. An empty query matches nothing.
func (m *Manager) FindShows(query string) []*models.Show {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var matches []*models.Show
	for _, show := range m.shows {
		if strings.Contains(strings.ToLower(show.Title), query) {
			matches = append(matches, show)
		}
	}
	return matches
}

// User resolves a username case-insensitively.
func (m *Manager) User(username string) (*models.User, error) {
	user, ok := m.userIndex[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, strings.TrimSpace(username))
	}
	return user, nil
}

// Users returns all users in creation order.
func (m *Manager) Users() []*models.User {
	out := make([]*models.User, len(m.users))
	copy(out, m.users)
	return out
}

// ResolveShow resolves a show reference: a 1-based catalog number or a
// title (case-insensitive exact match). A number shadows a purely numeric
// title. A title carried by several shows in different genres is
// ambiguous and must be referenced by number instead.
func (m *Manager) ResolveShow(ref string) (*models.Show, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrShowNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(m.shows) {
			return nil, fmt.Errorf("%w: no catalog entry %d", ErrShowNotFound, n)
		}
		return m.shows[n-1], nil
	}

	lower := strings.ToLower(ref)
	var matches []*models.Show
	for _, show := range m.shows {
		if strings.ToLower(show.Title) == lower {
			matches = append(matches, show)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrShowNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d shows", ErrShowAmbiguous, ref, len(matches))
	}
}

// AddToWatchlist queues a show on the user's watchlist.
func (m *Manager) AddToWatchlist(username, showRef string) error {
	user, err := m.User(username)
	if err != nil {
		return err
	}
	show, err := m.ResolveShow(showRef)
	if err != nil {
		return err
	}
	if err := user.AddToWatchlist(show); err != nil {
		return err
	}

	m.record(audit.ActionAddToWatchlist, user.Username+"/"+show.Title)
	m.persist()
	return nil
}

// MarkWatched records that the user watched a show, with an optional
// rating in [0, 10].
func (m *Manager) MarkWatched(username, showRef string, rating *float64) error {
	user, err := m.User(username)
	if err != nil {
		return err
	}
	show, err := m.ResolveShow(showRef)
	if err != nil {
		return err
	}
	if err := user.MarkWatched(show, rating); err != nil {
		return err
	}

	m.record(audit.ActionMarkWatched, user.Username+"/"+show.Title)
	m.persist()
	return nil
}

// Save persists the current state and returns the store's verdict. This
// is the manual-save operation; automatic persistence after mutations
// never fails the mutating call.
func (m *Manager) Save() error {
	return m.store.Save(m.shows, m.users)
}

// Snapshot returns the raw on-disk snapshot bytes.
func (m *Manager) Snapshot() ([]byte, error) {
	return m.store.Raw()
}

// DataPath returns the snapshot file path.
func (m *Manager) DataPath() string {
	return m.store.Path()
}

// AuditTrail returns the retained mutation events, oldest first.
func (m *Manager) AuditTrail() []audit.Event {
	if m.recorder == nil {
		return nil
	}
	return m.recorder.Recent()
}

// record forwards a mutation event to the recorder, if any. This is the
// explicit wrapper around mutating operations: action, target, timestamp.
func (m *Manager) record(action, target string) {
	if m.recorder != nil {
		m.recorder.Record(action, target)
	}
}

// persist writes the snapshot after a successful mutation. Failure is a
// warning, not an error: the in-memory state is authoritative and the
// caller may retry via Save.
func (m *Manager) persist() {
	if err := m.store.Save(m.shows, m.users); err != nil {
		m.log.Warn().Err(err).Msg("Snapshot save failed, in-memory state is ahead of disk")
	}
}
