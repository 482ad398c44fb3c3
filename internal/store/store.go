// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package store is the persistence gateway: it serializes the full catalog
// and user set to a single JSON snapshot file and reads it back.
//
// Load is tolerant by design: a missing file, a corrupt document, or a
// watch entry referencing an unknown show degrades to a warning and an
// empty (or partial) store, never a startup failure. Save is atomic: the
// document is written to a temp file in the target directory and renamed
// over the snapshot, so a crash mid-write cannot leave a truncated file as
// the current snapshot.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/showlog/internal/logging"
	"github.com/tomtom215/showlog/internal/models"
)

// document is the on-disk snapshot shape.
type document struct {
	Shows []showRecord `json:"shows"`
	Users []userRecord `json:"users"`
}

type showRecord struct {
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Duration    int       `json:"duration"`
	Rating      float64   `json:"rating"`
	UserRatings []float64 `json:"user_ratings"`
}

type userRecord struct {
	Username  string          `json:"username"`
	Watchlist []showRef       `json:"watchlist"`
	Watched   []watchedRecord `json:"watched"`
}

// showRef identifies a show by its (title, genre) pair so watchlist and
// watched entries re-link to catalog shows on load.
type showRef struct {
	Title string `json:"title"`
	Genre string `json:"genre"`
}

type watchedRecord struct {
	Title  string   `json:"title"`
	Genre  string   `json:"genre"`
	Rating *float64 `json:"rating"`
}

// Store reads and writes the JSON snapshot at a fixed path.
type Store struct {
	path string
	log  zerolog.Logger
}

// New creates a store for the snapshot file at path.
func New(path string) *Store {
	return &Store{
		path: path,
		log:  logging.With().Str("component", "store").Logger(),
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot and materializes shows and users.
//
// A missing file yields an empty store. A malformed document yields an
// empty store with a warning; the bad file is left in place for manual
// inspection. Show records that fail entity validation, watch entries
// referencing unknown shows, and duplicate watched entries are dropped
// with a warning. A show listed both on a user's watchlist and in their
// watched set loads as watched only, so the exclusivity between the two
// holds even for hand-edited snapshots.
func (s *Store) Load() ([]*models.Show, []*models.User) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("path", s.path).Msg("No snapshot file, starting empty")
		} else {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Cannot read snapshot, starting empty")
		}
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("Snapshot is malformed, starting empty")
		return nil, nil
	}

	shows := make([]*models.Show, 0, len(doc.Shows))
	index := make(map[string]*models.Show, len(doc.Shows))
	for _, rec := range doc.Shows {
		show, err := models.NewShow(rec.Title, rec.Genre, rec.Duration, rec.Rating)
		if err != nil {
			s.log.Warn().Err(err).Str("title", rec.Title).Msg("Dropping invalid show record")
			continue
		}
		for _, r := range rec.UserRatings {
			if err := show.AddUserRating(r); err != nil {
				s.log.Warn().Err(err).Str("title", rec.Title).Msg("Dropping invalid user rating")
			}
		}
		if _, exists := index[show.Key()]; exists {
			s.log.Warn().Str("title", rec.Title).Str("genre", rec.Genre).Msg("Dropping duplicate show record")
			continue
		}
		shows = append(shows, show)
		index[show.Key()] = show
	}

	users := make([]*models.User, 0, len(doc.Users))
	seen := make(map[string]struct{}, len(doc.Users))
	for _, rec := range doc.Users {
		user, err := models.NewUser(rec.Username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", rec.Username).Msg("Dropping invalid user record")
			continue
		}
		lower := strings.ToLower(user.Username)
		if _, exists := seen[lower]; exists {
			s.log.Warn().Str("username", rec.Username).Msg("Dropping duplicate user record")
			continue
		}
		seen[lower] = struct{}{}

		for _, ref := range rec.Watchlist {
			show, ok := index[models.Key(ref.Title, ref.Genre)]
			if !ok {
				s.log.Warn().Str("username", user.Username).Str("title", ref.Title).
					Msg("Dropping watchlist entry for unknown show")
				continue
			}
			if err := user.AddToWatchlist(show); err != nil {
				s.log.Warn().Err(err).Str("username", user.Username).Msg("Dropping watchlist entry")
			}
		}
		for _, rec := range rec.Watched {
			show, ok := index[models.Key(rec.Title, rec.Genre)]
			if !ok {
				s.log.Warn().Str("username", user.Username).Str("title", rec.Title).
					Msg("Dropping watched entry for unknown show")
				continue
			}
			// Link only; the show's user_ratings were already restored
			// from its own record.
			if rec.Rating != nil && (*rec.Rating < models.MinRating || *rec.Rating > models.MaxRating) {
				s.log.Warn().Str("username", user.Username).Str("title", rec.Title).
					Float64("rating", *rec.Rating).Msg("Dropping watched entry with invalid rating")
				continue
			}
			if user.HasWatched(show.Key()) {
				s.log.Warn().Str("username", user.Username).Str("title", rec.Title).
					Msg("Dropping duplicate watched entry")
				continue
			}
			// Watched wins over watchlist, same as marking a queued show.
			if user.InWatchlist(show.Key()) {
				s.log.Warn().Str("username", user.Username).Str("title", rec.Title).
					Msg("Removing watched show from watchlist")
				_ = user.RemoveFromWatchlist(show)
			}
			user.Watched = append(user.Watched, models.WatchedEntry{Show: show, Rating: rec.Rating})
		}
		users = append(users, user)
	}

	s.log.Debug().Int("shows", len(shows)).Int("users", len(users)).Msg("Snapshot loaded")
	return shows, users
}

// Save serializes the full in-memory state and atomically replaces the
// snapshot file. The temp file handle is opened, written, and closed
// within this call on every path, including error paths.
func (s *Store) Save(shows []*models.Show, users []*models.User) error {
	doc := document{
		Shows: make([]showRecord, 0, len(shows)),
		Users: make([]userRecord, 0, len(users)),
	}

	for _, show := range shows {
		ratings := show.UserRatings
		if ratings == nil {
			ratings = []float64{}
		}
		doc.Shows = append(doc.Shows, showRecord{
			Title:       show.Title,
			Genre:       show.Genre,
			Duration:    show.Duration,
			Rating:      show.Rating,
			UserRatings: ratings,
		})
	}

	for _, user := range users {
		rec := userRecord{
			Username:  user.Username,
			Watchlist: make([]showRef, 0, len(user.Watchlist)),
			Watched:   make([]watchedRecord, 0, len(user.Watched)),
		}
		for _, show := range user.Watchlist {
			rec.Watchlist = append(rec.Watchlist, showRef{Title: show.Title, Genre: show.Genre})
		}
		for _, e := range user.Watched {
			rec.Watched = append(rec.Watched, watchedRecord{
				Title:  e.Show.Title,
				Genre:  e.Show.Genre,
				Rating: e.Rating,
			})
		}
		doc.Users = append(doc.Users, rec)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting snapshot permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	s.log.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Snapshot saved")
	return nil
}

// Raw returns the current on-disk snapshot bytes.
func (s *Store) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return data, nil
}
