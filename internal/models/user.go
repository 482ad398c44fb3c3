// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyUsername indicates a blank or whitespace-only username.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrAlreadyInWatchlist indicates the show is already on the watchlist.
	ErrAlreadyInWatchlist = errors.New("show is already in the watchlist")

	// ErrAlreadyWatched indicates the show has already been watched.
	ErrAlreadyWatched = errors.New("show has already been watched")

	// ErrNotInWatchlist indicates the show is not on the watchlist.
	ErrNotInWatchlist = errors.New("show is not in the watchlist")

	// ErrNilShow indicates a nil show reference was passed to a user operation.
	ErrNilShow = errors.New("show reference cannot be nil")
)

// WatchedEntry records one watched show with the user's optional rating.
// Rating is nil when the user watched without rating.
type WatchedEntry struct {
	Show   *Show
	Rating *float64
}

// User is a profile holding an ordered watchlist and an ordered watch
// history. A show is never in both at once: MarkWatched moves it from the
// watchlist into the history.
type User struct {
	Username  string
	Watchlist []*Show
	Watched   []WatchedEntry
}

// NewUser validates and creates a user profile.
func NewUser(username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return &User{Username: username}, nil
}

// InWatchlist reports whether a show with the given key is on the watchlist.
func (u *User) InWatchlist(key string) bool {
	for _, s := range u.Watchlist {
		if s.Key() == key {
			return true
		}
	}
	return false
}

// watchedEntry returns the watched entry for the given key, or nil.
func (u *User) watchedEntry(key string) *WatchedEntry {
	for i := range u.Watched {
		if u.Watched[i].Show.Key() == key {
			return &u.Watched[i]
		}
	}
	return nil
}

// HasWatched reports whether a show with the given key has been watched.
func (u *User) HasWatched(key string) bool {
	return u.watchedEntry(key) != nil
}

// AddToWatchlist appends a show to the watchlist. Shows already on the
// watchlist or already watched are rejected with a sentinel error.
func (u *User) AddToWatchlist(show *Show) error {
	if show == nil {
		return ErrNilShow
	}
	key := show.Key()
	if u.InWatchlist(key) {
		return fmt.Errorf("%w: %s", ErrAlreadyInWatchlist, show.Title)
	}
	if u.HasWatched(key) {
		return fmt.Errorf("%w: %s", ErrAlreadyWatched, show.Title)
	}
	u.Watchlist = append(u.Watchlist, show)
	return nil
}

// RemoveFromWatchlist drops a show from the watchlist.
func (u *User) RemoveFromWatchlist(show *Show) error {
	if show == nil {
		return ErrNilShow
	}
	key := show.Key()
	for i, s := range u.Watchlist {
		if s.Key() == key {
			u.Watchlist = append(u.Watchlist[:i], u.Watchlist[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotInWatchlist, show.Title)
}

// MarkWatched moves a show into the watch history with an optional rating.
// The show is removed from the watchlist when present; absence is not an
// error. Marking an already-watched show with a rating replaces the stored
// rating; a nil rating leaves any existing rating in place. A non-nil
// rating is range-checked and forwarded to the show's user ratings.
func (u *User) MarkWatched(show *Show, rating *float64) error {
	if show == nil {
		return ErrNilShow
	}
	if rating != nil && (*rating < MinRating || *rating > MaxRating) {
		return fmt.Errorf("%w: got %.2f", ErrRatingRange, *rating)
	}

	key := show.Key()
	for i, s := range u.Watchlist {
		if s.Key() == key {
			u.Watchlist = append(u.Watchlist[:i], u.Watchlist[i+1:]...)
			break
		}
	}

	if entry := u.watchedEntry(key); entry != nil {
		if rating != nil {
			entry.Rating = rating
		}
	} else {
		u.Watched = append(u.Watched, WatchedEntry{Show: show, Rating: rating})
	}

	if rating != nil {
		if err := show.AddUserRating(*rating); err != nil {
			return err
		}
	}
	return nil
}

// TotalWatchTime sums the durations of all watched shows, in minutes.
func (u *User) TotalWatchTime() int {
	total := 0
	for _, e := range u.Watched {
		total += e.Show.Duration
	}
	return total
}

// AverageRatingGiven returns the mean of the ratings the user has given.
// The second return value is false when no watched entry carries a rating.
func (u *User) AverageRatingGiven() (float64, bool) {
	var sum float64
	count := 0
	for _, e := range u.Watched {
		if e.Rating != nil {
			sum += *e.Rating
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// GenreCounts tallies watched shows per genre. Counting is
// case-insensitive; the returned map keys use the spelling of the first
// watched show in each genre.
func (u *User) GenreCounts() map[string]int {
	counts := make(map[string]int)
	canonical := make(map[string]string)
	for _, e := range u.Watched {
		lower := strings.ToLower(e.Show.Genre)
		name, ok := canonical[lower]
		if !ok {
			name = e.Show.Genre
			canonical[lower] = name
		}
		counts[name]++
	}
	return counts
}

// String renders a one-line profile summary.
func (u *User) String() string {
	return fmt.Sprintf("User: %s | Watchlist: %d | Watched: %d", u.Username, len(u.Watchlist), len(u.Watched))
}
