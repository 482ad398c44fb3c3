// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Rating bounds shared by the base rating and every user-submitted rating.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

var (
	// ErrEmptyTitle indicates a blank or whitespace-only show title.
	ErrEmptyTitle = errors.New("show title cannot be empty")

	// ErrEmptyGenre indicates a blank or whitespace-only genre.
	ErrEmptyGenre = errors.New("show genre cannot be empty")

	// ErrDurationRange indicates a duration that is not a positive number of minutes.
	ErrDurationRange = errors.New("show duration must be a positive number of minutes")

	// ErrRatingRange indicates a rating outside the [0, 10] range.
	ErrRatingRange = errors.New("rating must be between 0 and 10")
)

// Show is a catalog record. Title, Genre, Duration and Rating are fixed at
// creation; UserRatings grows as users mark the show watched with a rating.
type Show struct {
	Title    string
	Genre    string
	Duration int // minutes
	// Rating is the catalog's base/editorial rating. It is never rewritten
	// by user ratings; AverageUserRating derives the crowd view separately.
	Rating      float64
	UserRatings []float64
}

// NewShow validates and creates a show.
func NewShow(title, genre string, duration int, rating float64) (*Show, error) {
	title = strings.TrimSpace(title)
	genre = strings.TrimSpace(genre)

	if title == "" {
		return nil, ErrEmptyTitle
	}
	if genre == "" {
		return nil, ErrEmptyGenre
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrDurationRange, duration)
	}
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: got %.2f", ErrRatingRange, rating)
	}

	return &Show{
		Title:    title,
		Genre:    genre,
		Duration: duration,
		Rating:   rating,
	}, nil
}

// Key computes the canonical identity key for a (title, genre) pair.
// The unit separator keeps ("ab", "c") and ("a", "bc") distinct.
func Key(title, genre string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x1f" + strings.ToLower(strings.TrimSpace(genre))
}

// Key returns the show's identity key.
func (s *Show) Key() string {
	return Key(s.Title, s.Genre)
}

// Equal reports whether both shows share the same (title, genre) identity.
func (s *Show) Equal(other *Show) bool {
	if other == nil {
		return false
	}
	return s.Key() == other.Key()
}

// AddUserRating appends a user-submitted rating after a range check.
func (s *Show) AddUserRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %.2f", ErrRatingRange, rating)
	}
	s.UserRatings = append(s.UserRatings, rating)
	return nil
}

// AverageUserRating returns the mean of the user-submitted ratings.
// The second return value is false when no user has rated the show yet.
func (s *Show) AverageUserRating() (float64, bool) {
	if len(s.UserRatings) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range s.UserRatings {
		sum += r
	}
	return sum / float64(len(s.UserRatings)), true
}

// String renders the show for display.
func (s *Show) String() string {
	return fmt.Sprintf("%s (%s) - %dmin - Rating: %.1f/10", s.Title, s.Genre, s.Duration, s.Rating)
}

// SortShows orders shows in place by Rating descending, breaking ties by
// Title ascending (case-insensitive) so listings are deterministic.
func SortShows(shows []*Show) {
	sort.SliceStable(shows, func(i, j int) bool {
		if shows[i].Rating != shows[j].Rating {
			return shows[i].Rating > shows[j].Rating
		}
		return strings.ToLower(shows[i].Title) < strings.ToLower(shows[j].Title)
	})
}
