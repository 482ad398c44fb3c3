// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/showlog/internal/models"
	"github.com/tomtom215/showlog/internal/recommend"
)

// GenreStat is one genre's share of a user's watch history.
type GenreStat struct {
	Genre   string
	Count   int
	Percent float64
}

// Statistics summarizes one user's viewing profile.
type Statistics struct {
	Username      string
	TotalWatched  int
	WatchlistSize int

	// TotalMinutes is the summed duration of all watched shows.
	TotalMinutes int

	// TotalHours is TotalMinutes expressed in hours, rounded to one decimal.
	TotalHours float64

	// AverageRating is the mean of the ratings the user has given, nil
	// when nothing was rated.
	AverageRating *float64

	// GenreDistribution lists watched genres by count descending, then
	// genre ascending. Percentages are shares of TotalWatched.
	GenreDistribution []GenreStat
}

// Statistics computes the viewing summary for a user.
func (m *Manager) Statistics(username string) (*Statistics, error) {
	user, err := m.User(username)
	if err != nil {
		return nil, err
	}

	minutes := user.TotalWatchTime()
	stats := &Statistics{
		Username:      user.Username,
		TotalWatched:  len(user.Watched),
		WatchlistSize: len(user.Watchlist),
		TotalMinutes:  minutes,
		TotalHours:    math.Round(float64(minutes)/60*10) / 10,
	}
	if avg, ok := user.AverageRatingGiven(); ok {
		stats.AverageRating = &avg
	}

	counts := user.GenreCounts()
	for genre, count := range counts {
		percent := 0.0
		if stats.TotalWatched > 0 {
			percent = float64(count) / float64(stats.TotalWatched) * 100
		}
		stats.GenreDistribution = append(stats.GenreDistribution, GenreStat{
			Genre:   genre,
			Count:   count,
			Percent: percent,
		})
	}
	sort.Slice(stats.GenreDistribution, func(i, j int) bool {
		a, b := stats.GenreDistribution[i], stats.GenreDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return strings.ToLower(a.Genre) < strings.ToLower(b.Genre)
	})

	return stats, nil
}

// FavoriteGenre returns the user's favorite genre, or ok=false when the
// user has no watch history.
func (m *Manager) FavoriteGenre(username string) (string, bool, error) {
	user, err := m.User(username)
	if err != nil {
		return "", false, err
	}
	genre, ok := recommend.FavoriteGenre(user)
	return genre, ok, nil
}

// Recommendations returns up to limit suggestions for the user based on
// their favorite genre. A nonpositive limit falls back to the configured
// default. A user with no watch history gets an empty result.
func (m *Manager) Recommendations(username string, limit int) ([]*models.Show, error) {
	user, err := m.User(username)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = m.defaultLimit
	}
	return recommend.Recommend(user, m.shows, limit), nil
}
