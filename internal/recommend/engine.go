// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package recommend derives genre-based recommendations from a user's
// watch history.
//
// The model is deliberately simple: the user's favorite genre is the one
// they have watched most, and recommendations are the highest-rated
// catalog shows of that genre the user has not already queued or watched.
// A user with no history gets no recommendations; guessing a genre for a
// blank profile would only surface global popularity as false personalization.
package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/showlog/internal/models"
)

// genreSignal aggregates one genre's standing in a user's history.
type genreSignal struct {
	name      string // canonical spelling (first watched occurrence)
	count     int
	ratingSum float64
	rated     int
}

// avgRating returns the mean user-given rating for the genre and whether
// any watched entry of the genre was rated at all.
func (g *genreSignal) avgRating() (float64, bool) {
	if g.rated == 0 {
		return 0, false
	}
	return g.ratingSum / float64(g.rated), true
}

// FavoriteGenre determines the user's favorite genre: the genre with the
// most watched entries. Ties break toward the higher average user-given
// rating among the tied genres (a genre with any rating outranks one with
// none), then alphabetically. Returns false when the user has no history.
func FavoriteGenre(user *models.User) (string, bool) {
	if user == nil || len(user.Watched) == 0 {
		return "", false
	}

	signals := make(map[string]*genreSignal)
	for _, e := range user.Watched {
		lower := strings.ToLower(e.Show.Genre)
		sig, ok := signals[lower]
		if !ok {
			sig = &genreSignal{name: e.Show.Genre}
			signals[lower] = sig
		}
		sig.count++
		if e.Rating != nil {
			sig.ratingSum += *e.Rating
			sig.rated++
		}
	}

	ordered := make([]*genreSignal, 0, len(signals))
	for _, sig := range signals {
		ordered = append(ordered, sig)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.count != b.count {
			return a.count > b.count
		}
		aAvg, aRated := a.avgRating()
		bAvg, bRated := b.avgRating()
		if aRated != bRated {
			return aRated
		}
		if aRated && aAvg != bAvg {
			return aAvg > bAvg
		}
		return strings.ToLower(a.name) < strings.ToLower(b.name)
	})

	return ordered[0].name, true
}

// Recommend selects up to limit catalog shows of the user's favorite
// genre, excluding everything already on the watchlist or in the watched
// set, ordered by base rating descending then title ascending. A user
// with no watch history gets an empty result. A nonpositive limit yields
// an empty result.
func Recommend(user *models.User, catalog []*models.Show, limit int) []*models.Show {
	favorite, ok := FavoriteGenre(user)
	if !ok || limit <= 0 {
		return nil
	}
	favoriteLower := strings.ToLower(favorite)

	excluded := make(map[string]struct{}, len(user.Watchlist)+len(user.Watched))
	for _, s := range user.Watchlist {
		excluded[s.Key()] = struct{}{}
	}
	for _, e := range user.Watched {
		excluded[e.Show.Key()] = struct{}{}
	}

	var candidates []*models.Show
	for _, show := range catalog {
		if strings.ToLower(show.Genre) != favoriteLower {
			continue
		}
		if _, skip := excluded[show.Key()]; skip {
			continue
		}
		candidates = append(candidates, show)
	}

	models.SortShows(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
