// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package recommend

import (
	"testing"

	"github.com/tomtom215/showlog/internal/models"
)

func ratingPtr(v float64) *float64 { return &v }

func show(t *testing.T, title, genre string, rating float64) *models.Show {
	t.Helper()
	s, err := models.NewShow(title, genre, 100, rating)
	if err != nil {
		t.Fatalf("NewShow(%q): %v", title, err)
	}
	return s
}

func watch(t *testing.T, u *models.User, s *models.Show, rating *float64) {
	t.Helper()
	if err := u.MarkWatched(s, rating); err != nil {
		t.Fatalf("MarkWatched(%q): %v", s.Title, err)
	}
}

func TestFavoriteGenre(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		if _, ok := FavoriteGenre(user); ok {
			t.Error("FavoriteGenre() with no history should report ok=false")
		}
		if _, ok := FavoriteGenre(nil); ok {
			t.Error("FavoriteGenre(nil) should report ok=false")
		}
	})

	t.Run("highest count wins", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		watch(t, user, show(t, "A", "Sci-Fi", 8), nil)
		watch(t, user, show(t, "B", "Sci-Fi", 8), nil)
		watch(t, user, show(t, "C", "Drama", 9), ratingPtr(10))

		genre, ok := FavoriteGenre(user)
		if !ok || genre != "Sci-Fi" {
			t.Errorf("FavoriteGenre() = %q, %v; want Sci-Fi (count beats rating)", genre, ok)
		}
	})

	t.Run("count tie broken by average rating", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		watch(t, user, show(t, "A", "Sci-Fi", 8), ratingPtr(6))
		watch(t, user, show(t, "B", "Drama", 8), ratingPtr(9))

		genre, ok := FavoriteGenre(user)
		if !ok || genre != "Drama" {
			t.Errorf("FavoriteGenre() = %q, %v; want Drama (higher average rating)", genre, ok)
		}
	})

	t.Run("rated genre outranks unrated on tie", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		watch(t, user, show(t, "A", "Sci-Fi", 8), nil)
		watch(t, user, show(t, "B", "Drama", 8), ratingPtr(2))

		genre, ok := FavoriteGenre(user)
		if !ok || genre != "Drama" {
			t.Errorf("FavoriteGenre() = %q, %v; want Drama (any rating beats none)", genre, ok)
		}
	})

	t.Run("full tie broken alphabetically", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		watch(t, user, show(t, "A", "Thriller", 8), nil)
		watch(t, user, show(t, "B", "Drama", 8), nil)

		genre, ok := FavoriteGenre(user)
		if !ok || genre != "Drama" {
			t.Errorf("FavoriteGenre() = %q, %v; want Drama (alphabetical)", genre, ok)
		}
	})

	t.Run("case-insensitive genre tally", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		watch(t, user, show(t, "A", "sci-fi", 8), nil)
		watch(t, user, show(t, "B", "Sci-Fi", 8), nil)
		watch(t, user, show(t, "C", "Drama", 8), nil)

		genre, ok := FavoriteGenre(user)
		if !ok || genre != "sci-fi" {
			t.Errorf("FavoriteGenre() = %q, %v; want sci-fi (canonical first spelling)", genre, ok)
		}
	})
}

func TestRecommend(t *testing.T) {
	t.Run("no history yields nothing", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		catalog := []*models.Show{show(t, "A", "Sci-Fi", 9)}

		if got := Recommend(user, catalog, 5); len(got) != 0 {
			t.Errorf("Recommend() with no history = %v, want empty", got)
		}
	})

	t.Run("excludes watchlist and watched", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		a := show(t, "A", "Sci-Fi", 9.0)
		b := show(t, "B", "Sci-Fi", 8.0)
		c := show(t, "C", "Sci-Fi", 7.0)
		catalog := []*models.Show{a, b, c}

		watch(t, user, a, ratingPtr(9))
		if err := user.AddToWatchlist(b); err != nil {
			t.Fatalf("AddToWatchlist: %v", err)
		}

		got := Recommend(user, catalog, 5)
		if len(got) != 1 || got[0] != c {
			t.Errorf("Recommend() = %v, want only C", got)
		}
	})

	t.Run("sorted by rating then title and capped at limit", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		seen := show(t, "Seen", "Sci-Fi", 5)
		catalog := []*models.Show{
			seen,
			show(t, "banana", "Sci-Fi", 8.0),
			show(t, "Apple", "Sci-Fi", 8.0),
			show(t, "Cherry", "Sci-Fi", 9.0),
			show(t, "Durian", "Sci-Fi", 7.0),
		}
		watch(t, user, seen, nil)

		got := Recommend(user, catalog, 3)
		if len(got) != 3 {
			t.Fatalf("Recommend() returned %d shows, want 3", len(got))
		}
		want := []string{"Cherry", "Apple", "banana"}
		for i, title := range want {
			if got[i].Title != title {
				t.Errorf("Recommend()[%d] = %q, want %q", i, got[i].Title, title)
			}
		}
	})

	t.Run("genre match is case-insensitive", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		seen := show(t, "Seen", "SCI-FI", 5)
		other := show(t, "Other", "sci-fi", 8)
		watch(t, user, seen, nil)

		got := Recommend(user, []*models.Show{seen, other}, 5)
		if len(got) != 1 || got[0] != other {
			t.Errorf("Recommend() = %v, want Other despite genre casing", got)
		}
	})

	t.Run("nonpositive limit yields nothing", func(t *testing.T) {
		user, _ := models.NewUser("alice")
		seen := show(t, "Seen", "Sci-Fi", 5)
		watch(t, user, seen, nil)

		if got := Recommend(user, []*models.Show{show(t, "A", "Sci-Fi", 9)}, 0); len(got) != 0 {
			t.Errorf("Recommend(limit=0) = %v, want empty", got)
		}
	})
}
