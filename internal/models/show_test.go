// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

import (
	"errors"
	"math"
	"testing"
)

func TestNewShow(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		genre    string
		duration int
		rating   float64
		wantErr  error
	}{
		{name: "valid show", title: "Inception", genre: "Sci-Fi", duration: 148, rating: 8.8},
		{name: "zero rating is valid", title: "Pilot", genre: "Drama", duration: 45, rating: 0},
		{name: "max rating is valid", title: "Finale", genre: "Drama", duration: 60, rating: 10},
		{name: "trims whitespace", title: "  The Matrix  ", genre: " Sci-Fi ", duration: 136, rating: 8.7},
		{name: "empty title", title: "", genre: "Drama", duration: 60, rating: 5, wantErr: ErrEmptyTitle},
		{name: "whitespace title", title: "   ", genre: "Drama", duration: 60, rating: 5, wantErr: ErrEmptyTitle},
		{name: "empty genre", title: "Something", genre: "", duration: 60, rating: 5, wantErr: ErrEmptyGenre},
		{name: "zero duration", title: "Something", genre: "Drama", duration: 0, rating: 5, wantErr: ErrDurationRange},
		{name: "negative duration", title: "Something", genre: "Drama", duration: -10, rating: 5, wantErr: ErrDurationRange},
		{name: "rating too high", title: "Something", genre: "Drama", duration: 60, rating: 10.1, wantErr: ErrRatingRange},
		{name: "rating negative", title: "Something", genre: "Drama", duration: 60, rating: -0.5, wantErr: ErrRatingRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show, err := NewShow(tt.title, tt.genre, tt.duration, tt.rating)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewShow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewShow() unexpected error: %v", err)
			}
			if show.Title == "" || show.Title[0] == ' ' {
				t.Errorf("NewShow() did not trim title: %q", show.Title)
			}
			if len(show.UserRatings) != 0 {
				t.Errorf("NewShow() should start with no user ratings, got %d", len(show.UserRatings))
			}
		})
	}
}

func TestKey_CaseInsensitiveIdentity(t *testing.T) {
	tests := []struct {
		name   string
		a, b   [2]string // title, genre
		wantEq bool
	}{
		{name: "identical", a: [2]string{"Inception", "Sci-Fi"}, b: [2]string{"Inception", "Sci-Fi"}, wantEq: true},
		{name: "case differs", a: [2]string{"INCEPTION", "sci-fi"}, b: [2]string{"inception", "Sci-Fi"}, wantEq: true},
		{name: "genre differs", a: [2]string{"Inception", "Sci-Fi"}, b: [2]string{"Inception", "Thriller"}, wantEq: false},
		{name: "title differs", a: [2]string{"Inception", "Sci-Fi"}, b: [2]string{"Interstellar", "Sci-Fi"}, wantEq: false},
		{name: "boundary not confused", a: [2]string{"ab", "c"}, b: [2]string{"a", "bc"}, wantEq: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.a[0], tt.a[1]) == Key(tt.b[0], tt.b[1])
			if got != tt.wantEq {
				t.Errorf("Key equality = %v, want %v", got, tt.wantEq)
			}
		})
	}
}

func TestShow_Equal(t *testing.T) {
	a := &Show{Title: "Inception", Genre: "Sci-Fi", Duration: 148, Rating: 8.8}
	b := &Show{Title: "inception", Genre: "SCI-FI", Duration: 90, Rating: 1.0}

	if !a.Equal(b) {
		t.Error("shows with matching (title, genre) should be equal regardless of other fields")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}

func TestShow_AddUserRating(t *testing.T) {
	show := &Show{Title: "Inception", Genre: "Sci-Fi", Duration: 148, Rating: 8.8}

	if err := show.AddUserRating(9.5); err != nil {
		t.Fatalf("AddUserRating(9.5) unexpected error: %v", err)
	}
	if err := show.AddUserRating(11); !errors.Is(err, ErrRatingRange) {
		t.Fatalf("AddUserRating(11) error = %v, want ErrRatingRange", err)
	}
	if err := show.AddUserRating(-1); !errors.Is(err, ErrRatingRange) {
		t.Fatalf("AddUserRating(-1) error = %v, want ErrRatingRange", err)
	}

	if len(show.UserRatings) != 1 {
		t.Errorf("rejected ratings must not be stored, got %d ratings", len(show.UserRatings))
	}
	if show.Rating != 8.8 {
		t.Errorf("base rating must not change when user ratings arrive, got %.2f", show.Rating)
	}
}

func TestShow_AverageUserRating(t *testing.T) {
	show := &Show{Title: "Inception", Genre: "Sci-Fi", Duration: 148}

	if _, ok := show.AverageUserRating(); ok {
		t.Fatal("AverageUserRating() on empty ratings should report ok=false")
	}

	for _, r := range []float64{8, 9, 7} {
		if err := show.AddUserRating(r); err != nil {
			t.Fatalf("AddUserRating(%v) unexpected error: %v", r, err)
		}
	}

	avg, ok := show.AverageUserRating()
	if !ok {
		t.Fatal("AverageUserRating() should report ok=true with ratings present")
	}
	if math.Abs(avg-8.0) > 1e-9 {
		t.Errorf("AverageUserRating() = %v, want 8.0", avg)
	}
}

func TestSortShows(t *testing.T) {
	shows := []*Show{
		{Title: "banana", Genre: "Drama", Rating: 7.0},
		{Title: "Apple", Genre: "Drama", Rating: 7.0},
		{Title: "Cherry", Genre: "Drama", Rating: 9.0},
	}

	SortShows(shows)

	want := []string{"Cherry", "Apple", "banana"}
	for i, title := range want {
		if shows[i].Title != title {
			t.Fatalf("SortShows() order[%d] = %q, want %q", i, shows[i].Title, title)
		}
	}
}
