// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

// showInput mirrors the shape the catalog manager validates.
type showInput struct {
	Title    string  `validate:"required"`
	Genre    string  `validate:"required"`
	Duration int     `validate:"gt=0"`
	Rating   float64 `validate:"gte=0,lte=10"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input showInput
	}{
		{name: "typical", input: showInput{Title: "Inception", Genre: "Sci-Fi", Duration: 148, Rating: 8.8}},
		{name: "rating lower bound", input: showInput{Title: "Pilot", Genre: "Drama", Duration: 45, Rating: 0}},
		{name: "rating upper bound", input: showInput{Title: "Finale", Genre: "Drama", Duration: 1, Rating: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     showInput
		wantField string
		wantTag   string
	}{
		{
			name:      "missing title",
			input:     showInput{Genre: "Drama", Duration: 60, Rating: 5},
			wantField: "Title",
			wantTag:   "required",
		},
		{
			name:      "zero duration",
			input:     showInput{Title: "X", Genre: "Drama", Duration: 0, Rating: 5},
			wantField: "Duration",
			wantTag:   "gt",
		},
		{
			name:      "rating too high",
			input:     showInput{Title: "X", Genre: "Drama", Duration: 60, Rating: 10.5},
			wantField: "Rating",
			wantTag:   "lte",
		},
		{
			name:      "negative rating",
			input:     showInput{Title: "X", Genre: "Drama", Duration: 60, Rating: -1},
			wantField: "Rating",
			wantTag:   "gte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}

			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.wantField && fe.Tag() == tt.wantTag {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateStruct() errors %v missing field %s tag %s", err, tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_MessageTranslation(t *testing.T) {
	input := showInput{Title: "X", Genre: "Drama", Duration: 0, Rating: 5}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "Duration must be greater than 0") {
		t.Errorf("error message not translated: %q", err.Error())
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	input := showInput{}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) < 3 {
		t.Errorf("expected at least 3 field errors, got %d: %v", len(err.Errors()), err)
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("combined message should join individual errors: %q", err.Error())
	}
}
