// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package models defines the core entities of the catalog: shows and the
// per-user watchlist and watch history built on top of them.
//
// Show identity is derived, not structural: two shows are the same iff
// their (title, genre) pair matches case-insensitively. Key computes the
// canonical lookup key and every membership check in this package and in
// the catalog index goes through it.
//
// Entities are created through validating constructors (NewShow, NewUser)
// and mutated through methods that re-check their invariants. Struct
// fields are exported for serialization and read access; callers must not
// write them directly.
package models
