// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package main is the entry point for the showlog command-line tool.
//
// Showlog is a single-user show tracker: a catalog of shows, a personal
// watchlist and watch history per user, viewing statistics, and simple
// genre-based recommendations. State lives in one JSON snapshot file that
// is rewritten atomically after every successful change.
//
// # Startup
//
// The tool initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, console format by default for interactive use
//  3. Store: JSON snapshot load from the configured data path
//  4. Catalog manager: in-memory indexes over shows and users
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (DATA_PATH, LOG_LEVEL, LOG_FORMAT, ...)
//   - Config file (config.yaml, or the path in CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	showlog                         # interactive menu over ./showlog.json
//	DATA_PATH=/tmp/demo.json showlog --demo
package main

import (
	"flag"
	"os"

	"github.com/tomtom215/showlog/internal/audit"
	"github.com/tomtom215/showlog/internal/catalog"
	"github.com/tomtom215/showlog/internal/config"
	"github.com/tomtom215/showlog/internal/logging"
	"github.com/tomtom215/showlog/internal/store"
)

func main() {
	demo := flag.Bool("demo", false, "seed a small sample catalog before starting")
	flag.Parse()

	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("data_path", cfg.Data.Path).
		Bool("audit_enabled", cfg.Audit.Enabled).
		Msg("Starting showlog")

	manager, err := catalog.New(catalog.Options{
		Store: store.New(cfg.Data.Path),
		Recorder: audit.NewRecorder(audit.Config{
			Enabled: cfg.Audit.Enabled,
			History: cfg.Audit.History,
		}),
		DefaultRecommendLimit: cfg.Recommend.DefaultLimit,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize catalog")
	}

	if *demo {
		seedDemoData(manager)
	}

	runMenu(manager, os.Stdin, os.Stdout)

	// The snapshot is already current after every mutation; this final
	// save surfaces any persistence problem before exit.
	if err := manager.Save(); err != nil {
		logging.Error().Err(err).Msg("Final save failed")
		os.Exit(1)
	}
	logging.Info().Str("data_path", manager.DataPath()).Msg("Goodbye")
}

// seedDemoData populates a small catalog and one user for demos and
// screenshots. Errors are ignored on purpose: re-running --demo against
// an existing snapshot just skips the duplicates.
func seedDemoData(m *catalog.Manager) {
	shows := []catalog.AddShowInput{
		{Title: "The Expanse", Genre: "Sci-Fi", Duration: 45, Rating: 8.5},
		{Title: "Dark", Genre: "Sci-Fi", Duration: 53, Rating: 8.7},
		{Title: "Severance", Genre: "Sci-Fi", Duration: 50, Rating: 8.7},
		{Title: "The Wire", Genre: "Drama", Duration: 59, Rating: 9.3},
		{Title: "Chernobyl", Genre: "Drama", Duration: 65, Rating: 9.4},
		{Title: "Planet Earth", Genre: "Documentary", Duration: 50, Rating: 9.4},
	}
	for _, input := range shows {
		if _, err := m.AddShow(input); err != nil {
			logging.Debug().Err(err).Str("title", input.Title).Msg("Demo show skipped")
		}
	}

	if _, err := m.CreateUser("demo"); err != nil {
		logging.Debug().Err(err).Msg("Demo user skipped")
		return
	}
	rating := 9.0
	if err := m.MarkWatched("demo", "The Expanse", &rating); err != nil {
		logging.Debug().Err(err).Msg("Demo history skipped")
	}
	if err := m.AddToWatchlist("demo", "Dark"); err != nil {
		logging.Debug().Err(err).Msg("Demo watchlist skipped")
	}
}
