// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/showlog/internal/catalog"
	"github.com/tomtom215/showlog/internal/models"
)

const menuText = `
=== Showlog ===
 1. Create user
 2. Add show to catalog
 3. List catalog
 4. List users
 5. Search shows
 6. Add show to watchlist
 7. View watchlist
 8. Mark show as watched
 9. Recommendations
10. Statistics
11. Recent activity
12. Show raw data file
13. Save now
 0. Exit
`

// runMenu drives the interactive loop until the user exits or input ends.
// All formatting happens here; the manager never prints.
func runMenu(m *catalog.Manager, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, menuText, "> ")
		choice, ok := readLine(scanner)
		if !ok {
			return
		}

		switch choice {
		case "0", "q", "exit":
			return
		case "1":
			createUser(m, scanner, out)
		case "2":
			addShow(m, scanner, out)
		case "3":
			listCatalog(m, out)
		case "4":
			listUsers(m, out)
		case "5":
			searchShows(m, scanner, out)
		case "6":
			addToWatchlist(m, scanner, out)
		case "7":
			viewWatchlist(m, scanner, out)
		case "8":
			markWatched(m, scanner, out)
		case "9":
			recommendations(m, scanner, out)
		case "10":
			statistics(m, scanner, out)
		case "11":
			recentActivity(m, out)
		case "12":
			showRawData(m, out)
		case "13":
			if err := m.Save(); err != nil {
				fmt.Fprintf(out, "Save failed: %v\n", err)
			} else {
				fmt.Fprintf(out, "Saved to %s\n", m.DataPath())
			}
		default:
			fmt.Fprintf(out, "Unknown choice %q\n", choice)
		}
	}
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprintf(out, "%s: ", label)
	return readLine(scanner)
}

func createUser(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	name, ok := prompt(scanner, out, "Username")
	if !ok {
		return
	}
	user, err := m.CreateUser(name)
	if err != nil {
		fmt.Fprintf(out, "Could not create user: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Created user %s\n", user.Username)
}

func addShow(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	title, ok := prompt(scanner, out, "Title")
	if !ok {
		return
	}
	genre, ok := prompt(scanner, out, "Genre")
	if !ok {
		return
	}
	durationText, ok := prompt(scanner, out, "Duration (minutes)")
	if !ok {
		return
	}
	duration, err := strconv.Atoi(durationText)
	if err != nil {
		fmt.Fprintf(out, "Duration must be a whole number of minutes\n")
		return
	}
	ratingText, ok := prompt(scanner, out, "Rating (0-10)")
	if !ok {
		return
	}
	rating, err := strconv.ParseFloat(ratingText, 64)
	if err != nil {
		fmt.Fprintf(out, "Rating must be a number\n")
		return
	}

	show, err := m.AddShow(catalog.AddShowInput{
		Title:    title,
		Genre:    genre,
		Duration: duration,
		Rating:   rating,
	})
	if err != nil {
		fmt.Fprintf(out, "Could not add show: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Added %s\n", show)
}

func listCatalog(m *catalog.Manager, out io.Writer) {
	if m.ShowCount() == 0 {
		fmt.Fprintln(out, "The catalog is empty.")
		return
	}
	fmt.Fprintf(out, "Catalog (%d shows):\n", m.ShowCount())
	i := 0
	for show := range m.ListShows() {
		i++
		fmt.Fprintf(out, "%3d. %s\n", i, show)
	}
}

func listUsers(m *catalog.Manager, out io.Writer) {
	users := m.Users()
	if len(users) == 0 {
		fmt.Fprintln(out, "No users yet.")
		return
	}
	for _, user := range users {
		fmt.Fprintf(out, "  %s\n", user)
	}
}

func searchShows(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	query, ok := prompt(scanner, out, "Search")
	if !ok {
		return
	}
	matches := m.FindShows(query)
	if len(matches) == 0 {
		fmt.Fprintf(out, "No shows match %q\n", query)
		return
	}
	printShows(out, matches)
}

func addToWatchlist(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	username, ok := prompt(scanner, out, "Username")
	if !ok {
		return
	}
	ref, ok := prompt(scanner, out, "Show (title or catalog number)")
	if !ok {
		return
	}
	if err := m.AddToWatchlist(username, ref); err != nil {
		fmt.Fprintf(out, "Could not update watchlist: %v\n", err)
		return
	}
	fmt.Fprintln(out, "Added to watchlist.")
}

func viewWatchlist(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	username, ok := prompt(scanner, out, "Username")
	if !ok {
		return
	}
	user, err := m.User(username)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if len(user.Watchlist) == 0 {
		fmt.Fprintf(out, "%s's watchlist is empty.\n", user.Username)
		return
	}
	fmt.Fprintf(out, "%s's watchlist:\n", user.Username)
	printShows(out, user.Watchlist)
}

func markWatched(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	username, ok := prompt(scanner, out, "Username")
	if !ok {
		return
	}
	ref, ok := prompt(scanner, out, "Show (title or catalog number)")
	if !ok {
		return
	}
	ratingText, ok := prompt(scanner, out, "Your rating 0-10 (blank to skip)")
	if !ok {
		return
	}

	var rating *float64
	if ratingText != "" {
		value, err := strconv.ParseFloat(ratingText, 64)
		if err != nil {
			fmt.Fprintf(out, "Rating must be a number\n")
			return
		}
		rating = &value
	}

	if err := m.MarkWatched(username, ref, rating); err != nil {
		fmt.Fprintf(out, "Could not mark watched: %v\n", err)
		return
	}
	fmt.Fprintln(out, "Marked as watched.")
}

func recommendations(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	username, ok := prompt(scanner, out, "Username")
	if !ok {
		return
	}
	shows, err := m.Recommendations(username, 0)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if len(shows) == 0 {
		fmt.Fprintln(out, "Nothing to recommend yet. Watch a few shows first!")
		return
	}
	genre, _, _ := m.FavoriteGenre(username)
	fmt.Fprintf(out, "Because you watch a lot of %s:\n", genre)
	printShows(out, shows)
}

func statistics(m *catalog.Manager, scanner *bufio.Scanner, out io.Writer) {
	username, ok := prompt(scanner, out, "Username")
	if !ok {
		return
	}
	stats, err := m.Statistics(username)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	fmt.Fprintf(out, "Statistics for %s:\n", stats.Username)
	fmt.Fprintf(out, "  Shows watched:  %d\n", stats.TotalWatched)
	fmt.Fprintf(out, "  Watchlist size: %d\n", stats.WatchlistSize)
	fmt.Fprintf(out, "  Watch time:     %d min (%.1f h)\n", stats.TotalMinutes, stats.TotalHours)
	if stats.AverageRating != nil {
		fmt.Fprintf(out, "  Average rating: %.1f\n", *stats.AverageRating)
	} else {
		fmt.Fprintf(out, "  Average rating: no ratings yet\n")
	}
	if len(stats.GenreDistribution) > 0 {
		fmt.Fprintln(out, "  Genres:")
		for _, g := range stats.GenreDistribution {
			fmt.Fprintf(out, "    %-16s %2d (%.0f%%)\n", g.Genre, g.Count, g.Percent)
		}
	}
}

func recentActivity(m *catalog.Manager, out io.Writer) {
	events := m.AuditTrail()
	if len(events) == 0 {
		fmt.Fprintln(out, "No recorded activity.")
		return
	}
	for _, e := range events {
		fmt.Fprintf(out, "  %s  %-18s %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.Target)
	}
}

func showRawData(m *catalog.Manager, out io.Writer) {
	data, err := m.Snapshot()
	if err != nil {
		fmt.Fprintf(out, "Could not read %s: %v\n", m.DataPath(), err)
		return
	}
	fmt.Fprintf(out, "%s:\n%s\n", m.DataPath(), data)
}

func printShows(out io.Writer, shows []*models.Show) {
	for _, show := range shows {
		fmt.Fprintf(out, "  - %s\n", show)
	}
}
