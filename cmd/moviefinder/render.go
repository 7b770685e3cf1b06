package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
)

const (
	cardWidth    = 30 // outer width of a movie card, border included
	minViewWidth = cardWidth
)

// renderState renders the trending section and the result grid for s.
// spin is the current spinner frame shown while loading.
func renderState(s finder.State, spin string, width int) string {
	if width < minViewWidth {
		width = minViewWidth
	}

	var sb strings.Builder
	if len(s.Trending) > 0 {
		sb.WriteString(styleHeader.Render("Trending Movies"))
		sb.WriteString("\n")
		sb.WriteString(renderTrending(s.Trending, width))
		sb.WriteString("\n\n")
	}

	sb.WriteString(styleHeader.Render("All Movies"))
	sb.WriteString("\n")
	switch {
	case s.Loading:
		sb.WriteString(spin + styleDim.Render(" Loading..."))
	case s.ErrorMessage != "":
		sb.WriteString(styleError.Render(s.ErrorMessage))
	default:
		sb.WriteString(renderGrid(s.Movies, width))
	}
	return sb.String()
}

// renderTrending lists entries with their 1-based rank and poster.
func renderTrending(entries []core.TrendingEntry, width int) string {
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		rank := fmt.Sprintf("%2d", i+1)
		poster := runewidth.Truncate(e.PosterURL, width-len(rank)-2, "…")
		lines = append(lines, styleRank.Render(rank)+"  "+styleDim.Render(poster))
	}
	return strings.Join(lines, "\n")
}

// renderGrid lays movie cards out in as many columns as fit in width.
func renderGrid(movies []core.Movie, width int) string {
	if len(movies) == 0 {
		return styleDim.Render("No movies found.")
	}

	cols := max(1, width/cardWidth)
	var rows []string
	for start := 0; start < len(movies); start += cols {
		end := min(start+cols, len(movies))
		cards := make([]string, 0, end-start)
		for _, m := range movies[start:end] {
			cards = append(cards, renderCard(m))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard shows title, rating, language and release year.
func renderCard(m core.Movie) string {
	inner := cardWidth - 4 // border + padding
	title := runewidth.Truncate(m.Title, inner, "…")

	meta := fmt.Sprintf("★ %s • %s • %s", formatRating(m.VoteAverage), formatLanguage(m.OriginalLanguage), releaseYear(m.ReleaseDate))
	meta = runewidth.Truncate(meta, inner, "…")

	return styleCard.Width(cardWidth - 2).Render(styleTitle.Render(title) + "\n" + styleDim.Render(meta))
}

func formatRating(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatLanguage(lang string) string {
	if lang == "" {
		return "N/A"
	}
	return lang
}

func releaseYear(date string) string {
	if date == "" {
		return "N/A"
	}
	year, _, _ := strings.Cut(date, "-")
	return year
}
