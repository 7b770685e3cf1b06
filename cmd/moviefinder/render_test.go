package main

import (
	"strings"
	"testing"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/finder"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "N/A"},
		{7.66, "7.7"},
		{8, "8.0"},
		{10, "10.0"},
	}
	for _, tt := range tests {
		if got := formatRating(tt.v); got != tt.want {
			t.Errorf("formatRating(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2022-03-01", "2022"},
		{"1999", "1999"},
		{"", "N/A"},
	}
	for _, tt := range tests {
		if got := releaseYear(tt.date); got != tt.want {
			t.Errorf("releaseYear(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatLanguage(t *testing.T) {
	if got := formatLanguage(""); got != "N/A" {
		t.Errorf("formatLanguage(\"\") = %q, want N/A", got)
	}
	if got := formatLanguage("en"); got != "en" {
		t.Errorf("formatLanguage(en) = %q, want en", got)
	}
}

func TestRenderState_Loading(t *testing.T) {
	s := finder.State{Loading: true, ErrorMessage: "stale", Movies: []core.Movie{{Title: "Hidden"}}}
	out := renderState(s, "*", 80)
	if !strings.Contains(out, "Loading...") {
		t.Errorf("expected loading indicator, got:\n%s", out)
	}
	if strings.Contains(out, "Hidden") || strings.Contains(out, "stale") {
		t.Errorf("loading view should not show movies or errors:\n%s", out)
	}
}

func TestRenderState_Error(t *testing.T) {
	s := finder.State{ErrorMessage: finder.FetchErrorMessage, Movies: []core.Movie{{Title: "Kept"}}}
	out := renderState(s, "", 80)
	if !strings.Contains(out, finder.FetchErrorMessage) {
		t.Errorf("expected error message, got:\n%s", out)
	}
	if strings.Contains(out, "Kept") {
		t.Errorf("error view should not show the grid:\n%s", out)
	}
}

func TestRenderState_TrendingOnlyWhenPresent(t *testing.T) {
	out := renderState(finder.State{}, "", 80)
	if strings.Contains(out, "Trending Movies") {
		t.Errorf("trending section should be hidden when empty:\n%s", out)
	}

	s := finder.State{Trending: []core.TrendingEntry{
		{Term: "batman", Count: 3, PosterURL: "https://image.tmdb.org/t/p/w500/bat.jpg"},
		{Term: "dune", Count: 1, PosterURL: "/no-movie.png"},
	}}
	out = renderState(s, "", 80)
	if !strings.Contains(out, "Trending Movies") {
		t.Errorf("expected trending section:\n%s", out)
	}
	if !strings.Contains(out, "/bat.jpg") || !strings.Contains(out, "/no-movie.png") {
		t.Errorf("expected poster URLs:\n%s", out)
	}
	if !strings.Contains(out, " 1") || !strings.Contains(out, " 2") {
		t.Errorf("expected ranks:\n%s", out)
	}
}

func TestRenderState_Grid(t *testing.T) {
	s := finder.State{Movies: []core.Movie{
		{ID: 1, Title: "The Batman", VoteAverage: 7.66, OriginalLanguage: "en", ReleaseDate: "2022-03-01"},
		{ID: 2, Title: "Unrated"},
	}}
	out := renderState(s, "", 80)
	for _, want := range []string{"All Movies", "The Batman", "7.7", "en", "2022", "Unrated", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in grid:\n%s", want, out)
		}
	}
}

func TestRenderState_EmptyGrid(t *testing.T) {
	out := renderState(finder.State{}, "", 80)
	if !strings.Contains(out, "No movies found.") {
		t.Errorf("expected empty placeholder, got:\n%s", out)
	}
}

func TestRenderCard_TruncatesLongTitle(t *testing.T) {
	title := "An Extraordinarily Long Movie Title That Never Ends"
	out := renderCard(core.Movie{Title: title})
	if strings.Contains(out, title) {
		t.Errorf("title should be truncated:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected ellipsis:\n%s", out)
	}
}
