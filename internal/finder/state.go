package finder

import "github.com/vadimtrunov/MovieFinder/internal/core"

// State is the UI state of the search screen. It is owned by a single event
// loop and is not safe for concurrent use.
type State struct {
	SearchTerm          string
	DebouncedSearchTerm string
	Movies              []core.Movie
	Trending            []core.TrendingEntry
	Loading             bool
	ErrorMessage        string

	seq uint64 // latest issued fetch
}

// Settle stores the debounced term and reports whether it changed.
func (s *State) Settle(term string) bool {
	if term == s.DebouncedSearchTerm {
		return false
	}
	s.DebouncedSearchTerm = term
	return true
}

// BeginFetch marks a fetch as started and returns its sequence number.
func (s *State) BeginFetch() uint64 {
	s.seq++
	s.Loading = true
	s.ErrorMessage = ""
	return s.seq
}

// ApplyFetch applies o if it belongs to the latest fetch and reports whether
// it did. Outcomes of superseded fetches are dropped so a slow, older
// response cannot overwrite a newer one.
func (s *State) ApplyFetch(o Outcome) bool {
	if o.Seq != s.seq {
		return false
	}
	s.Loading = false
	if o.ReplaceMovies {
		s.Movies = o.Movies
	}
	s.ErrorMessage = o.ErrorMessage
	return true
}

// Seq returns the latest issued sequence number.
func (s *State) Seq() uint64 { return s.seq }
