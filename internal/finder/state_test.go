package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vadimtrunov/MovieFinder/internal/core"
)

func TestState_BeginFetch(t *testing.T) {
	s := State{ErrorMessage: "old"}
	seq := s.BeginFetch()

	assert.Equal(t, uint64(1), seq)
	assert.True(t, s.Loading)
	assert.Empty(t, s.ErrorMessage)
}

func TestState_ApplySuccessReplacesList(t *testing.T) {
	s := State{Movies: []core.Movie{{ID: 1}, {ID: 2}}}
	seq := s.BeginFetch()

	applied := s.ApplyFetch(Outcome{Seq: seq, ReplaceMovies: true, Movies: []core.Movie{{ID: 3}}})

	assert.True(t, applied)
	assert.False(t, s.Loading)
	assert.Equal(t, []core.Movie{{ID: 3}}, s.Movies)
}

func TestState_ApplyTransportErrorKeepsList(t *testing.T) {
	prev := []core.Movie{{ID: 1}}
	s := State{Movies: prev}
	seq := s.BeginFetch()

	s.ApplyFetch(Outcome{Seq: seq, ErrorMessage: FetchErrorMessage})

	assert.False(t, s.Loading)
	assert.Equal(t, FetchErrorMessage, s.ErrorMessage)
	assert.Equal(t, prev, s.Movies)
}

func TestState_ApplyPayloadErrorClearsList(t *testing.T) {
	s := State{Movies: []core.Movie{{ID: 1}}}
	seq := s.BeginFetch()

	s.ApplyFetch(Outcome{Seq: seq, ReplaceMovies: true, Movies: []core.Movie{}, ErrorMessage: "boom"})

	assert.Empty(t, s.Movies)
	assert.Equal(t, "boom", s.ErrorMessage)
	assert.False(t, s.Loading)
}

func TestState_StaleOutcomeDropped(t *testing.T) {
	var s State
	first := s.BeginFetch()
	second := s.BeginFetch()

	// The newer fetch answers first.
	assert.True(t, s.ApplyFetch(Outcome{Seq: second, ReplaceMovies: true, Movies: []core.Movie{{ID: 2}}}))
	assert.False(t, s.ApplyFetch(Outcome{Seq: first, ReplaceMovies: true, Movies: []core.Movie{{ID: 1}}}))

	assert.Equal(t, []core.Movie{{ID: 2}}, s.Movies)
	assert.False(t, s.Loading)
}

func TestState_StaleOutcomeKeepsLoading(t *testing.T) {
	var s State
	first := s.BeginFetch()
	s.BeginFetch()

	s.ApplyFetch(Outcome{Seq: first, ReplaceMovies: true})
	assert.True(t, s.Loading, "latest fetch still in flight")
}

func TestState_Settle(t *testing.T) {
	var s State
	assert.False(t, s.Settle(""), "initial term unchanged")
	assert.True(t, s.Settle("dune"))
	assert.False(t, s.Settle("dune"))
	assert.Equal(t, "dune", s.DebouncedSearchTerm)
}
