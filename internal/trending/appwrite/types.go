package appwrite

import (
	"encoding/json"

	"github.com/vadimtrunov/MovieFinder/internal/core"
)

// document is a trending document as stored in the collection.
type document struct {
	ID        string `json:"$id,omitempty"`
	Term      string `json:"term"`
	Count     int    `json:"count"`
	MovieID   int    `json:"movie_id"`
	PosterURL string `json:"poster_url"`
}

func (d document) entry() core.TrendingEntry {
	return core.TrendingEntry{
		ID:        d.ID,
		Term:      d.Term,
		Count:     d.Count,
		MovieID:   d.MovieID,
		PosterURL: d.PosterURL,
	}
}

// documentList is the list-documents response.
type documentList struct {
	Total     int        `json:"total"`
	Documents []document `json:"documents"`
}

// createRequest is the create-document request body.
type createRequest struct {
	DocumentID string   `json:"documentId"`
	Data       document `json:"data"`
}

// updateRequest is the update-document request body.
type updateRequest struct {
	Data map[string]any `json:"data"`
}

// query is a single JSON-encoded list query.
type query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func (q query) String() string {
	data, _ := json.Marshal(q)
	return string(data)
}

func equal(attribute string, value any) query {
	return query{Method: "equal", Attribute: attribute, Values: []any{value}}
}

func orderDesc(attribute string) query {
	return query{Method: "orderDesc", Attribute: attribute}
}

func limit(n int) query {
	return query{Method: "limit", Values: []any{n}}
}
