package tmdb

import "github.com/vadimtrunov/MovieFinder/internal/core"

// moviesResponse is the TMDb paginated search/discover response.
// Response and Error carry an application-level failure flag; TMDb itself
// never sets them, but compatible catalogs do ("Response": "False").
type moviesResponse struct {
	Page         int          `json:"page"`
	Results      []core.Movie `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
	Response     string       `json:"Response,omitempty"`
	Error        string       `json:"Error,omitempty"`
}

// failed reports whether the payload carries the failure flag.
func (r *moviesResponse) failed() bool {
	return r.Response == "False"
}
