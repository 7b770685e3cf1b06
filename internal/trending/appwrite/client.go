// Package appwrite implements the trending store on an Appwrite document collection.
package appwrite

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/httpclient"
	"github.com/vadimtrunov/MovieFinder/internal/trending"
)

// uniqueID asks Appwrite to assign the document ID.
const uniqueID = "unique()"

// Config holds the collection coordinates and credentials.
type Config struct {
	Endpoint     string // e.g. https://cloud.appwrite.io/v1
	ProjectID    string
	DatabaseID   string
	CollectionID string
	APIKey       string // optional server key
}

// Client is an Appwrite Databases REST client scoped to one collection.
type Client struct {
	documentsURL string
	http         *httpclient.Client
	logger       *slog.Logger
}

// New creates a new Appwrite client.
func New(cfg Config, httpCfg httpclient.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	headers := make(map[string]string, len(httpCfg.Headers)+2)
	for k, v := range httpCfg.Headers {
		headers[k] = v
	}
	headers["X-Appwrite-Project"] = cfg.ProjectID
	if cfg.APIKey != "" {
		headers["X-Appwrite-Key"] = cfg.APIKey
	}
	httpCfg.Headers = headers

	return &Client{
		documentsURL: fmt.Sprintf("%s/databases/%s/collections/%s/documents",
			strings.TrimRight(cfg.Endpoint, "/"),
			url.PathEscape(cfg.DatabaseID),
			url.PathEscape(cfg.CollectionID),
		),
		http:   httpclient.New(httpCfg, logger),
		logger: logger,
	}
}

// Record looks up term and increments its count, or creates it with count = 1.
// Lookup and write are separate requests; concurrent identical terms may race.
func (c *Client) Record(ctx context.Context, term string, movie core.Movie) error {
	list, err := c.list(ctx, equal("term", term))
	if err != nil {
		return fmt.Errorf("lookup term %q: %w", term, err)
	}

	if len(list.Documents) > 0 {
		doc := list.Documents[0]
		if err := c.update(ctx, doc.ID, map[string]any{"count": doc.Count + 1}); err != nil {
			return fmt.Errorf("increment term %q: %w", term, err)
		}
		c.logger.Debug("trending term incremented", slog.String("term", term), slog.Int("count", doc.Count+1))
		return nil
	}

	entry := trending.NewEntry("", term, movie)
	body := createRequest{
		DocumentID: uniqueID,
		Data: document{
			Term:      entry.Term,
			Count:     entry.Count,
			MovieID:   entry.MovieID,
			PosterURL: entry.PosterURL,
		},
	}
	req, err := httpclient.NewJSONRequest(ctx, http.MethodPost, c.documentsURL, body)
	if err != nil {
		return err
	}
	if err := c.http.DoJSON(req, nil); err != nil {
		return fmt.Errorf("create term %q: %w", term, err)
	}
	c.logger.Debug("trending term created", slog.String("term", term))
	return nil
}

// Trending returns the top entries ordered by descending count.
func (c *Client) Trending(ctx context.Context, n int) ([]core.TrendingEntry, error) {
	list, err := c.list(ctx, limit(trending.NormalizeLimit(n)), orderDesc("count"))
	if err != nil {
		return nil, fmt.Errorf("list trending: %w", err)
	}
	out := make([]core.TrendingEntry, 0, len(list.Documents))
	for _, d := range list.Documents {
		out = append(out, d.entry())
	}
	return out, nil
}

// Name returns "appwrite".
func (c *Client) Name() string { return "appwrite" }

func (c *Client) list(ctx context.Context, queries ...query) (*documentList, error) {
	u, err := url.Parse(c.documentsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	q := u.Query()
	for _, qq := range queries {
		q.Add("queries[]", qq.String())
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var list documentList
	if err := c.http.DoJSON(req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) update(ctx context.Context, id string, data map[string]any) error {
	req, err := httpclient.NewJSONRequest(ctx, http.MethodPatch,
		c.documentsURL+"/"+url.PathEscape(id), updateRequest{Data: data})
	if err != nil {
		return err
	}
	return c.http.DoJSON(req, nil)
}
