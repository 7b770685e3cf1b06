package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtrunov/MovieFinder/internal/core"
	"github.com/vadimtrunov/MovieFinder/internal/httpclient"
)

const docsPath = "/v1/databases/db1/collections/metrics/documents"

// fakeAppwrite serves the subset of the Databases API the client uses.
type fakeAppwrite struct {
	t       *testing.T
	mu      sync.Mutex
	docs    []document
	nextID  int
	creates int
	updates int
}

func (f *fakeAppwrite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("X-Appwrite-Project") != "proj" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == docsPath:
		f.list(w, r)
	case r.Method == http.MethodPost && r.URL.Path == docsPath:
		var req createRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(f.t, uniqueID, req.DocumentID)
		f.nextID++
		req.Data.ID = fmt.Sprintf("doc%d", f.nextID)
		f.docs = append(f.docs, req.Data)
		f.creates++
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(req.Data)
	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, docsPath+"/"):
		id := strings.TrimPrefix(r.URL.Path, docsPath+"/")
		var req updateRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		for i := range f.docs {
			if f.docs[i].ID == id {
				f.docs[i].Count = int(req.Data["count"].(float64))
				f.updates++
				json.NewEncoder(w).Encode(f.docs[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeAppwrite) list(w http.ResponseWriter, r *http.Request) {
	out := append([]document(nil), f.docs...)
	n := len(out)
	for _, raw := range r.URL.Query()["queries[]"] {
		var q query
		require.NoError(f.t, json.Unmarshal([]byte(raw), &q))
		switch q.Method {
		case "equal":
			filtered := out[:0:0]
			for _, d := range out {
				if d.Term == q.Values[0] {
					filtered = append(filtered, d)
				}
			}
			out = filtered
		case "orderDesc":
			sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
		case "limit":
			n = int(q.Values[0].(float64))
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	json.NewEncoder(w).Encode(documentList{Total: len(out), Documents: out})
}

func newTestClient(t *testing.T) (*Client, *fakeAppwrite) {
	t.Helper()
	fake := &fakeAppwrite{t: t}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	c := New(Config{
		Endpoint:     server.URL + "/v1/",
		ProjectID:    "proj",
		DatabaseID:   "db1",
		CollectionID: "metrics",
	}, httpclient.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c, fake
}

func TestRecord_CreatesThenIncrements(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Record(ctx, "batman", core.Movie{ID: 268, PosterPath: "/bat.jpg"}))
	require.NoError(t, c.Record(ctx, "batman", core.Movie{ID: 999}))

	assert.Equal(t, 1, fake.creates)
	assert.Equal(t, 1, fake.updates)
	require.Len(t, fake.docs, 1)
	assert.Equal(t, 2, fake.docs[0].Count)
	assert.Equal(t, 268, fake.docs[0].MovieID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/bat.jpg", fake.docs[0].PosterURL)
}

func TestTrending_OrderedAndLimited(t *testing.T) {
	c, fake := newTestClient(t)
	for i := range 7 {
		fake.docs = append(fake.docs, document{ID: fmt.Sprintf("d%d", i), Term: fmt.Sprintf("t%d", i), Count: i})
	}

	got, err := c.Trending(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "t6", got[0].Term)
	assert.Equal(t, "d6", got[0].ID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestRecord_StoreFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c := New(Config{Endpoint: server.URL, ProjectID: "proj", DatabaseID: "db", CollectionID: "c"},
		httpclient.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := c.Record(context.Background(), "x", core.Movie{})
	require.Error(t, err)
	assert.True(t, httpclient.IsStatus(err, http.StatusInternalServerError))
}

func TestName(t *testing.T) {
	c, _ := newTestClient(t)
	assert.Equal(t, "appwrite", c.Name())
}
