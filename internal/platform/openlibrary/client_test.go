package openlibrary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	// High rps so the limiter never delays test runs.
	return NewClient(serverURL, "booktracker-test/1.0", 1000)
}

func searchServer(t *testing.T, docs []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"numFound": len(docs),
			"docs":     docs,
		})
	}))
}

func TestCoverByTitle(t *testing.T) {
	server := searchServer(t, []map[string]any{{"cover_i": 12345}})
	defer server.Close()

	coverURL, err := newTestClient(server.URL).CoverByTitle(context.Background(), "Test Book")
	require.NoError(t, err)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/12345-L.jpg", coverURL)
}

func TestCoverByTitleSkipsDocsWithoutCover(t *testing.T) {
	server := searchServer(t, []map[string]any{
		{"title": "coverless edition"},
		{"cover_i": 777},
	})
	defer server.Close()

	coverURL, err := newTestClient(server.URL).CoverByTitle(context.Background(), "Test Book")
	require.NoError(t, err)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/777-L.jpg", coverURL)
}

func TestCoverByTitleNoResults(t *testing.T) {
	server := searchServer(t, nil)
	defer server.Close()

	coverURL, err := newTestClient(server.URL).CoverByTitle(context.Background(), "Unknown Book")
	require.NoError(t, err)
	assert.Empty(t, coverURL)
}

func TestCoverByTitleEncodesTitle(t *testing.T) {
	var gotTitle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.URL.Query().Get("title")
		_ = json.NewEncoder(w).Encode(map[string]any{"numFound": 0})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CoverByTitle(context.Background(), "Gödel, Escher & Bach")
	require.NoError(t, err)
	assert.Equal(t, "Gödel, Escher & Bach", gotTitle)
}

func TestCoverByTitleServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CoverByTitle(context.Background(), "Test Book")
	require.Error(t, err)
}

func TestCoverByTitleMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CoverByTitle(context.Background(), "Test Book")
	require.Error(t, err)
}
