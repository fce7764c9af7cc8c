package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-mcp-server/internal/domain"
)

// TestBraveSearchSuccess tests a normal search round trip
func TestBraveSearchSuccess(t *testing.T) {
	var gotToken, gotQuery, gotCount string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Subscription-Token")
		gotQuery = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("count")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"web": {
				"results": [
					{"title": "Go Concurrency Patterns", "url": "https://go.dev/blog/pipelines", "description": "Pipelines and cancellation."},
					{"title": "Effective Go", "url": "https://go.dev/doc/effective_go", "description": "Tips for writing clear Go."}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewBraveSearchClient(server.URL, "test-key", server.Client())
	results, err := client.Search(context.Background(), "golang concurrency", 5)

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotToken)
	assert.Equal(t, "golang concurrency", gotQuery)
	assert.Equal(t, "5", gotCount)

	require.Len(t, results, 2)
	assert.Equal(t, "Go Concurrency Patterns", results[0].Title)
	assert.Equal(t, "https://go.dev/blog/pipelines", results[0].URL)
	assert.Equal(t, "Pipelines and cancellation.", results[0].Snippet)
	assert.Greater(t, results[0].Score, results[1].Score)
}

// TestBraveSearchTruncatesExcessResults tests the maxResults bound against a
// chatty upstream
func TestBraveSearchTruncatesExcessResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"web": {
				"results": [
					{"title": "a", "url": "https://a", "description": "a"},
					{"title": "b", "url": "https://b", "description": "b"},
					{"title": "c", "url": "https://c", "description": "c"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewBraveSearchClient(server.URL, "test-key", server.Client())
	results, err := client.Search(context.Background(), "anything", 2)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

// TestBraveSearchEmptyResults tests that zero hits is a success
func TestBraveSearchEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"web": {"results": []}}`))
	}))
	defer server.Close()

	client := NewBraveSearchClient(server.URL, "test-key", server.Client())
	results, err := client.Search(context.Background(), "no hits whatsoever", 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestBraveSearchHTTPError tests the non-2xx failure mode
func TestBraveSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := NewBraveSearchClient(server.URL, "test-key", server.Client())
	_, err := client.Search(context.Background(), "anything", 5)

	require.Error(t, err)
	var httpErr domain.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, err.Error(), "rejected")
}

// TestBraveSearchMalformedBody tests the decode failure mode
func TestBraveSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewBraveSearchClient(server.URL, "test-key", server.Client())
	_, err := client.Search(context.Background(), "anything", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode search response")
}

// TestBraveSearchTransportError tests the connection failure mode
func TestBraveSearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the dial fails

	client := NewBraveSearchClient(server.URL, "test-key", nil)
	_, err := client.Search(context.Background(), "anything", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search request failed")
}

// TestBraveSearchClampsCount tests request-side count clamping
func TestBraveSearchClampsCount(t *testing.T) {
	var gotCount string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		w.Write([]byte(`{"web": {"results": []}}`))
	}))
	defer server.Close()

	client := NewBraveSearchClient(server.URL, "test-key", server.Client())

	_, err := client.Search(context.Background(), "anything", 100)
	require.NoError(t, err)
	assert.Equal(t, "20", gotCount)

	_, err = client.Search(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Equal(t, "1", gotCount)
}
