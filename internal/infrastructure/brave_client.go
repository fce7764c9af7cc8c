package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"insight-mcp-server/internal/domain"
)

// BraveSearchClient is the live web search provider backed by the Brave
// Search API. The API key travels in the X-Subscription-Token header.
type BraveSearchClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewBraveSearchClient creates a new Brave Search API client.
// The baseURL should be the API root (e.g. "https://api.search.brave.com/res/v1").
func NewBraveSearchClient(baseURL, apiKey string, httpClient *http.Client) *BraveSearchClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BraveSearchClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// braveSearchResponse is the subset of the Brave response body we consume.
type braveSearchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search issues a web search with a bounded result count. A missing or
// empty upstream result list is an empty success, not an error. The three
// failure modes (transport, HTTP status, body decode) carry distinguishable
// messages.
func (c *BraveSearchClient) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > MaxSearchResults {
		maxResults = MaxSearchResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", maxResults))
	endpoint := fmt.Sprintf("%s/web/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.NewHTTPError(resp.StatusCode, "search API request rejected", string(body))
	}

	var parsed braveSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	upstream := parsed.Web.Results
	if len(upstream) > maxResults {
		// The API may return more than requested; truncate.
		upstream = upstream[:maxResults]
	}

	results := make([]domain.SearchResult, 0, len(upstream))
	for i, r := range upstream {
		results = append(results, domain.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
			Score:   searchScore(i),
		})
	}

	return results, nil
}
