package domain

import "context"

// TextCompleter produces a text completion for a prompt. There is no live
// implementation of this capability; the mock is the only binding regardless
// of mode, which is a deliberate scope limit.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// SearchProvider executes a web search and returns at most maxResults
// results with non-increasing relevance scores.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// WeatherProvider looks up current weather conditions for a location.
// unit is "fahrenheit" or "celsius".
type WeatherProvider interface {
	Current(ctx context.Context, location, unit string) (*WeatherReport, error)
}

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// WeatherReport is a current-conditions reading for one location.
type WeatherReport struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Unit        string `json:"unit"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Forecast    string `json:"forecast"`
}

// ProviderSet binds each backend capability to exactly one implementation
// for the lifetime of the server process. It is constructed once at startup
// and shared read-only across all calls; handlers never mutate it.
type ProviderSet struct {
	Completion TextCompleter
	Search     SearchProvider
	Weather    WeatherProvider

	// Bindings records which implementation ("mock" or "live") each
	// capability resolved to, for the configuration snapshot resource.
	Bindings map[string]string
}
