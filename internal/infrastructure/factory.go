package infrastructure

import (
	"net/http"

	"insight-mcp-server/internal/domain"
)

// Default API roots for the live providers.
const (
	DefaultBraveBaseURL       = "https://api.search.brave.com/res/v1"
	DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
)

// NewProviderSet binds each capability to exactly one implementation based
// on the configured mode and credential availability:
//
//   - mock or hybrid mode: every capability uses its mock.
//   - production mode: search and weather use their live clients when the
//     matching API key is present, and fall back to the mock otherwise.
//   - text completion is always mock-backed; there is no live completer in
//     this design and that limit must be preserved.
func NewProviderSet(config *domain.Config) *domain.ProviderSet {
	set := &domain.ProviderSet{
		Completion: NewMockTextCompleter(),
		Search:     NewMockSearchProvider(),
		Weather:    NewMockWeatherProvider(),
		Bindings: map[string]string{
			"completion": "mock",
			"search":     "mock",
			"weather":    "mock",
		},
	}

	if config.Mode != domain.ModeProduction {
		return set
	}

	httpClient := &http.Client{Timeout: config.Timeout()}

	if config.BraveAPIKey != "" {
		set.Search = NewBraveSearchClient(DefaultBraveBaseURL, config.BraveAPIKey, httpClient)
		set.Bindings["search"] = "live"
	}
	if config.OpenWeatherAPIKey != "" {
		set.Weather = NewOpenWeatherClient(DefaultOpenWeatherBaseURL, config.OpenWeatherAPIKey, httpClient)
		set.Bindings["weather"] = "live"
	}

	return set
}
