package infrastructure

import (
	"context"
	"fmt"
	"math"
	"strings"

	"insight-mcp-server/internal/domain"
)

// MockTextCompleter is the deterministic, offline text completion provider.
// It is the only completion binding the server ever uses: there is no live
// completer in this design.
type MockTextCompleter struct{}

// NewMockTextCompleter creates a new MockTextCompleter.
func NewMockTextCompleter() *MockTextCompleter {
	return &MockTextCompleter{}
}

// completionTemplates are selected by prompt length; %s is replaced with the
// first few words of the prompt. Determinism (same prompt, same output) is a
// required property of this provider, not an optimization.
var completionTemplates = []string{
	"The main point of %q is that the subject rewards a closer reading.",
	"In short, %q covers the essentials and leaves the details to context.",
	"A brief take on %q: the core ideas hold up and the rest is supporting material.",
	"Summarized, %q reduces to a handful of central claims worth remembering.",
	"At its heart, %q is about one theme examined from several angles.",
}

// Complete returns a templated completion derived purely from the prompt.
func (p *MockTextCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	words := strings.Fields(prompt)
	if len(words) > 3 {
		words = words[:3]
	}
	head := strings.Join(words, " ")

	template := completionTemplates[len(prompt)%len(completionTemplates)]
	return fmt.Sprintf(template, head), nil
}

// MockSearchProvider returns synthetic search results drawn from a fixed
// pool of placeholder domains.
type MockSearchProvider struct{}

// NewMockSearchProvider creates a new MockSearchProvider.
func NewMockSearchProvider() *MockSearchProvider {
	return &MockSearchProvider{}
}

// placeholderDomains is the fixed pool the mock cycles through.
var placeholderDomains = []string{
	"example.com",
	"docs.example.org",
	"blog.example.net",
	"wiki.example.io",
	"research.example.edu",
}

// MaxSearchResults is the upper bound on results per query.
const MaxSearchResults = 20

// Search returns maxResults synthetic results with non-increasing scores.
func (p *MockSearchProvider) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > MaxSearchResults {
		maxResults = MaxSearchResults
	}

	results := make([]domain.SearchResult, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		domainName := placeholderDomains[i%len(placeholderDomains)]
		results = append(results, domain.SearchResult{
			Title:   fmt.Sprintf("Result %d for %q", i+1, query),
			URL:     fmt.Sprintf("https://%s/articles/%d", domainName, i+1),
			Snippet: fmt.Sprintf("Placeholder content from %s discussing %s.", domainName, query),
			Score:   searchScore(i),
		})
	}

	return results, nil
}

// searchScore yields the non-increasing relevance scheme 1.0 - i*0.15,
// floored so late entries never go non-positive.
func searchScore(index int) float64 {
	score := 1.0 - float64(index)*0.15
	if score < 0.05 {
		return 0.05
	}
	return score
}

// MockWeatherProvider serves canned readings for a small set of known
// locations and a fixed plausible reading for everything else.
type MockWeatherProvider struct{}

// NewMockWeatherProvider creates a new MockWeatherProvider.
func NewMockWeatherProvider() *MockWeatherProvider {
	return &MockWeatherProvider{}
}

// cannedReading is a fixed table entry in degrees Fahrenheit.
type cannedReading struct {
	temperature int
	condition   string
	humidity    int
	windSpeed   int
	forecast    string
}

var cannedWeather = map[string]cannedReading{
	"san francisco": {62, "foggy", 78, 12, "Morning fog clearing to afternoon sun in San Francisco"},
	"new york":      {75, "partly cloudy", 60, 8, "Scattered clouds over New York with a mild evening ahead"},
	"london":        {55, "rainy", 85, 15, "Persistent showers across London tapering off overnight"},
	"tokyo":         {68, "clear", 55, 6, "Clear skies in Tokyo with light winds through tomorrow"},
}

// Current returns the canned reading for known locations, matching on the
// lower-cased, trimmed name. Unknown locations get a synthetic reading with
// the requested name echoed back verbatim; they are never an error.
func (p *MockWeatherProvider) Current(ctx context.Context, location, unit string) (*domain.WeatherReport, error) {
	key := strings.ToLower(strings.TrimSpace(location))

	reading, known := cannedWeather[key]
	if !known {
		reading = cannedReading{
			temperature: 72,
			condition:   "partly cloudy",
			humidity:    50,
			windSpeed:   7,
			forecast:    fmt.Sprintf("Mild conditions expected in %s for the next few days", location),
		}
	}

	temperature := reading.temperature
	if unit == "celsius" {
		temperature = fahrenheitToCelsius(reading.temperature)
	}

	return &domain.WeatherReport{
		Location:    location,
		Temperature: temperature,
		Unit:        unit,
		Condition:   reading.condition,
		Humidity:    reading.humidity,
		WindSpeed:   reading.windSpeed,
		Forecast:    reading.forecast,
	}, nil
}

// fahrenheitToCelsius converts and rounds to the nearest integer.
func fahrenheitToCelsius(f int) int {
	return int(math.Round((float64(f) - 32.0) * 5.0 / 9.0))
}
