package infrastructure

import (
	"context"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMockCompleterDeterminism tests that identical prompts yield identical
// completions
func TestMockCompleterDeterminism(t *testing.T) {
	completer := NewMockTextCompleter()
	ctx := context.Background()

	prompt := "Summarize the following text in at most 100 characters:\n\nGo is a statically typed language."

	first, err := completer.Complete(ctx, prompt, 100)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := completer.Complete(ctx, prompt, 100)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if first != second {
		t.Errorf("Expected deterministic output, got '%s' and '%s'", first, second)
	}
	if first == "" {
		t.Error("Expected non-empty completion")
	}
}

// TestMockCompleterProperties verifies determinism over arbitrary prompts
func TestMockCompleterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	completer := NewMockTextCompleter()
	ctx := context.Background()

	properties.Property("same prompt always yields same completion", prop.ForAll(
		func(prompt string) bool {
			a, errA := completer.Complete(ctx, prompt, 100)
			b, errB := completer.Complete(ctx, prompt, 100)
			return errA == nil && errB == nil && a == b
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestMockSearchResultCount tests the bounded result count
func TestMockSearchResultCount(t *testing.T) {
	provider := NewMockSearchProvider()
	ctx := context.Background()

	testCases := []struct {
		name       string
		maxResults int
		expected   int
	}{
		{"typical request", 5, 5},
		{"single result", 1, 1},
		{"zero clamps to one", 0, 1},
		{"above cap clamps to cap", 50, MaxSearchResults},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := provider.Search(ctx, "golang concurrency", tc.maxResults)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if len(results) != tc.expected {
				t.Errorf("Expected %d results, got %d", tc.expected, len(results))
			}
		})
	}
}

// TestMockSearchScoresNonIncreasing tests the relevance score ordering
func TestMockSearchScoresNonIncreasing(t *testing.T) {
	provider := NewMockSearchProvider()

	results, err := provider.Search(context.Background(), "anything", MaxSearchResults)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("Expected non-increasing scores, got %.2f after %.2f at index %d",
				results[i].Score, results[i-1].Score, i)
		}
	}
	for i, r := range results {
		if r.Score <= 0 {
			t.Errorf("Expected positive score at index %d, got %.2f", i, r.Score)
		}
	}
}

// TestMockSearchProperties verifies count and score invariants over arbitrary
// queries
func TestMockSearchProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	provider := NewMockSearchProvider()
	ctx := context.Background()

	properties.Property("result count never exceeds the requested bound", prop.ForAll(
		func(query string, maxResults int) bool {
			results, err := provider.Search(ctx, query, maxResults)
			if err != nil {
				return false
			}
			bound := maxResults
			if bound < 1 {
				bound = 1
			}
			if bound > MaxSearchResults {
				bound = MaxSearchResults
			}
			return len(results) == bound
		},
		gen.AlphaString(),
		gen.IntRange(-5, 40),
	))

	properties.TestingRun(t)
}

// TestMockWeatherKnownLocation tests the canned readings table
func TestMockWeatherKnownLocation(t *testing.T) {
	provider := NewMockWeatherProvider()

	report, err := provider.Current(context.Background(), "San Francisco", "fahrenheit")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if report.Temperature != 62 {
		t.Errorf("Expected 62F for San Francisco, got %d", report.Temperature)
	}
	if report.Condition != "foggy" {
		t.Errorf("Expected 'foggy', got '%s'", report.Condition)
	}
	if report.Location != "San Francisco" {
		t.Errorf("Expected location echoed verbatim, got '%s'", report.Location)
	}
}

// TestMockWeatherCelsiusConversion tests unit conversion of canned readings
func TestMockWeatherCelsiusConversion(t *testing.T) {
	provider := NewMockWeatherProvider()

	report, err := provider.Current(context.Background(), "london", "celsius")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// 55F rounds to 13C.
	if report.Temperature != 13 {
		t.Errorf("Expected 13C for London, got %d", report.Temperature)
	}
	if report.Unit != "celsius" {
		t.Errorf("Expected unit 'celsius', got '%s'", report.Unit)
	}
}

// TestMockWeatherUnknownLocation tests the synthetic fallback reading
func TestMockWeatherUnknownLocation(t *testing.T) {
	provider := NewMockWeatherProvider()

	report, err := provider.Current(context.Background(), "Ulaanbaatar", "fahrenheit")
	if err != nil {
		t.Fatalf("Expected no error for unknown location, got: %v", err)
	}

	if report.Location != "Ulaanbaatar" {
		t.Errorf("Expected location echoed verbatim, got '%s'", report.Location)
	}
	if report.Temperature != 72 {
		t.Errorf("Expected synthetic 72F reading, got %d", report.Temperature)
	}
	if !strings.Contains(report.Forecast, "Ulaanbaatar") {
		t.Errorf("Expected forecast to mention the location, got '%s'", report.Forecast)
	}
}

// TestFahrenheitToCelsius tests the conversion rounding
func TestFahrenheitToCelsius(t *testing.T) {
	testCases := []struct {
		fahrenheit int
		celsius    int
	}{
		{32, 0},
		{212, 100},
		{62, 17},
		{68, 20},
		{-40, -40},
	}

	for _, tc := range testCases {
		if got := fahrenheitToCelsius(tc.fahrenheit); got != tc.celsius {
			t.Errorf("For %dF expected %dC, got %d", tc.fahrenheit, tc.celsius, got)
		}
	}
}
