package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"

	"insight-mcp-server/internal/domain"
)

// OpenWeatherClient is the live weather provider backed by the OpenWeatherMap
// current-weather API. The API key travels in the query string.
type OpenWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenWeatherClient creates a new OpenWeatherMap API client.
// The baseURL should be the API root (e.g. "https://api.openweathermap.org/data/2.5").
func NewOpenWeatherClient(baseURL, apiKey string, httpClient *http.Client) *OpenWeatherClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenWeatherClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// openWeatherResponse is the subset of the OpenWeatherMap response body we
// consume.
type openWeatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Current looks up current conditions for a location. Failure modes mirror
// the search client: transport, HTTP status and body decode faults carry
// distinguishable messages.
func (c *OpenWeatherClient) Current(ctx context.Context, location, unit string) (*domain.WeatherReport, error) {
	units := "imperial"
	if unit == "celsius" {
		units = "metric"
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("units", units)
	params.Set("appid", c.apiKey)
	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.NewHTTPError(resp.StatusCode, "weather API request rejected", string(body))
	}

	var parsed openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	label := parsed.Name
	if parsed.Sys.Country != "" {
		label = fmt.Sprintf("%s, %s", parsed.Name, parsed.Sys.Country)
	}

	condition := ""
	if len(parsed.Weather) > 0 {
		condition = parsed.Weather[0].Description
		if condition == "" {
			condition = parsed.Weather[0].Main
		}
	}

	return &domain.WeatherReport{
		Location:    label,
		Temperature: int(math.Round(parsed.Main.Temp)),
		Unit:        unit,
		Condition:   condition,
		Humidity:    parsed.Main.Humidity,
		WindSpeed:   int(math.Round(parsed.Wind.Speed)),
		Forecast:    fmt.Sprintf("Currently %s in %s", condition, label),
	}, nil
}
