package application

import (
	"context"
	"fmt"

	"insight-mcp-server/internal/domain"
)

// WeatherHandler implements ToolHandler for the get_weather operation.
type WeatherHandler struct {
	weather domain.WeatherProvider
	mapper  *domain.ResponseMapper
}

// NewWeatherHandler creates a new WeatherHandler instance.
func NewWeatherHandler(weather domain.WeatherProvider, mapper *domain.ResponseMapper) *WeatherHandler {
	return &WeatherHandler{
		weather: weather,
		mapper:  mapper,
	}
}

// ToolGetWeather is the name of the weather lookup tool.
const ToolGetWeather = "get_weather"

// Name returns the identifier for this handler.
func (h *WeatherHandler) Name() string {
	return "weather"
}

// ListTools returns the weather tool definition.
func (h *WeatherHandler) ListTools() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        ToolGetWeather,
			Description: "Look up current weather conditions for a location",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"location": map[string]interface{}{
						"type":        "string",
						"description": "City name, e.g. 'San Francisco'",
						"minLength":   1,
					},
					"unit": map[string]interface{}{
						"type":        "string",
						"description": "Temperature unit",
						"enum":        []string{"fahrenheit", "celsius"},
						"default":     "fahrenheit",
					},
				},
				Required: []string{"location"},
			},
			OutputSchema: &domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"location":    map[string]interface{}{"type": "string"},
					"temperature": map[string]interface{}{"type": "integer"},
					"unit":        map[string]interface{}{"type": "string"},
					"condition":   map[string]interface{}{"type": "string"},
					"humidity":    map[string]interface{}{"type": "integer"},
					"wind_speed":  map[string]interface{}{"type": "integer"},
					"forecast":    map[string]interface{}{"type": "string"},
				},
				Required: []string{"location", "temperature", "unit", "condition", "humidity", "wind_speed", "forecast"},
			},
			Annotations: &domain.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: true},
		},
	}
}

// Handle processes a tool call for the weather operation.
func (h *WeatherHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Name != ToolGetWeather {
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown weather tool: %s", req.Name),
		}
	}
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	location, err := getStringParam(req.Arguments, "location", true)
	if err != nil {
		return nil, err
	}
	unit, err := getStringParam(req.Arguments, "unit", false)
	if err != nil {
		return nil, err
	}
	if unit == "" {
		unit = "fahrenheit"
	}

	report, weatherErr := h.weather.Current(ctx, location, unit)
	if weatherErr != nil {
		return respond(h.mapper, domain.Fail[*domain.WeatherReport](weatherErr), true)
	}

	return respond(h.mapper, domain.Ok(report), true)
}
