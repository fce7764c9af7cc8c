package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"insight-mcp-server/internal/domain"
)

// InteractiveHandler implements ToolHandler for the two operations that,
// instead of calling a backend, issue a nested request back to the connected
// client and interpret its disposition.
type InteractiveHandler struct {
	caller domain.ClientCaller
	mapper *domain.ResponseMapper
}

// NewInteractiveHandler creates a new InteractiveHandler instance.
func NewInteractiveHandler(caller domain.ClientCaller, mapper *domain.ResponseMapper) *InteractiveHandler {
	return &InteractiveHandler{
		caller: caller,
		mapper: mapper,
	}
}

// Tool name constants for interactive operations
const (
	ToolSmartSummarize    = "smart_summarize"
	ToolConfigureAnalysis = "configure_analysis"
)

// Name returns the identifier for this handler.
func (h *InteractiveHandler) Name() string {
	return "interactive"
}

// AnalysisConfig is the configuration collected by configure_analysis.
type AnalysisConfig struct {
	Depth            string `json:"depth"`
	IncludeSentiment bool   `json:"include_sentiment"`
	IncludeEntities  bool   `json:"include_entities"`
	MaxSummaryLength int    `json:"max_summary_length"`
}

// defaultAnalysisConfig is substituted field-by-field for anything the user
// does not provide, and wholesale when the client cannot elicit at all.
func defaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Depth:            "standard",
		IncludeSentiment: true,
		IncludeEntities:  true,
		MaxSummaryLength: 100,
	}
}

// ConfigureOutcome is the payload of the configure_analysis tool. Every
// disposition, including decline and cancel, is a handler-level success;
// callers branch on Action, not on the error flag.
type ConfigureOutcome struct {
	Action  domain.ElicitAction `json:"action"`
	Config  *AnalysisConfig     `json:"config,omitempty"`
	Message string              `json:"message"`
}

// ListTools returns the definitions of the interactive tools.
func (h *InteractiveHandler) ListTools() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        ToolSmartSummarize,
			Description: "Summarize text by asking the connected client's language model",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The text to summarize",
						"minLength":   1,
					},
					"maxLength": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum summary length in characters",
						"default":     150,
						"minimum":     10,
						"maximum":     2000,
					},
				},
				Required: []string{"text"},
			},
			Annotations: &domain.ToolAnnotations{ReadOnlyHint: true},
		},
		{
			Name:        ToolConfigureAnalysis,
			Description: "Ask the user to configure analysis options for a piece of text",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The text the configuration applies to",
					},
				},
				Required: []string{"text"},
			},
			OutputSchema: &domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"action": map[string]interface{}{
						"type": "string",
						"enum": []string{"accept", "decline", "cancel"},
					},
					"config": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"depth":              map[string]interface{}{"type": "string"},
							"include_sentiment":  map[string]interface{}{"type": "boolean"},
							"include_entities":   map[string]interface{}{"type": "boolean"},
							"max_summary_length": map[string]interface{}{"type": "integer"},
						},
					},
					"message": map[string]interface{}{"type": "string"},
				},
				Required: []string{"action", "message"},
			},
			Annotations: &domain.ToolAnnotations{ReadOnlyHint: true},
		},
	}
}

// Handle processes a tool call for interactive operations.
func (h *InteractiveHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	switch req.Name {
	case ToolSmartSummarize:
		return h.handleSmartSummarize(ctx, req.Arguments)
	case ToolConfigureAnalysis:
		return h.handleConfigureAnalysis(ctx, req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown interactive tool: %s", req.Name),
		}
	}
}

// handleSmartSummarize issues a single sampling round trip to the client.
// No retry is attempted.
func (h *InteractiveHandler) handleSmartSummarize(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	text, err := getStringParam(args, "text", true)
	if err != nil {
		return nil, err
	}
	maxLength, err := getIntParam(args, "maxLength", false)
	if err != nil {
		return nil, err
	}

	samplingReq := &domain.SamplingRequest{
		Messages: []domain.SamplingMessage{
			{
				Role: "user",
				Content: domain.SamplingContent{
					Type: "text",
					Text: fmt.Sprintf("Provide a concise summary (at most %d characters) of the following text:\n\n%s", maxLength, text),
				},
			},
		},
		MaxTokens: maxLength * 4,
	}

	result, callErr := h.caller.CreateMessage(ctx, samplingReq)
	if callErr != nil {
		return respond(h.mapper, domain.Fail[string](fmt.Errorf("sampling request failed: %w", callErr)), false)
	}

	if result.Content.Type != "text" {
		return respond(h.mapper, domain.Fail[string](fmt.Errorf("unexpected content type %q in sampling response", result.Content.Type)), false)
	}

	return respond(h.mapper, domain.Ok(result.Content.Text), false)
}

// handleConfigureAnalysis issues a single elicitation round trip and maps
// the four possible outcomes. Every branch is a handler-level success: user
// non-cooperation is a valid disposition, not an error.
func (h *InteractiveHandler) handleConfigureAnalysis(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	text, err := getStringParam(args, "text", true)
	if err != nil {
		return nil, err
	}

	elicitReq := &domain.ElicitRequest{
		Message: fmt.Sprintf("Configure analysis options for a %d-character input.", len(text)),
		RequestedSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"depth": map[string]interface{}{
					"type":        "string",
					"description": "How thorough the analysis should be",
					"enum":        []string{"quick", "standard", "deep"},
				},
				"include_sentiment": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether to run sentiment classification",
				},
				"include_entities": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether to run entity extraction",
				},
				"max_summary_length": map[string]interface{}{
					"type":        "number",
					"description": "Maximum summary length in characters",
				},
			},
		},
	}

	result, callErr := h.caller.Elicit(ctx, elicitReq)
	if callErr != nil {
		// The client cannot elicit at all; proceed with defaults rather
		// than surfacing a failure.
		config := defaultAnalysisConfig()
		return respond(h.mapper, domain.Ok(ConfigureOutcome{
			Action:  domain.ElicitAccept,
			Config:  &config,
			Message: "Client does not support elicitation; default configuration applied.",
		}), true)
	}

	switch domain.ParseElicitAction(string(result.Action)) {
	case domain.ElicitAccept:
		config := coerceAnalysisConfig(result.Content)
		return respond(h.mapper, domain.Ok(ConfigureOutcome{
			Action:  domain.ElicitAccept,
			Config:  &config,
			Message: "Analysis configured from user input.",
		}), true)
	case domain.ElicitDecline:
		return respond(h.mapper, domain.Ok(ConfigureOutcome{
			Action:  domain.ElicitDecline,
			Message: "User declined to configure analysis.",
		}), true)
	default:
		return respond(h.mapper, domain.Ok(ConfigureOutcome{
			Action:  domain.ElicitCancel,
			Message: "User cancelled the configuration request.",
		}), true)
	}
}

// coerceAnalysisConfig builds a configuration from the raw elicitation
// payload, substituting the default field-by-field for anything missing or
// uncoercible.
func coerceAnalysisConfig(content map[string]interface{}) AnalysisConfig {
	config := defaultAnalysisConfig()
	if content == nil {
		return config
	}

	if s, ok := content["depth"].(string); ok && s != "" {
		config.Depth = s
	}
	config.IncludeSentiment = coerceBool(content["include_sentiment"], config.IncludeSentiment)
	config.IncludeEntities = coerceBool(content["include_entities"], config.IncludeEntities)
	config.MaxSummaryLength = coerceInt(content["max_summary_length"], config.MaxSummaryLength)

	return config
}

// coerceBool applies truthy coercion to a raw JSON value.
func coerceBool(value interface{}, def bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
		return def
	case float64:
		return v != 0
	default:
		return def
	}
}

// coerceInt applies numeric coercion to a raw JSON value.
func coerceInt(value interface{}, def int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return def
	default:
		return def
	}
}
