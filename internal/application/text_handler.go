package application

import (
	"context"
	"fmt"

	"insight-mcp-server/internal/domain"
)

// TextToolsHandler implements ToolHandler for the local text-insight
// operations: summarize, analyze_sentiment and extract_entities. Only
// summarize touches a backend; the other two are pure local computation.
type TextToolsHandler struct {
	completer domain.TextCompleter
	mapper    *domain.ResponseMapper
}

// NewTextToolsHandler creates a new TextToolsHandler instance.
func NewTextToolsHandler(completer domain.TextCompleter, mapper *domain.ResponseMapper) *TextToolsHandler {
	return &TextToolsHandler{
		completer: completer,
		mapper:    mapper,
	}
}

// Tool name constants for text operations
const (
	ToolSummarize        = "summarize"
	ToolAnalyzeSentiment = "analyze_sentiment"
	ToolExtractEntities  = "extract_entities"
)

// defaultEntityTypes are the categories extracted when the caller does not
// narrow the request.
var defaultEntityTypes = []string{"person", "organization", "location"}

// Name returns the identifier for this handler.
func (h *TextToolsHandler) Name() string {
	return "text"
}

// ListTools returns the definitions of the text-insight tools.
func (h *TextToolsHandler) ListTools() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        ToolSummarize,
			Description: "Summarize a piece of text using the text completion backend",
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
						"default":     100,
						"minimum":     10,
						"maximum":     1000,
					},
				},
				Required: []string{"text"},
			},
			Annotations: &domain.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		},
		{
			Name:        ToolAnalyzeSentiment,
			Description: "Classify the sentiment of a piece of text",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The text to classify",
					},
				},
				Required: []string{"text"},
			},
			OutputSchema: &domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"sentiment": map[string]interface{}{
						"type": "string",
						"enum": []string{"positive", "negative", "neutral", "mixed"},
					},
					"confidence": map[string]interface{}{
						"type":    "number",
						"minimum": 0,
						"maximum": 1,
					},
					"explanation": map[string]interface{}{
						"type": "string",
					},
				},
				Required: []string{"sentiment", "confidence", "explanation"},
			},
			Annotations: &domain.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		},
		{
			Name:        ToolExtractEntities,
			Description: "Extract named entities (people, organizations, locations) from text",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The text to scan for entities",
					},
					"types": map[string]interface{}{
						"type":        "array",
						"description": "Entity categories to extract",
						"items":       map[string]interface{}{"type": "string"},
						"default":     []string{"person", "organization", "location"},
					},
				},
				Required: []string{"text"},
			},
			OutputSchema: &domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"entities": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"text":       map[string]interface{}{"type": "string"},
								"type":       map[string]interface{}{"type": "string"},
								"confidence": map[string]interface{}{"type": "number"},
							},
							"required": []string{"text", "type", "confidence"},
						},
					},
				},
				Required: []string{"entities"},
			},
			Annotations: &domain.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		},
	}
}

// Handle processes a tool call for text operations.
func (h *TextToolsHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	switch req.Name {
	case ToolSummarize:
		return h.handleSummarize(ctx, req.Arguments)
	case ToolAnalyzeSentiment:
		return h.handleAnalyzeSentiment(req.Arguments)
	case ToolExtractEntities:
		return h.handleExtractEntities(req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown text tool: %s", req.Name),
		}
	}
}

// handleSummarize delegates to the text completion backend. Backend failure
// propagates unchanged through the Result.
func (h *TextToolsHandler) handleSummarize(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	text, err := getStringParam(args, "text", true)
	if err != nil {
		return nil, err
	}
	maxLength, err := getIntParam(args, "maxLength", false)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Summarize the following text in at most %d characters:\n\n%s", maxLength, text)

	summary, completeErr := h.completer.Complete(ctx, prompt, maxLength)
	if completeErr != nil {
		return respond(h.mapper, domain.Fail[string](completeErr), false)
	}

	return respond(h.mapper, domain.Ok(summary), false)
}

// handleAnalyzeSentiment is pure local computation and always succeeds.
func (h *TextToolsHandler) handleAnalyzeSentiment(args map[string]interface{}) (*domain.ToolResponse, error) {
	text, err := getStringParam(args, "text", true)
	if err != nil {
		return nil, err
	}

	return respond(h.mapper, domain.Ok(analyzeSentiment(text)), true)
}

// handleExtractEntities is pure local computation and always succeeds; zero
// matches yields an empty list, not an error.
func (h *TextToolsHandler) handleExtractEntities(args map[string]interface{}) (*domain.ToolResponse, error) {
	text, err := getStringParam(args, "text", true)
	if err != nil {
		return nil, err
	}
	types, err := getStringSliceParam(args, "types", false)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = defaultEntityTypes
	}

	return respond(h.mapper, domain.Ok(extractEntities(text, types)), true)
}
