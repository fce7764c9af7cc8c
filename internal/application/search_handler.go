package application

import (
	"context"
	"fmt"

	"insight-mcp-server/internal/domain"
)

// SearchHandler implements ToolHandler for web search. The tool is
// registered under two names: web_search and the legacy alias
// brave_web_search, both served by the same handler and schema.
type SearchHandler struct {
	search domain.SearchProvider
	mapper *domain.ResponseMapper
}

// NewSearchHandler creates a new SearchHandler instance.
func NewSearchHandler(search domain.SearchProvider, mapper *domain.ResponseMapper) *SearchHandler {
	return &SearchHandler{
		search: search,
		mapper: mapper,
	}
}

// Tool name constants for search operations
const (
	ToolWebSearch      = "web_search"
	ToolBraveWebSearch = "brave_web_search"
)

// Name returns the identifier for this handler.
func (h *SearchHandler) Name() string {
	return "search"
}

// SearchResults is the payload of the web_search tool.
type SearchResults struct {
	Query   string                `json:"query"`
	Results []domain.SearchResult `json:"results"`
}

// ListTools returns the search tool under both of its registered names.
func (h *SearchHandler) ListTools() []domain.ToolDefinition {
	def := domain.ToolDefinition{
		Name:        ToolWebSearch,
		Description: "Search the web and return ranked results",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query",
					"minLength":   1,
				},
				"maxResults": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     5,
					"minimum":     1,
					"maximum":     20,
				},
			},
			Required: []string{"query"},
		},
		OutputSchema: &domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{"type": "string"},
				"results": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"title":   map[string]interface{}{"type": "string"},
							"url":     map[string]interface{}{"type": "string"},
							"snippet": map[string]interface{}{"type": "string"},
							"score":   map[string]interface{}{"type": "number"},
						},
						"required": []string{"title", "url", "snippet", "score"},
					},
				},
			},
			Required: []string{"query", "results"},
		},
		Annotations: &domain.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: true},
	}

	alias := def
	alias.Name = ToolBraveWebSearch
	alias.Description = "Search the web and return ranked results (alias of web_search)"

	return []domain.ToolDefinition{def, alias}
}

// Handle processes a tool call for search operations.
func (h *SearchHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	switch req.Name {
	case ToolWebSearch, ToolBraveWebSearch:
		return h.handleSearch(ctx, req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown search tool: %s", req.Name),
		}
	}
}

// handleSearch delegates to the search backend.
func (h *SearchHandler) handleSearch(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	query, err := getStringParam(args, "query", true)
	if err != nil {
		return nil, err
	}
	maxResults, err := getIntParam(args, "maxResults", false)
	if err != nil {
		return nil, err
	}

	results, searchErr := h.search.Search(ctx, query, maxResults)
	if searchErr != nil {
		return respond(h.mapper, domain.Fail[SearchResults](searchErr), true)
	}

	return respond(h.mapper, domain.Ok(SearchResults{Query: query, Results: results}), true)
}
