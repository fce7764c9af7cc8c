package domain

// ToolDefinition describes one callable operation in the catalog.
// It is advertised to clients via tools/list and drives argument validation
// before dispatch.
type ToolDefinition struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	InputSchema  JSONSchema       `json:"inputSchema"`
	OutputSchema *JSONSchema      `json:"outputSchema,omitempty"`
	Annotations  *ToolAnnotations `json:"annotations,omitempty"`
}

// ToolAnnotations carry advisory metadata about a tool's behavior.
// The dispatcher never enforces them; they exist so clients can make
// confirmation and caching decisions.
type ToolAnnotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint,omitempty"`
	IdempotentHint  bool `json:"idempotentHint,omitempty"`
	DestructiveHint bool `json:"destructiveHint,omitempty"`
	OpenWorldHint   bool `json:"openWorldHint,omitempty"`
}

// ToolRequest represents a tools/call invocation.
type ToolRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolResponse is the wire shape returned to the client after tool
// execution. Failures are flagged with IsError rather than raised as
// protocol errors so a handler failure never terminates the call loop.
type ToolResponse struct {
	Content           []ContentBlock `json:"content"`
	StructuredContent interface{}    `json:"structuredContent,omitempty"`
	IsError           bool           `json:"isError,omitempty"`
}

// ContentBlock represents a piece of content in a tool response.
type ContentBlock struct {
	Type string `json:"type"` // currently always "text"
	Text string `json:"text,omitempty"`
}

// TextResponse builds a single-block text ToolResponse.
func TextResponse(text string) *ToolResponse {
	return &ToolResponse{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ErrorResponse builds an error-flagged single-block text ToolResponse.
func ErrorResponse(text string) *ToolResponse {
	return &ToolResponse{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: true,
	}
}

// JSONSchema represents the JSON Schema object shape used for tool input
// and output schemas. Property maps may carry "type", "description",
// "default", "enum", "minimum", "maximum" and "minLength" keys.
type JSONSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// Defaults extracts the declared default value of every property that has
// one. The dispatcher applies these to the argument map during validation so
// handlers never substitute defaults themselves.
func (s JSONSchema) Defaults() map[string]interface{} {
	defaults := make(map[string]interface{})
	for name, raw := range s.Properties {
		prop, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if def, ok := prop["default"]; ok {
			defaults[name] = def
		}
	}
	return defaults
}
