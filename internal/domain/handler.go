package domain

import (
	"context"
)

// ToolHandler processes tool calls for a group of related operations.
// Handlers receive arguments that have already been validated against the
// tool's input schema, with defaults applied. Expected failures (provider
// faults) are reported as error-flagged ToolResponses; the error return is
// reserved for faults the dispatcher should convert to protocol errors.
type ToolHandler interface {
	// Handle processes a tool call request.
	Handle(ctx context.Context, req *ToolRequest) (*ToolResponse, error)

	// ListTools returns the definitions of every tool this handler serves.
	ListTools() []ToolDefinition

	// Name returns the identifier for this handler, used in logs.
	Name() string
}
