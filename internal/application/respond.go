package application

import (
	"insight-mcp-server/internal/domain"
)

// respond normalizes a tool Result into the wire response shape: a failure
// becomes an error-flagged response (never an error return, so no provider
// fault escalates past the dispatcher), and a success becomes a text content
// block carrying the serialized payload. When structured is true the payload
// is also attached as structured content mirroring the tool's output schema.
// Failures pass through the mapper so upstream HTTP faults surface with
// their status-based taxonomy instead of raw client messages.
func respond[T any](mapper *domain.ResponseMapper, result domain.Result[T], structured bool) (*domain.ToolResponse, error) {
	if !result.IsOK() {
		rpcErr := mapper.MapError(result.Err())
		return domain.ErrorResponse(rpcErr.Message), nil
	}

	resp, err := mapper.MapToToolResponse(result.Value())
	if err != nil {
		return nil, err
	}

	if structured {
		resp.StructuredContent = result.Value()
	}

	return resp, nil
}
