package domain

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ResponseMapper converts tool payloads and provider errors into the wire
// shapes returned to the client.
type ResponseMapper struct{}

// NewResponseMapper creates a new ResponseMapper.
func NewResponseMapper() *ResponseMapper {
	return &ResponseMapper{}
}

// MapToToolResponse serializes a tool success payload into a text content
// block. When the payload mirrors a declared output schema, the caller also
// attaches it as structured content.
func (m *ResponseMapper) MapToToolResponse(payload interface{}) (*ToolResponse, error) {
	if payload == nil {
		return TextResponse("{}"), nil
	}

	// Strings are returned as-is; everything else as pretty-printed JSON.
	if s, ok := payload.(string); ok {
		return TextResponse(s), nil
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool payload: %w", err)
	}

	return TextResponse(string(data)), nil
}

// MapError converts a provider or handler error to a JSON-RPC error object.
func (m *ResponseMapper) MapError(err error) *Error {
	if err == nil {
		return nil
	}

	if httpErr, ok := err.(HTTPError); ok {
		return mapHTTPError(httpErr)
	}

	if domainErr, ok := err.(*Error); ok {
		return domainErr
	}

	return &Error{
		Code:    InternalError,
		Message: err.Error(),
	}
}

// HTTPError represents a non-success HTTP status from an upstream API.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface for HTTPError.
func (e HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Message, e.Body)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(statusCode int, message string, body string) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}
}

// mapHTTPError maps upstream HTTP status codes to JSON-RPC error codes.
func mapHTTPError(httpErr HTTPError) *Error {
	var code int
	switch httpErr.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		code = NetworkError
	default:
		code = UpstreamError
	}

	errorData := map[string]interface{}{
		"statusCode": httpErr.StatusCode,
	}
	if httpErr.Body != "" {
		errorData["body"] = httpErr.Body
	}

	return &Error{
		Code:    code,
		Message: fmt.Sprintf("upstream API error (status %d)", httpErr.StatusCode),
		Data:    errorData,
	}
}
