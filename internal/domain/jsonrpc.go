package domain

import (
	"encoding/json"
	"fmt"
)

// Message represents a JSON-RPC 2.0 message. The server both receives
// requests from the client and receives responses to requests it issued
// itself (sampling and elicitation round trips), so a single union type
// carries traffic in both directions. Exactly one of the request fields
// (Method) or the response fields (Result/Error) is populated.
type Message struct {
	JSONRPC string          `json:"jsonrpc"` // Must be "2.0"
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// IsRequest reports whether the message is a request or notification.
func (m *Message) IsRequest() bool {
	return m.Method != ""
}

// IsNotification reports whether the message is a request without an ID,
// which per JSON-RPC 2.0 must not be answered.
func (m *Message) IsNotification() bool {
	return m.Method != "" && m.ID == nil
}

// IsResponse reports whether the message answers an outstanding request.
func (m *Message) IsResponse() bool {
	return m.Method == "" && (m.Result != nil || m.Error != nil)
}

// NewRequest builds a JSON-RPC request message with marshaled params.
func NewRequest(id interface{}, method string, params interface{}) (*Message, error) {
	msg := &Message{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
	}
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		msg.Params = data
	}
	return msg, nil
}

// NewResponse builds a successful JSON-RPC response message with a
// marshaled result.
func NewResponse(id interface{}, result interface{}) (*Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Result:  data,
	}, nil
}

// NewErrorResponse builds a JSON-RPC error response message.
func NewErrorResponse(id interface{}, code int, message string, data interface{}) *Message {
	return &Message{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	return e.Message
}

// JSON-RPC 2.0 error codes
const (
	// Standard JSON-RPC 2.0 error codes
	ParseError     = -32700 // Invalid JSON received
	InvalidRequest = -32600 // Invalid JSON-RPC request structure
	MethodNotFound = -32601 // Unknown method or tool
	InvalidParams  = -32602 // Invalid method parameters
	InternalError  = -32603 // Server internal error

	// Application-specific error codes
	ConfigurationError = -32001 // Configuration validation failed
	UpstreamError      = -32002 // Upstream API returned a non-success status
	NetworkError       = -32003 // Network connectivity issue
	MalformedResponse  = -32004 // Upstream response body could not be decoded
)
