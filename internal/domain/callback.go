package domain

import (
	"context"
	"errors"
)

// ErrCapabilityNotSupported is returned by a ClientCaller when the connected
// client did not advertise the capability needed for an outbound request.
var ErrCapabilityNotSupported = errors.New("client does not support this capability")

// ClientCaller issues nested requests from the server back to the connected
// client during tool execution. Both calls block until the client answers,
// the round-trip timeout elapses, or ctx is cancelled.
type ClientCaller interface {
	// CreateMessage asks the client to generate text via its language model.
	CreateMessage(ctx context.Context, req *SamplingRequest) (*SamplingResult, error)

	// Elicit asks the client to collect structured input from the user.
	Elicit(ctx context.Context, req *ElicitRequest) (*ElicitResult, error)
}

// SamplingMessage is one role-tagged message in a sampling conversation.
type SamplingMessage struct {
	Role    string          `json:"role"`
	Content SamplingContent `json:"content"`
}

// SamplingContent is the content of a sampling message or result.
type SamplingContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// SamplingRequest is the payload of a sampling/createMessage request.
type SamplingRequest struct {
	Messages     []SamplingMessage `json:"messages"`
	SystemPrompt string            `json:"systemPrompt,omitempty"`
	MaxTokens    int               `json:"maxTokens"`
}

// SamplingResult is the client's answer to a sampling request.
type SamplingResult struct {
	Role       string          `json:"role"`
	Content    SamplingContent `json:"content"`
	Model      string          `json:"model,omitempty"`
	StopReason string          `json:"stopReason,omitempty"`
}

// ElicitAction is the closed set of dispositions a client can return for an
// elicitation request. User non-cooperation (decline, cancel) is a valid
// outcome, not an error.
type ElicitAction string

const (
	ElicitAccept  ElicitAction = "accept"
	ElicitDecline ElicitAction = "decline"
	ElicitCancel  ElicitAction = "cancel"
)

// ParseElicitAction maps a raw action string onto the closed set. Anything
// unrecognized is treated as a cancellation.
func ParseElicitAction(s string) ElicitAction {
	switch ElicitAction(s) {
	case ElicitAccept:
		return ElicitAccept
	case ElicitDecline:
		return ElicitDecline
	default:
		return ElicitCancel
	}
}

// ElicitRequest is the payload of an elicitation/create request: a
// human-readable message plus a flat JSON schema describing the fields the
// user should provide.
type ElicitRequest struct {
	Message         string     `json:"message"`
	RequestedSchema JSONSchema `json:"requestedSchema"`
}

// ElicitResult is the client's answer to an elicitation request. Content is
// only present when Action is accept.
type ElicitResult struct {
	Action  ElicitAction           `json:"action"`
	Content map[string]interface{} `json:"content,omitempty"`
}
