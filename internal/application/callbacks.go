package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"insight-mcp-server/internal/domain"
)

// ClientBridge sends server-initiated requests over the shared transport and
// correlates the client's responses back to the waiting caller. It is the
// only component that issues outbound requests, so it owns the id space for
// them; ids are prefixed with "s" to keep them disjoint from anything the
// client generates.
type ClientBridge struct {
	transport domain.Transport
	logger    *zap.Logger
	timeout   time.Duration

	nextID atomic.Int64

	mu      sync.Mutex
	pending map[string]chan *domain.Message

	capMu          sync.RWMutex
	supportsSample bool
	supportsElicit bool
}

// NewClientBridge creates a bridge over the given transport. The timeout
// bounds each callback round trip; it does not apply to ordinary inbound
// request handling.
func NewClientBridge(transport domain.Transport, timeout time.Duration, logger *zap.Logger) *ClientBridge {
	return &ClientBridge{
		transport: transport,
		logger:    logger,
		timeout:   timeout,
		pending:   make(map[string]chan *domain.Message),
	}
}

// SetClientCapabilities records what the client advertised during
// initialization. Callback methods short-circuit with
// ErrCapabilityNotSupported when the matching capability is absent.
func (b *ClientBridge) SetClientCapabilities(caps map[string]interface{}) {
	b.capMu.Lock()
	defer b.capMu.Unlock()
	_, b.supportsSample = caps["sampling"]
	_, b.supportsElicit = caps["elicitation"]
}

// HandleResponse routes an inbound response message to the caller waiting on
// its id. It reports whether the id matched a pending callback; unmatched
// responses are the server's to log and drop.
func (b *ClientBridge) HandleResponse(msg *domain.Message) bool {
	id := fmt.Sprintf("%v", msg.ID)

	b.mu.Lock()
	ch, ok := b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	b.mu.Unlock()

	if !ok {
		return false
	}

	ch <- msg
	return true
}

// call performs one outbound request round trip: register a pending slot,
// send, then wait for the correlated response, the timeout, or context
// cancellation, whichever comes first.
func (b *ClientBridge) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	id := fmt.Sprintf("s%d", b.nextID.Add(1))

	ch := make(chan *domain.Message, 1)
	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()

	cleanup := func() {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
	}

	req, err := domain.NewRequest(id, method, params)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}

	b.logger.Debug("sending client callback", zap.String("method", method), zap.String("id", id))

	if err := b.transport.Send(req); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case msg := <-ch:
		if msg.Error != nil {
			if msg.Error.Code == domain.MethodNotFound {
				return nil, domain.ErrCapabilityNotSupported
			}
			return nil, msg.Error
		}
		return msg.Result, nil
	case <-timer.C:
		cleanup()
		return nil, fmt.Errorf("%s request timed out after %s", method, b.timeout)
	case <-ctx.Done():
		cleanup()
		return nil, ctx.Err()
	}
}

// CreateMessage asks the client's language model to generate a completion.
func (b *ClientBridge) CreateMessage(ctx context.Context, req *domain.SamplingRequest) (*domain.SamplingResult, error) {
	b.capMu.RLock()
	supported := b.supportsSample
	b.capMu.RUnlock()
	if !supported {
		return nil, domain.ErrCapabilityNotSupported
	}

	raw, err := b.call(ctx, "sampling/createMessage", req)
	if err != nil {
		return nil, err
	}

	var result domain.SamplingResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.Error{
			Code:    domain.MalformedResponse,
			Message: fmt.Sprintf("malformed sampling response: %v", err),
		}
	}
	return &result, nil
}

// Elicit asks the client to collect structured input from its user. A
// refusal or cancellation comes back as a normal result with the matching
// action, never as an error.
func (b *ClientBridge) Elicit(ctx context.Context, req *domain.ElicitRequest) (*domain.ElicitResult, error) {
	b.capMu.RLock()
	supported := b.supportsElicit
	b.capMu.RUnlock()
	if !supported {
		return nil, domain.ErrCapabilityNotSupported
	}

	raw, err := b.call(ctx, "elicitation/create", req)
	if err != nil {
		return nil, err
	}

	var result domain.ElicitResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.Error{
			Code:    domain.MalformedResponse,
			Message: fmt.Sprintf("malformed elicitation response: %v", err),
		}
	}

	result.Action = domain.ParseElicitAction(string(result.Action))
	return &result, nil
}
