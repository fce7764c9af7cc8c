package application

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"insight-mcp-server/internal/domain"
)

// ProtocolVersion is the protocol revision this server speaks.
const ProtocolVersion = "2025-06-18"

// Server metadata reported during initialization.
const (
	ServerName    = "insight-mcp-server"
	ServerVersion = "1.0.0"
)

// Server orchestrates the transport, the tool router, the resource and
// prompt registries, and the client callback bridge. Each inbound request is
// handled on its own goroutine, bounded by a semaphore, so a tool awaiting a
// client callback never blocks the message loop from reading the response it
// is waiting for.
type Server struct {
	transport domain.Transport
	router    *ToolRouter
	bridge    *ClientBridge
	resources *ResourceRegistry
	prompts   *PromptRegistry
	config    *domain.Config
	logger    *zap.Logger

	sem chan struct{}
}

// NewServer creates a new server instance.
func NewServer(
	transport domain.Transport,
	router *ToolRouter,
	bridge *ClientBridge,
	resources *ResourceRegistry,
	prompts *PromptRegistry,
	config *domain.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		transport: transport,
		router:    router,
		bridge:    bridge,
		resources: resources,
		prompts:   prompts,
		config:    config,
		logger:    logger,
		sem:       make(chan struct{}, config.MaxConcurrent),
	}
}

// Start begins server operation: it starts the transport and the message
// loop.
func (s *Server) Start(ctx context.Context) error {
	if err := s.transport.Start(ctx); err != nil {
		s.logger.Error("failed to start transport",
			zap.String("transport", s.config.Transport.Type),
			zap.Error(err))
		return fmt.Errorf("failed to start transport: %w", err)
	}

	s.logger.Info("server started",
		zap.String("transport", s.config.Transport.Type),
		zap.String("mode", s.config.Mode))

	go s.processMessages(ctx)

	return nil
}

// processMessages drains the transport. Responses to the server's own
// callbacks route synchronously to the bridge; requests are dispatched on
// bounded goroutines.
func (s *Server) processMessages(ctx context.Context) {
	msgChan := s.transport.Receive()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server shutting down")
			return
		case msg, ok := <-msgChan:
			if !ok {
				return
			}

			if msg.IsResponse() {
				if !s.bridge.HandleResponse(msg) {
					s.logger.Warn("response with no pending request",
						zap.Any("id", msg.ID))
				}
				continue
			}

			// The slot is acquired inside the goroutine so a saturated
			// server keeps draining the channel; callback responses must
			// never queue behind a waiting request.
			go func(m *domain.Message) {
				select {
				case s.sem <- struct{}{}:
				case <-ctx.Done():
					return
				}
				defer func() { <-s.sem }()
				s.handleMessage(ctx, m)
			}(msg)
		}
	}
}

// handleMessage processes one inbound request or notification.
func (s *Server) handleMessage(ctx context.Context, msg *domain.Message) {
	s.logger.Debug("received message",
		zap.String("method", msg.Method),
		zap.Any("id", msg.ID))

	if msg.IsNotification() {
		s.handleNotification(msg)
		return
	}

	var result interface{}
	var rpcErr *domain.Error

	switch msg.Method {
	case "initialize":
		result, rpcErr = s.handleInitialize(msg)
	case "ping":
		result = map[string]interface{}{}
	case "tools/list":
		result = map[string]interface{}{"tools": s.router.ListAllTools()}
	case "tools/call":
		result, rpcErr = s.handleToolsCall(ctx, msg)
	case "resources/list":
		result = map[string]interface{}{"resources": s.resources.List()}
	case "resources/read":
		result, rpcErr = s.handleResourcesRead(msg)
	case "prompts/list":
		result = map[string]interface{}{"prompts": s.prompts.List()}
	case "prompts/get":
		result, rpcErr = s.handlePromptsGet(msg)
	default:
		rpcErr = &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown method: %s", msg.Method),
		}
	}

	if rpcErr != nil {
		s.sendError(msg.ID, rpcErr)
		return
	}

	s.sendResult(msg.ID, result)
}

// handleNotification handles methods that must not be answered.
func (s *Server) handleNotification(msg *domain.Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialization complete")
	default:
		s.logger.Debug("ignoring notification", zap.String("method", msg.Method))
	}
}

// initializeParams is the subset of the initialize request the server acts
// on.
type initializeParams struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ClientInfo      struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"clientInfo"`
}

// handleInitialize performs the protocol handshake and records the client's
// advertised capabilities on the callback bridge.
func (s *Server) handleInitialize(msg *domain.Message) (interface{}, *domain.Error) {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("invalid initialize params: %v", err),
			}
		}
	}

	if params.Capabilities == nil {
		params.Capabilities = map[string]interface{}{}
	}
	s.bridge.SetClientCapabilities(params.Capabilities)

	s.logger.Info("client initialized",
		zap.String("client", params.ClientInfo.Name),
		zap.String("client_version", params.ClientInfo.Version),
		zap.String("client_protocol", params.ProtocolVersion))

	return map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]interface{}{
			"tools":     map[string]interface{}{},
			"resources": map[string]interface{}{},
			"prompts":   map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
	}, nil
}

// handleToolsCall parses the call params and dispatches through the router.
// Tool failures come back as error-flagged results, not protocol errors.
func (s *Server) handleToolsCall(ctx context.Context, msg *domain.Message) (interface{}, *domain.Error) {
	var toolReq domain.ToolRequest
	if len(msg.Params) == 0 {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "params is required for tools/call",
		}
	}
	if err := json.Unmarshal(msg.Params, &toolReq); err != nil {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("invalid tools/call params: %v", err),
		}
	}
	if toolReq.Name == "" {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "tool name is required",
		}
	}

	return s.router.Dispatch(ctx, &toolReq), nil
}

// handleResourcesRead serves one resource by URI.
func (s *Server) handleResourcesRead(msg *domain.Message) (interface{}, *domain.Error) {
	var params struct {
		URI string `json:"uri"`
	}
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("invalid resources/read params: %v", err),
			}
		}
	}
	if params.URI == "" {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "uri is required for resources/read",
		}
	}

	content := s.resources.Read(params.URI)
	return map[string]interface{}{
		"contents": []ResourceContent{content},
	}, nil
}

// handlePromptsGet renders one prompt template.
func (s *Server) handlePromptsGet(msg *domain.Message) (interface{}, *domain.Error) {
	var params struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments"`
	}
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return nil, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("invalid prompts/get params: %v", err),
			}
		}
	}
	if params.Name == "" {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "name is required for prompts/get",
		}
	}

	return s.prompts.Get(params.Name, params.Arguments), nil
}

// sendResult sends a successful response for the given request id.
func (s *Server) sendResult(id interface{}, result interface{}) {
	resp, err := domain.NewResponse(id, result)
	if err != nil {
		s.logger.Error("failed to build response",
			zap.Any("id", id),
			zap.Error(err))
		s.sendError(id, &domain.Error{
			Code:    domain.InternalError,
			Message: "failed to serialize result",
		})
		return
	}

	if err := s.transport.Send(resp); err != nil {
		s.logger.Error("failed to send response",
			zap.Any("id", id),
			zap.Error(err))
	}
}

// sendError sends an error response for the given request id.
func (s *Server) sendError(id interface{}, rpcErr *domain.Error) {
	resp := domain.NewErrorResponse(id, rpcErr.Code, rpcErr.Message, rpcErr.Data)
	if err := s.transport.Send(resp); err != nil {
		s.logger.Error("failed to send error response",
			zap.Any("id", id),
			zap.Error(err))
	}
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info("closing server")
	return s.transport.Close()
}
