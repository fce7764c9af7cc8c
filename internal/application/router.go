package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"insight-mcp-server/internal/domain"
)

// ToolRouter owns the tool catalog and dispatches tool calls to the handler
// that registered each name. Dispatch never returns an error to the protocol
// layer: every failure, including a handler panic, is converted into an
// error-flagged tool response so the connection stays up.
type ToolRouter struct {
	handlers map[string]domain.ToolHandler
	defs     []domain.ToolDefinition
	logger   *zap.Logger
}

// NewToolRouter registers each handler's tools. Registration order fixes the
// catalog order returned by ListAllTools. A duplicate tool name is a wiring
// bug and panics at startup.
func NewToolRouter(logger *zap.Logger, handlers ...domain.ToolHandler) *ToolRouter {
	r := &ToolRouter{
		handlers: make(map[string]domain.ToolHandler),
		logger:   logger,
	}

	for _, h := range handlers {
		for _, def := range h.ListTools() {
			if _, exists := r.handlers[def.Name]; exists {
				panic(fmt.Sprintf("duplicate tool registration: %s", def.Name))
			}
			r.handlers[def.Name] = h
			r.defs = append(r.defs, def)
			logger.Debug("registered tool",
				zap.String("tool", def.Name),
				zap.String("handler", h.Name()))
		}
	}

	return r
}

// ListAllTools returns the full catalog in registration order.
func (r *ToolRouter) ListAllTools() []domain.ToolDefinition {
	return r.defs
}

// definition returns the registered definition for a tool name.
func (r *ToolRouter) definition(name string) *domain.ToolDefinition {
	for i := range r.defs {
		if r.defs[i].Name == name {
			return &r.defs[i]
		}
	}
	return nil
}

// Dispatch resolves a tool call by exact name, fills schema defaults,
// validates arguments, and invokes the owning handler.
func (r *ToolRouter) Dispatch(ctx context.Context, req *domain.ToolRequest) *domain.ToolResponse {
	handler, ok := r.handlers[req.Name]
	if !ok {
		r.logger.Warn("tool not found", zap.String("tool", req.Name))
		return domain.ErrorResponse(fmt.Sprintf("unknown tool: %s", req.Name))
	}

	def := r.definition(req.Name)

	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}
	ApplyDefaults(def.InputSchema, req.Arguments)

	if err := ValidateArguments(*def, req.Arguments); err != nil {
		r.logger.Warn("tool arguments rejected",
			zap.String("tool", req.Name),
			zap.Error(err))
		return domain.ErrorResponse(fmt.Sprintf("validation error: %s", err.Error()))
	}

	resp, err := r.invoke(ctx, handler, req)
	if err != nil {
		r.logger.Error("tool call failed",
			zap.String("tool", req.Name),
			zap.Error(err))
		return domain.ErrorResponse(err.Error())
	}

	if def.OutputSchema == nil {
		resp.StructuredContent = nil
	}

	return resp
}

// invoke runs the handler with panic recovery. A panicking tool must not
// take down the message loop.
func (r *ToolRouter) invoke(ctx context.Context, handler domain.ToolHandler, req *domain.ToolRequest) (resp *domain.ToolResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool handler panicked",
				zap.String("tool", req.Name),
				zap.Any("panic", rec))
			resp = nil
			err = fmt.Errorf("internal error in %s: %v", req.Name, rec)
		}
	}()

	return handler.Handle(ctx, req)
}
