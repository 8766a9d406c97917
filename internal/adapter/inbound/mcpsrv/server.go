// Package mcpsrv exposes the reservation tool registry over the Model
// Context Protocol, so external agents can call the same four tools the
// in-process assistant uses. Handlers delegate to the tool executor;
// the registry stays the single source of truth for tool schemas.
package mcpsrv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

// mcpSessionID tags reservations created through the MCP surface,
// which carries no end-user session of its own.
const mcpSessionID = "mcp"

// Server wraps an mcp-go SSE server serving the tool registry.
type Server struct {
	sse    *mcpserver.SSEServer
	logger *slog.Logger
}

// New registers every tool in the registry with a fresh MCP server.
func New(registry *usecase.Registry, executor *usecase.ToolExecutor, listenAddr string, logger *slog.Logger) *Server {
	log := logger.With("component", "mcp_server")

	srv := mcpserver.NewMCPServer("goodfoods", "1.0.0")
	for _, spec := range registry.Specs() {
		srv.AddTool(toMCPTool(spec), toolHandler(executor, spec.Name, log))
	}
	log.Info("MCP tools registered", slog.Int("count", len(registry.Specs())))

	return &Server{
		sse:    mcpserver.NewSSEServer(srv, mcpserver.WithBaseURL("http://"+listenAddr)),
		logger: log,
	}
}

// Start serves MCP over SSE on addr. Blocks until shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("MCP SSE server starting", slog.String("address", addr))
	return s.sse.Start(addr)
}

// Shutdown stops the SSE server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.sse.Shutdown(ctx)
}

// toMCPTool converts a registry schema to the MCP tool shape. The JSON
// schema round-trips through encoding/json to produce the loosely-typed
// property map mcp-go expects.
func toMCPTool(spec domain.Tool) mcp.Tool {
	props := make(map[string]interface{}, len(spec.InputSchema.Properties))
	for name, p := range spec.InputSchema.Properties {
		raw, err := json.Marshal(p)
		if err != nil {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		props[name] = m
	}
	return mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   spec.InputSchema.Required,
		},
	}
}

func toolHandler(executor *usecase.ToolExecutor, name string, logger *slog.Logger) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := executor.Execute(ctx, mcpSessionID, domain.ToolCall{
			Name:      name,
			Arguments: req.GetArguments(),
		})
		if !result.OK() {
			logger.Warn("MCP tool call failed", slog.String("tool_name", name), slog.String("kind", string(result.Err)))
			return mcp.NewToolResultError(result.Message), nil
		}

		payload, err := json.Marshal(toolPayload(result))
		if err != nil {
			return nil, fmt.Errorf("encoding tool result: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// toolPayload selects the wire shape per result kind, mirroring what
// the in-process executor hands to the composer.
func toolPayload(result domain.ToolResult) interface{} {
	switch {
	case result.Venues != nil:
		return map[string]interface{}{"venues": result.Venues}
	case result.Venue != nil:
		return map[string]interface{}{"venue": result.Venue}
	case result.Available != nil:
		return map[string]interface{}{"available": *result.Available, "message": result.Message}
	case result.Reservation != nil:
		return map[string]interface{}{"message": result.Message, "reservation": result.Reservation}
	default:
		return map[string]interface{}{"message": result.Message}
	}
}
