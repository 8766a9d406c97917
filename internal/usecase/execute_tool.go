package usecase

import (
	"context"
	"log/slog"

	"github.com/goodfoods/goodfoods/internal/domain"
)

// ToolExecutor dispatches model-requested tool calls against the
// registry. Every branch yields a ToolResult; a failing tool never
// aborts the turn.
type ToolExecutor struct {
	registry *Registry
	logger   *slog.Logger
}

// NewToolExecutor creates a new ToolExecutor.
func NewToolExecutor(registry *Registry, logger *slog.Logger) *ToolExecutor {
	return &ToolExecutor{
		registry: registry,
		logger:   logger.With("usecase", "ExecuteTool"),
	}
}

// Execute runs a single tool call. Unknown names produce an
// unknown_tool result rather than failing the whole turn.
func (e *ToolExecutor) Execute(ctx context.Context, sessionID string, call domain.ToolCall) domain.ToolResult {
	log := e.logger.With(slog.String("tool_name", call.Name), slog.String("session_id", sessionID))

	tool, ok := e.registry.Lookup(call.Name)
	if !ok {
		log.Warn("Model requested unknown tool")
		return domain.ToolResult{
			Tool:    call.Name,
			Err:     domain.ToolErrorUnknownTool,
			Message: "I wasn't able to do that. Could you rephrase your request?",
		}
	}

	log.Debug("Executing tool", slog.Any("arguments", call.Arguments))
	result := tool.Execute(ctx, sessionID, Arguments(call.Arguments))
	if result.OK() {
		log.Info("Tool executed", slog.Int("venues", len(result.Venues)))
	} else {
		log.Warn("Tool reported an error", slog.String("kind", string(result.Err)))
	}
	return result
}
