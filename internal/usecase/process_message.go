package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/goodfoods/goodfoods/internal/domain"
)

var tracer = otel.Tracer("github.com/goodfoods/goodfoods/internal/usecase")

// ProcessMessageUseCase is the orchestration loop for one user message:
// build the conversation, query the model, execute any requested tools,
// compose the final answer. Each call is an independent unit of work;
// conversation history is an explicit input, never hidden state.
type ProcessMessageUseCase struct {
	model    ChatModel
	registry *Registry
	executor *ToolExecutor
	logger   *slog.Logger
}

// NewProcessMessageUseCase creates a new ProcessMessageUseCase. The
// model client is injected here so tests can substitute a double
// without network access.
func NewProcessMessageUseCase(model ChatModel, registry *Registry, executor *ToolExecutor, logger *slog.Logger) *ProcessMessageUseCase {
	return &ProcessMessageUseCase{
		model:    model,
		registry: registry,
		executor: executor,
		logger:   logger.With("usecase", "ProcessMessage"),
	}
}

// Execute processes one user message and returns the composed response.
// history holds prior turns supplied by the caller (oldest first); it
// lets the model resolve references like "book the second one" without
// the orchestrator keeping state between calls.
//
// Upstream model failures are returned as errors (wrapping ErrUpstream)
// and are not retried; tool-level failures never escape as errors.
func (uc *ProcessMessageUseCase) Execute(ctx context.Context, sessionID, message string, history []domain.ChatMessage) (domain.AgentResponse, error) {
	ctx, span := tracer.Start(ctx, "agent.process_message", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("history.turns", len(history)),
	))
	defer span.End()

	log := uc.logger.With(slog.String("session_id", sessionID))
	log.Info("Processing message", slog.Int("history_turns", len(history)))

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: message})

	turn, err := uc.model.Converse(ctx, messages, uc.registry.Specs())
	if err != nil {
		log.Error("Model call failed", slog.Any("error", err))
		return domain.AgentResponse{}, fmt.Errorf("model turn: %w", err)
	}
	span.SetAttributes(attribute.Int("tool.calls", len(turn.ToolCalls)))

	// The model may legitimately request several tools in one turn;
	// all of them run before the reply is composed.
	results := make([]domain.ToolResult, 0, len(turn.ToolCalls))
	for _, call := range turn.ToolCalls {
		results = append(results, uc.executor.Execute(ctx, sessionID, call))
	}

	response := Compose(turn, results)
	log.Info("Message processed", slog.String("kind", response.Kind), slog.Int("tools_executed", len(results)))
	return response, nil
}
