// Package openaigw adapts an OpenAI-compatible chat-completion endpoint
// to the usecase.ChatModel contract. Any provider speaking the OpenAI
// wire protocol works; the base URL is configurable.
package openaigw

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

// Config holds the connection settings for the model provider.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client is the model gateway. It sends exactly one completion request
// per Converse call and owns the translation of provider failures to
// usecase.ErrUpstream; retrying is the caller's decision, not ours.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

// New creates a new gateway client.
func New(cfg Config, logger *slog.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: temperature,
		logger:      logger.With("component", "openai_gateway"),
	}
}

// Converse sends the conversation and tool schema to the provider and
// returns the model's turn: free text, or one or more tool calls.
func (c *Client) Converse(ctx context.Context, messages []domain.ChatMessage, tools []domain.Tool) (domain.ModelTurn, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toChatMessages(messages),
		Temperature: c.temperature,
	}
	if len(tools) > 0 {
		req.Tools = toTools(tools)
		req.ToolChoice = "auto"
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("Chat completion failed", slog.String("model", c.model), slog.Any("error", err))
		return domain.ModelTurn{}, fmt.Errorf("%w: %v", usecase.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return domain.ModelTurn{}, fmt.Errorf("%w: response contained no choices", usecase.ErrUpstream)
	}

	turn := parseTurn(resp.Choices[0].Message, c.logger)
	c.logger.Debug("Model turn received", slog.Int("tool_calls", len(turn.ToolCalls)))
	return turn, nil
}

func toChatMessages(messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case domain.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case domain.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func toTools(tools []domain.Tool) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			},
		})
	}
	return out
}

// parseTurn extracts tool calls or assistant text from the response
// message. Tool argument payloads arrive as JSON-encoded strings and
// are untrusted; an unparseable payload degrades to empty arguments so
// the executor can reject the call field by field.
func parseTurn(msg openai.ChatCompletionMessage, logger *slog.Logger) domain.ModelTurn {
	if len(msg.ToolCalls) == 0 {
		return domain.ModelTurn{Text: msg.Content}
	}

	calls := make([]domain.ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		args := map[string]interface{}{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				logger.Warn("Unparseable tool arguments", slog.String("tool_name", tc.Function.Name), slog.Any("error", err))
				args = map[string]interface{}{}
			}
		}
		calls = append(calls, domain.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return domain.ModelTurn{ToolCalls: calls}
}
