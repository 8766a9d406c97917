package domain

// AgentResponse kinds.
const (
	ResponseToolResult  = "tool_result"
	ResponseLLMResponse = "llm_response"
)

// Tool error kinds. An empty kind means the result is a success.
// Errors are carried inside the result so a failed tool never aborts
// the turn; the composer degrades to a clarifying reply instead.
type ToolErrorKind string

const (
	ToolErrorNotFound    ToolErrorKind = "not_found"
	ToolErrorUnknownTool ToolErrorKind = "unknown_tool"
	ToolErrorBadArgument ToolErrorKind = "bad_argument"
	ToolErrorValidation  ToolErrorKind = "validation"
	ToolErrorInternal    ToolErrorKind = "internal"
)

// ToolResult is the outcome of executing one tool call. It is created
// by the executor and consumed once by the composer within the same
// request; it is never persisted.
type ToolResult struct {
	Tool        string
	Message     string
	Venues      []VenueSummary
	Venue       *Venue
	Available   *bool
	Reservation *Reservation
	Err         ToolErrorKind
}

// OK reports whether the result carries no error.
func (r ToolResult) OK() bool { return r.Err == "" }

// StructuredPayload is the machine-readable portion of a response,
// delivered alongside the human-readable text for UI rendering.
type StructuredPayload struct {
	Intent string         `json:"intent"`
	Venues []VenueSummary `json:"venues"`
}

// AgentResponse is the sole contract exposed to the calling HTTP layer.
type AgentResponse struct {
	Kind             string             `json:"type"` // 'llm_response' or 'tool_result'
	Text             string             `json:"text"`
	SuggestedReplies []string           `json:"suggested_replies"`
	Structured       *StructuredPayload `json:"structured"`
}
