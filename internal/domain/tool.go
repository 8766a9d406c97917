package domain

// Tool represents a callable function offered to the language model.
// The full ordered set is sent with every chat completion so the model
// sees a consistent schema for the lifetime of the process.
type Tool struct {
	// Name MUST be unique within the registry.
	Name string `json:"name"`

	// Description provides a natural language explanation of what the tool does.
	// This is crucial for the LLM to understand when to use the tool.
	Description string `json:"description"`

	// InputSchema defines the structure of the data the tool expects.
	// Uses JSON Schema format.
	InputSchema JSONSchemaProps `json:"input_schema"`
}

// JSONSchemaProps represents the properties of a JSON schema,
// used for the parameter contracts of tools.
// This is a simplified version; a more complete implementation might import
// a dedicated JSON schema library or use map[string]interface{}.
type JSONSchemaProps struct {
	Type        string                     `json:"type"`                  // e.g., "object", "string", "number", "integer", "boolean", "array"
	Description string                     `json:"description,omitempty"` // Natural-language hint for the model
	Properties  map[string]JSONSchemaProps `json:"properties,omitempty"`  // For type "object"
	Required    []string                   `json:"required,omitempty"`    // For type "object"
	Items       *JSONSchemaProps           `json:"items,omitempty"`       // For type "array"
	Format      string                     `json:"format,omitempty"`      // e.g., "date-time", "email"
	Enum        []interface{}              `json:"enum,omitempty"`        // Possible values
}

// ToolCall is a single tool invocation requested by the model.
// Arguments come off the wire as a JSON-encoded string and are parsed
// before reaching this type; they are still untrusted input (missing or
// extra fields are possible).
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ModelTurn is the outcome of one chat completion: either free text or
// a list of requested tool calls. Zero, one, or several calls may be
// present in a single turn.
type ModelTurn struct {
	Text      string
	ToolCalls []ToolCall
}

// Chat message roles, mirroring the chat-completion wire contract.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of conversation sent to the model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
