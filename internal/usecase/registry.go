package usecase

import (
	"context"
	"fmt"

	"github.com/goodfoods/goodfoods/internal/domain"
)

// Tool is one callable action: a schema for the model plus the code
// that runs when the model asks for it. Implementations must return a
// ToolResult for every input, never an error; failures are carried in
// the result so a bad call degrades the reply instead of killing the turn.
type Tool interface {
	Spec() domain.Tool
	Execute(ctx context.Context, sessionID string, args Arguments) domain.ToolResult
}

// Registry is the fixed, ordered set of tools offered to the model.
// It is assembled once at startup and read-only afterwards, so the
// model sees a consistent schema for the process lifetime.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
	specs  []domain.Tool
}

// NewRegistry builds a registry from the given tools, preserving order.
// Tool names must be unique.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools:  tools,
		byName: make(map[string]Tool, len(tools)),
		specs:  make([]domain.Tool, 0, len(tools)),
	}
	for _, t := range tools {
		spec := t.Spec()
		if spec.Name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, dup := r.byName[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", spec.Name)
		}
		r.byName[spec.Name] = t
		r.specs = append(r.specs, spec)
	}
	return r, nil
}

// Specs returns the ordered tool schemas sent with every model call.
func (r *Registry) Specs() []domain.Tool {
	return r.specs
}

// Lookup finds a tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}
