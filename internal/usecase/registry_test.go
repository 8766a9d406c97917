package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

type fakeTool struct {
	name   string
	result domain.ToolResult
}

func (f *fakeTool) Spec() domain.Tool {
	return domain.Tool{Name: f.name, Description: "fake", InputSchema: domain.JSONSchemaProps{Type: "object"}}
}

func (f *fakeTool) Execute(ctx context.Context, sessionID string, args usecase.Arguments) domain.ToolResult {
	return f.result
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		tools   []usecase.Tool
		wantErr bool
	}{
		{
			name:  "unique names",
			tools: []usecase.Tool{&fakeTool{name: "a"}, &fakeTool{name: "b"}},
		},
		{
			name:    "duplicate names rejected",
			tools:   []usecase.Tool{&fakeTool{name: "a"}, &fakeTool{name: "a"}},
			wantErr: true,
		},
		{
			name:    "empty name rejected",
			tools:   []usecase.Tool{&fakeTool{name: ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := usecase.NewRegistry(tt.tools...)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, reg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, reg.Specs(), len(tt.tools))
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	logger := testLogger(t)

	venues := new(MockVenueStore)
	reservations := usecase.NewReservationsUseCase(venues, new(MockReservationStore), newStubNotifier(true), logger)

	reg, err := usecase.DefaultRegistry(venues, reservations, logger)
	require.NoError(err)

	specs := reg.Specs()
	require.Len(specs, 4)

	// Order is fixed so the model sees a consistent schema.
	wantNames := []string{"search_venues", "get_venue_details", "check_availability", "create_reservation"}
	for i, spec := range specs {
		assert.Equal(wantNames[i], spec.Name)
		assert.NotEmpty(spec.Description)
		assert.Equal("object", spec.InputSchema.Type)
		// Every field referenced by the contract has a declared type.
		for name, prop := range spec.InputSchema.Properties {
			assert.NotEmptyf(prop.Type, "property %s of %s has no type", name, spec.Name)
		}
		for _, req := range spec.InputSchema.Required {
			assert.Containsf(spec.InputSchema.Properties, req, "required field %s of %s is undeclared", req, spec.Name)
		}
	}

	// Specs are stable across calls within a process lifetime.
	assert.Equal(specs, reg.Specs())
}
