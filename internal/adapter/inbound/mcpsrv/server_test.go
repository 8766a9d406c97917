package mcpsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodfoods/goodfoods/internal/domain"
)

func TestToMCPTool(t *testing.T) {
	spec := domain.Tool{
		Name:        "search_venues",
		Description: "Search for restaurants",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"cuisine": {Type: "string", Description: "Type of cuisine"},
				"city":    {Type: "string"},
			},
			Required: []string{"cuisine"},
		},
	}

	got := toMCPTool(spec)

	assert.Equal(t, "search_venues", got.Name)
	assert.Equal(t, "Search for restaurants", got.Description)
	assert.Equal(t, "object", got.InputSchema.Type)
	assert.Equal(t, []string{"cuisine"}, got.InputSchema.Required)

	require.Contains(t, got.InputSchema.Properties, "cuisine")
	prop, ok := got.InputSchema.Properties["cuisine"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", prop["type"])
	assert.Equal(t, "Type of cuisine", prop["description"])
}

func TestToolPayload(t *testing.T) {
	available := true

	tests := []struct {
		name    string
		result  domain.ToolResult
		wantKey string
	}{
		{name: "venue list", result: domain.ToolResult{Venues: []domain.VenueSummary{{ID: "ven_001"}}}, wantKey: "venues"},
		{name: "single venue", result: domain.ToolResult{Venue: &domain.Venue{ID: "ven_001"}}, wantKey: "venue"},
		{name: "availability", result: domain.ToolResult{Available: &available}, wantKey: "available"},
		{name: "reservation", result: domain.ToolResult{Reservation: &domain.Reservation{ID: "res_1"}}, wantKey: "reservation"},
		{name: "message only", result: domain.ToolResult{Message: "Done!"}, wantKey: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := toolPayload(tt.result).(map[string]interface{})
			require.True(t, ok)
			assert.Contains(t, payload, tt.wantKey)
		})
	}
}
