package usecase

import (
	"fmt"
	"strings"

	"github.com/goodfoods/goodfoods/internal/domain"
)

// maxNamedVenues caps how many venue names the summary sentence cites.
const maxNamedVenues = 3

// Suggested follow-up replies per composition branch.
var (
	recommendationReplies = []string{"Tell me more", "Book one", "Different options"}
	actionReplies         = []string{"View my bookings", "Find another restaurant"}
	exploratoryReplies    = []string{"Show me options", "Tell me more", "Make a reservation"}
)

// Compose builds the final user-facing response from a model turn and
// the results of any executed tools. Formatting is deterministic: the
// same inputs always produce byte-identical output. Branches, in order:
//
//  1. some tool returned venues      -> templated summary + structured list
//  2. tools ran but no venues        -> first tool's message verbatim
//  3. no tool was invoked            -> the model's own text
//
// Internal identifiers never appear in Text; only the structured venue
// list carries ids, for programmatic use by the caller.
func Compose(turn domain.ModelTurn, results []domain.ToolResult) domain.AgentResponse {
	var venues []domain.VenueSummary
	for _, r := range results {
		if len(r.Venues) > 0 {
			venues = r.Venues
		}
	}

	if len(venues) > 0 {
		names := make([]string, 0, maxNamedVenues)
		for _, v := range venues {
			names = append(names, v.Name)
			if len(names) == maxNamedVenues {
				break
			}
		}
		return domain.AgentResponse{
			Kind:             domain.ResponseToolResult,
			Text:             fmt.Sprintf("I found some great options for you: %s. Would you like to know more about any of these?", strings.Join(names, ", ")),
			SuggestedReplies: recommendationReplies,
			Structured: &domain.StructuredPayload{
				Intent: "recommendation",
				Venues: venues,
			},
		}
	}

	if len(results) > 0 {
		text := results[0].Message
		if text == "" {
			text = "Done!"
		}
		return domain.AgentResponse{
			Kind:             domain.ResponseToolResult,
			Text:             text,
			SuggestedReplies: actionReplies,
			Structured:       nil,
		}
	}

	return domain.AgentResponse{
		Kind:             domain.ResponseLLMResponse,
		Text:             turn.Text,
		SuggestedReplies: exploratoryReplies,
		Structured:       nil,
	}
}
