package itinerary

import (
	"encoding/json"
	"strings"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBracket := strings.Index(response, "[")
	lastBracket := strings.LastIndex(response, "]")
	if firstBracket == -1 || lastBracket <= firstBracket {
		return response
	}
	return strings.TrimSpace(response[firstBracket : lastBracket+1])
}

// parseGeneratedEntries interprets the generation output, degrading to a
// single verbatim-text entry when strict parsing fails. The bool reports
// whether the structured parse succeeded.
func parseGeneratedEntries(raw string) ([]types.ItineraryEntry, bool) {
	var entries []types.ItineraryEntry
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &entries); err == nil && len(entries) > 0 {
		return entries, true
	}
	return []types.ItineraryEntry{{Title: "Itinerary", Description: raw}}, false
}
