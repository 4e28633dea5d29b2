package chat

import (
	"encoding/json"
	"strings"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// ParseOutcome distinguishes a strictly parsed itinerary from the degraded
// fallback, so callers never have to inspect the entries to tell them apart.
type ParseOutcome int

const (
	// OutcomeStructured means the model output parsed as a full itinerary.
	OutcomeStructured ParseOutcome = iota
	// OutcomeFallback means parsing failed and the result is a single
	// entry carrying the raw model output verbatim.
	OutcomeFallback
)

// cleanJSONResponse strips markdown code fences and surrounding prose the
// model may have added around the JSON payload.
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

	// The itinerary is a JSON array; tolerate explanatory text around it.
	firstBracket := strings.Index(response, "[")
	lastBracket := strings.LastIndex(response, "]")
	if firstBracket == -1 || lastBracket <= firstBracket {
		return response
	}
	return strings.TrimSpace(response[firstBracket : lastBracket+1])
}

// parseItineraryResponse interprets the raw generation output. On parse
// failure it degrades instead of erroring: the caller gets exactly one entry
// whose description is the raw text, with all structured fields absent.
func parseItineraryResponse(raw string) ([]types.ItineraryEntry, ParseOutcome) {
	var entries []types.ItineraryEntry
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &entries); err == nil && len(entries) > 0 {
		return entries, OutcomeStructured
	}

	fallback := types.ItineraryEntry{
		Time:        "",
		Title:       "Itinerary",
		Description: raw,
	}
	return []types.ItineraryEntry{fallback}, OutcomeFallback
}
