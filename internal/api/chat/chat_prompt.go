package chat

import (
	"fmt"
	"strings"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

const systemPrompt = `You are JalanJalan.AI, a friendly travel assistant.
Guide the user step-by-step to create a weekend trip.
Always respond conversationally and provide buttons for budget, travel style, and interests.`

// freeFormPrompt frames an off-script message with the system instructions
// and the full dialogue history so the model keeps conversational context.
func freeFormPrompt(history []types.ConversationTurn, message string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nConversation history:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	fmt.Fprintf(&b, "user: %s", message)
	return b.String()
}

// itineraryPrompt composes the generation request from the accumulated
// preferences and the candidate POI set. POIs are serialized one per line so
// the model receives an unambiguous listing.
func itineraryPrompt(prefs types.TripPreferences, pois []types.PointOfInterest) string {
	var poiList strings.Builder
	for _, p := range pois {
		fmt.Fprintf(&poiList, "- %s (%s): %s [lat %.4f, lon %.4f]\n",
			p.Name, p.Category, p.Description, p.Latitude, p.Longitude)
	}
	if len(pois) == 0 {
		poiList.WriteString("(no curated suggestions matched; pick well-known spots that fit the preferences)\n")
	}

	return fmt.Sprintf(`You are JalanJalan.AI, a travel assistant planning a weekend trip.
User preferences: Budget %s, Travel style %s, Interests: %s.
Suggested POIs:
%s
Generate a weekend itinerary, hour-by-hour.
Return the response STRICTLY as a JSON array where each element has the fields:
"time", "title", "description", "poi_name", "lat", "lon".
Use null for poi_name, lat and lon when an activity is not tied to a suggested POI.
Do not wrap the JSON in markdown fences or add any other text.`,
		prefs.Budget, prefs.TravelStyle, strings.Join(prefs.Interests, ", "), poiList.String())
}
