package itinerary

import (
	"fmt"
	"strings"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// generationPrompt builds the request for the destination-driven flow: the
// caller's preferences plus the full curated dataset, serialized one POI per
// line so the listing is unambiguous.
func generationPrompt(req types.GenerateItineraryRequest, pois []types.PointOfInterest) string {
	var poiList strings.Builder
	for _, p := range pois {
		fmt.Fprintf(&poiList, "- %s (%s): %s [lat %.4f, lon %.4f]\n",
			p.Name, p.Category, p.Description, p.Latitude, p.Longitude)
	}
	if len(pois) == 0 {
		poiList.WriteString("(no curated dataset available; pick well-known spots that fit the preferences)\n")
	}

	return fmt.Sprintf(`You are JalanJalan.AI, a travel assistant.
Plan a %d-day trip to %s.
User preferences: Budget %s, Travel style %s, Interests: %s.
Curated places you may draw from:
%s
Generate an hour-by-hour itinerary covering every day.
Return the response STRICTLY as a JSON array where each element has the fields:
"time", "title", "description", "poi_name", "lat", "lon".
Use null for poi_name, lat and lon when an activity is not tied to a listed place.
Do not wrap the JSON in markdown fences or add any other text.`,
		req.Days, req.Destination, req.Budget, req.TravelStyle,
		strings.Join(req.Interests, ", "), poiList.String())
}
