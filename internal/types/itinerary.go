package types

// ItineraryEntry is one row of a generated itinerary. The optional fields
// are pointers so an absent value is distinguishable from a zero one: the
// fallback entry produced when the model's output fails to parse carries
// nil for all of them.
type ItineraryEntry struct {
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	POIName     *string  `json:"poi_name"`
	Latitude    *float64 `json:"lat"`
	Longitude   *float64 `json:"lon"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// GenerateItineraryRequest is the payload of the destination-driven
// variant: the caller supplies every preference up front instead of walking
// the conversation stages.
type GenerateItineraryRequest struct {
	Budget      BudgetLevel `json:"budget"`
	Interests   []string    `json:"interests"`
	TravelStyle TravelStyle `json:"travel_style"`
	Days        int         `json:"days"`
	Destination string      `json:"destination"`
}

// GenerateItineraryResponse wraps the generated entries.
type GenerateItineraryResponse struct {
	Destination string           `json:"destination"`
	Days        int              `json:"days"`
	Itinerary   []ItineraryEntry `json:"itinerary"`
}
