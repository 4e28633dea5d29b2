package types

import "github.com/google/uuid"

// BudgetLevel is the price tier a POI (or a trip) is classified under.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// TravelStyle is the pace/company profile of a trip. A POI row with a NULL
// travel_style matches any style.
type TravelStyle string

const (
	StyleRelaxed        TravelStyle = "relaxed"
	StyleAdventurous    TravelStyle = "adventurous"
	StyleFamilyFriendly TravelStyle = "family-friendly"
)

func (t TravelStyle) Valid() bool {
	switch t {
	case StyleRelaxed, StyleAdventurous, StyleFamilyFriendly:
		return true
	}
	return false
}

// PointOfInterest is an immutable snapshot of a curated attraction row,
// recreated on every lookup. The JSON keys match what the chat frontend and
// the itinerary renderer expect.
type PointOfInterest struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
}

// POIFilter carries the preference set a lookup matches against.
type POIFilter struct {
	Budget      BudgetLevel `json:"budget"`
	Interests   []string    `json:"interests"`
	TravelStyle TravelStyle `json:"travel_style"`
}
