package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Stage is one discrete step in the fixed preference-collection dialogue.
// Stages only move forward; the only way back is an explicit reset to
// StageIdle when a completed conversation is restarted.
type Stage string

const (
	StageIdle                 Stage = "idle"
	StageAwaitingBudget       Stage = "awaiting_budget"
	StageAwaitingTravelStyle  Stage = "awaiting_travel_style"
	StageAwaitingInterests    Stage = "awaiting_interests"
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
	StageCompleted            Stage = "completed"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ConversationTurn is one entry of the append-only dialogue history. The
// history is only used as context for free-form fallback replies.
type ConversationTurn struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// TripPreferences accumulates the structured selections collected so far.
// Interests carries no duplicate tags.
type TripPreferences struct {
	Budget      BudgetLevel `json:"budget"`
	TravelStyle TravelStyle `json:"travel_style"`
	Interests   []string    `json:"interests"`
}

// HasInterest reports whether tag was already selected.
func (p *TripPreferences) HasInterest(tag string) bool {
	for _, t := range p.Interests {
		if t == tag {
			return true
		}
	}
	return false
}

// ConversationState is the per-user dialogue record. It is owned by the
// conversation store and must only be mutated while holding the session lock
// for its user identifier.
type ConversationState struct {
	History       []ConversationTurn `json:"history"`
	Stage         Stage              `json:"stage"`
	Preferences   TripPreferences    `json:"preferences"`
	CandidatePOIs []PointOfInterest  `json:"candidate_pois"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// PreferenceType tags a structured selection sent by the chat frontend.
type PreferenceType string

const (
	PreferenceBudget            PreferenceType = "budget"
	PreferenceTravelStyle       PreferenceType = "travel_style"
	PreferenceInterest          PreferenceType = "interest"
	PreferenceConfirmInterests  PreferenceType = "confirm_interests"
	PreferenceGenerateItinerary PreferenceType = "generate_itinerary"
)

func (p PreferenceType) Valid() bool {
	switch p {
	case PreferenceBudget, PreferenceTravelStyle, PreferenceInterest,
		PreferenceConfirmInterests, PreferenceGenerateItinerary:
		return true
	}
	return false
}

// PreferenceSelection is the tagged payload behind the preference buttons:
// {"preference_type": "...", "value": "..."}.
type PreferenceSelection struct {
	PreferenceType PreferenceType `json:"preference_type"`
	Value          string         `json:"value"`
}

// ParsePreferenceSelection decodes a chat message as a structured selection.
// A message that is not a JSON object, or that carries no preference_type
// tag, is free text and yields ok=false. A well-formed selection with an
// unrecognized tag still yields ok=true so the caller can reject it
// deterministically instead of silently treating it as free text.
func ParsePreferenceSelection(message string) (PreferenceSelection, bool) {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, "{") {
		return PreferenceSelection{}, false
	}
	var sel PreferenceSelection
	if err := json.Unmarshal([]byte(trimmed), &sel); err != nil {
		return PreferenceSelection{}, false
	}
	if sel.PreferenceType == "" {
		return PreferenceSelection{}, false
	}
	return sel, true
}

// ChatRequest is the payload of POST /chat.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse is the reply payload. POIs is set after interests are
// confirmed; Itinerary is set once generation succeeds.
type ChatResponse struct {
	Reply     string            `json:"reply"`
	POIs      []PointOfInterest `json:"pois,omitempty"`
	Itinerary []ItineraryEntry  `json:"itinerary,omitempty"`
}
