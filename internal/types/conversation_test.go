package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreferenceSelection(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   PreferenceSelection
	}{
		{
			name:   "valid budget selection",
			input:  `{"preference_type":"budget","value":"low"}`,
			wantOK: true,
			want:   PreferenceSelection{PreferenceType: PreferenceBudget, Value: "low"},
		},
		{
			name:   "unknown tag still parses",
			input:  `{"preference_type":"favourite_color","value":"blue"}`,
			wantOK: true,
			want:   PreferenceSelection{PreferenceType: "favourite_color", Value: "blue"},
		},
		{
			name:   "whitespace tolerated",
			input:  "   {\"preference_type\":\"interest\",\"value\":\"alam\"}  ",
			wantOK: true,
			want:   PreferenceSelection{PreferenceType: PreferenceInterest, Value: "alam"},
		},
		{name: "free text", input: "I want to create a trip", wantOK: false},
		{name: "json without tag", input: `{"value":"low"}`, wantOK: false},
		{name: "malformed json", input: `{"preference_type":`, wantOK: false},
		{name: "json array", input: `["budget","low"]`, wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok := ParsePreferenceSelection(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, sel)
			}
		})
	}
}

func TestPreferenceTypeValid(t *testing.T) {
	for _, p := range []PreferenceType{
		PreferenceBudget, PreferenceTravelStyle, PreferenceInterest,
		PreferenceConfirmInterests, PreferenceGenerateItinerary,
	} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, PreferenceType("favourite_color").Valid())
	assert.False(t, PreferenceType("").Valid())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, BudgetLow.Valid())
	assert.True(t, BudgetMedium.Valid())
	assert.True(t, BudgetHigh.Valid())
	assert.False(t, BudgetLevel("lavish").Valid())

	assert.True(t, StyleRelaxed.Valid())
	assert.True(t, StyleAdventurous.Valid())
	assert.True(t, StyleFamilyFriendly.Valid())
	assert.False(t, TravelStyle("speedrun").Valid())
}

func TestHasInterest(t *testing.T) {
	prefs := TripPreferences{Interests: []string{"alam", "kuliner"}}
	require.True(t, prefs.HasInterest("alam"))
	require.False(t, prefs.HasInterest("belanja"))
}
