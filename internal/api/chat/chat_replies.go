package chat

import (
	"fmt"
	"strings"

	"github.com/Msrrhw/JalanJalan-ai/internal/types"
)

// Reply strings carry the same preference-button markup the original chat
// frontend renders; the data-type/data-value attributes drive the structured
// selection protocol.

const budgetReply = `Great! Let's plan your weekend trip 🗺️<br>
<b>Select your budget:</b><br>
<button class='preference-btn' data-type='budget' data-value='low'>Low</button>
<button class='preference-btn' data-type='budget' data-value='medium'>Medium</button>
<button class='preference-btn' data-type='budget' data-value='high'>High</button>`

func travelStyleReply(budget types.BudgetLevel) string {
	return fmt.Sprintf(`Got it! Budget: <b>%s</b><br>
Select your travel style:<br>
<button class='preference-btn' data-type='travel_style' data-value='relaxed'>Relaxed</button>
<button class='preference-btn' data-type='travel_style' data-value='adventurous'>Adventurous</button>
<button class='preference-btn' data-type='travel_style' data-value='family-friendly'>Family-friendly</button>`, budget)
}

const interestsReply = `Great! Now select your interests:<br>
<button class='preference-btn' data-type='interest' data-value='alam'>Alam</button>
<button class='preference-btn' data-type='interest' data-value='kuliner'>Kuliner</button>
<button class='preference-btn' data-type='interest' data-value='sejarah'>Sejarah</button>
<button class='preference-btn' data-type='interest' data-value='belanja'>Belanja</button>
<button class='preference-btn' data-type='interest' data-value='santai'>Santai</button><br>
<button class='preference-btn' data-type='confirm_interests' data-value='done'>Done</button>`

func interestAddedReply(tag string) string {
	return fmt.Sprintf("Added interest: <b>%s</b>", tag)
}

func poiSuggestionsReply(pois []types.PointOfInterest) string {
	var b strings.Builder
	if len(pois) == 0 {
		b.WriteString("I couldn't find curated suggestions for that combination, but I can still plan something great.<br>")
	} else {
		b.WriteString("<b>Here are suggested POIs for your trip:</b><br>")
		for _, p := range pois {
			fmt.Fprintf(&b, "- %s (%s): %s<br>", p.Name, p.Category, p.Description)
		}
	}
	b.WriteString("<br><button class='preference-btn' data-type='generate_itinerary' data-value='yes'>Confirm &amp; Generate Hourly Itinerary</button>")
	return b.String()
}

const (
	itineraryReadyReply    = "✅ Hour-by-hour itinerary generated!"
	itineraryDegradedReply = "✅ Itinerary generated, but could not parse as JSON. Showing as text."
	apologyReply           = "⚠️ Sorry, something went wrong on our side. Please try that again."
)

func unknownSelectionReply(tag types.PreferenceType) string {
	return fmt.Sprintf("I didn't recognize the selection type %q. Please use the buttons above.", tag)
}

func invalidValueReply(tag types.PreferenceType, value string) string {
	return fmt.Sprintf("%q is not a valid %s choice. Please use the buttons above.", value, tag)
}
