package ai

// IntentResult captures the structured output from the AI model.
type IntentResult struct {
	// Intent is one of the labels offered in the prompt.
	Intent string `json:"intent"`

	// Reason is a short free-text explanation; informational only.
	Reason string `json:"reason,omitempty"`

	// Parameters holds the booking details the model recognised.
	Parameters RequestParameters `json:"parameters"`
}

// RequestParameters mirrors the reservation fields. Nullable because most
// messages only carry some of them.
type RequestParameters struct {
	RestaurantName *string `json:"restaurant_name"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	PartySize      *int    `json:"party_size"`
	Cuisine        *string `json:"cuisine"`
	Location       *string `json:"location"`
}
