package model

// Intent ids with dedicated behaviour
const (
	IntentInquireProduct   = "inquire_product"
	IntentCareInstructions = "care_instructions"
	IntentDeliveryInfo     = "delivery_info"
	IntentGreeting         = "greeting"
)

// Intent is a named conversational purpose with example patterns and
// candidate response templates
type Intent struct {
	ID        string   `json:"intent"`
	Patterns  []string `json:"examples"`
	Responses []string `json:"responses"`
}

// IntentMatch is the outcome of a successful intent match
type IntentMatch struct {
	IntentID    string `json:"intent"`
	Pattern     string `json:"pattern,omitempty"` // empty for the prioritized product-inquiry phase
	Template    string `json:"template"`
	Response    string `json:"response"` // template with placeholders filled
	Prioritized bool   `json:"prioritized"`
}
