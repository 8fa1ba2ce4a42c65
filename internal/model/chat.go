package model

import "errors"

// ErrEmptyInput is returned when a chat message is blank
var ErrEmptyInput = errors.New("message is empty")

// Route names the branch of the response chain that produced a reply
type Route string

const (
	RouteClarify        Route = "clarify"
	RouteIntent         Route = "intent"
	RouteSmallTalk      Route = "small_talk"
	RouteProductInquiry Route = "product_inquiry"
	RouteCare           Route = "care"
	RouteDelivery       Route = "delivery"
	RouteCatalog        Route = "catalog"
)

// Reply is a composed response together with how it was produced
type Reply struct {
	Text       string              `json:"response"`
	Route      Route               `json:"route"`
	IntentID   string              `json:"intent,omitempty"`
	Attributes ExtractedAttributes `json:"attributes"`
	Products   []Product           `json:"products,omitempty"`
	Generated  bool                `json:"generated"`
}

// ChatRequest represents one user turn
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse represents the reply to one user turn
type ChatResponse struct {
	Response   string              `json:"response"`
	SessionID  string              `json:"session_id"`
	Route      Route               `json:"route"`
	Intent     string              `json:"intent,omitempty"`
	Attributes ExtractedAttributes `json:"attributes"`
	Products   []Product           `json:"products,omitempty"`
	Took       int64               `json:"took_ms"`
}

// ResetResponse represents the result of clearing a session's context
type ResetResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Message   string `json:"message,omitempty"`
}
