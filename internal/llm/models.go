// internal/llm/models.go
package llm

import "errors"

var errEmptyCompletion = errors.New("completion returned no choices")

// IntentFlags mirrors the detect_intents JSON response.
type IntentFlags struct {
	Restaurant   bool `json:"restaurant"`
	RoomService  bool `json:"room_service"`
	Receptionist bool `json:"receptionist"`
}

// OrderExtraction mirrors the extract_order JSON response. Quantity is left
// untyped: models return numbers, digit strings, or number words, and the
// restaurant agent coerces whatever arrives.
type OrderExtraction struct {
	Items        []ExtractedItem `json:"items"`
	SpecialNotes string          `json:"special_notes,omitempty"`
}

type ExtractedItem struct {
	Name     string      `json:"name"`
	Quantity interface{} `json:"quantity"`
}

// RoomServiceExtraction mirrors the extract_room_service JSON response.
// RequestType is untyped because models have been observed returning a
// string, a list, or a nested object; the room service agent decodes the
// union.
type RoomServiceExtraction struct {
	RequestType interface{} `json:"request_type"`
	Quantity    interface{} `json:"quantity,omitempty"`
}

// HealthStatus is the gateway health snapshot.
type HealthStatus struct {
	Available     bool   `json:"available"`
	Model         string `json:"model"`
	LastError     string `json:"last_error,omitempty"`
	LastRequestID string `json:"last_request_id,omitempty"`
}
