// internal/models/order.go
package models

import "time"

// Statuses shared by restaurant orders and room service requests.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is an accepted lifecycle status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// OrderLine is a single priced line of a restaurant order. Quantity is always
// in [1,20] after coercion and Price comes from the menu lookup (0 for
// unrecognized names).
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderPayload is a persisted restaurant order. TotalAmount is always the
// exact sum of Price*Quantity over Items.
type OrderPayload struct {
	ID          int64       `json:"id"`
	DisplayID   string      `json:"display_id"`
	RoomNumber  string      `json:"room_number"`
	Items       []OrderLine `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RoomServicePayload is a persisted housekeeping/amenity request. RequestType
// is one of the canonical vocabulary values (see agents.NormalizeRequestType).
type RoomServicePayload struct {
	ID          int64     `json:"id"`
	DisplayID   string    `json:"display_id"`
	RoomNumber  string    `json:"room_number"`
	RequestType string    `json:"request_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
