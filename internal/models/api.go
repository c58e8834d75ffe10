// internal/models/api.go
package models

// ChatRequest is the inbound body of POST /api/chat.
type ChatRequest struct {
	Message        string `json:"message"`
	RoomNumber     string `json:"room_number,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the outbound body of POST /api/chat.
type ChatResponse struct {
	ConversationID string              `json:"conversation_id"`
	Department     Department          `json:"department"`
	Reply          string              `json:"reply"`
	Order          *OrderPayload       `json:"order,omitempty"`
	RoomService    *RoomServicePayload `json:"room_service_request,omitempty"`
}

// DashboardResponse lists persisted work for the staff dashboard, newest
// first.
type DashboardResponse struct {
	RestaurantOrders    []OrderPayload       `json:"restaurant_orders"`
	RoomServiceRequests []RoomServicePayload `json:"room_service_requests"`
}

// StatusUpdate is the body of the order / room-service status endpoints.
type StatusUpdate struct {
	Status string `json:"status"`
}
