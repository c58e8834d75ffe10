// internal/models/conversation.go
package models

import "time"

// Message senders.
const (
	SenderUser  = "user"
	SenderAgent = "agent"
)

// RecordKind selects which persisted record type a room lookup reads.
type RecordKind string

const (
	RecordKindOrder       RecordKind = "order"
	RecordKindRoomService RecordKind = "room_service"
)

// ConversationMessage is one chat turn, ordered by CreatedAt.
type ConversationMessage struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Department     string    `json:"department,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Room is a bookable room in the inventory.
type Room struct {
	RoomNumber string `json:"room_number"`
	Available  bool   `json:"available"`
}

// AgentResult is what the pipeline hands back for one guest message. At most
// one of Order / RoomService is set for a single department; a multi result
// may carry both.
type AgentResult struct {
	Reply       string              `json:"reply"`
	Department  Department          `json:"department"`
	Order       *OrderPayload       `json:"order,omitempty"`
	RoomService *RoomServicePayload `json:"room_service_request,omitempty"`
}
