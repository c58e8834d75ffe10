// internal/agents/types.go

// Package agents implements the concierge NLU pipeline: intent detection,
// department routing, and per-domain structured extraction with heuristic
// fallback and conversation-history recovery.
package agents

import (
	"context"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/llm"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// historyScanLimit bounds how many recent user messages the agents scan when
// recovering context split across turns.
const historyScanLimit = 5

// Gateway is the advisory LLM oracle. Absent results (empty string / nil)
// mean unavailable or failed; callers always keep a heuristic fallback.
type Gateway interface {
	Available() bool
	ClassifyDepartment(ctx context.Context, message string) string
	DetectIntents(ctx context.Context, message string) *llm.IntentFlags
	ExtractOrder(ctx context.Context, message string) *llm.OrderExtraction
	ExtractRoomService(ctx context.Context, message string) *llm.RoomServiceExtraction
}

// ConversationStore is the narrow persistence surface the pipeline needs.
// Agents treat every error from it as "no history" and never fail a guest
// reply over it.
type ConversationStore interface {
	LastDepartment(ctx context.Context, conversationID string) (string, error)
	LastRoom(ctx context.Context, conversationID string, kind models.RecordKind) (string, error)
	RecentUserMessages(ctx context.Context, conversationID string, limit int) ([]string, error)
	AvailableRooms(ctx context.Context) ([]string, error)
	SaveOrder(ctx context.Context, items []models.OrderLine, roomNumber, conversationID string) (*models.OrderPayload, error)
	SaveRoomService(ctx context.Context, requestType, roomNumber, conversationID string) (*models.RoomServicePayload, error)
}

// Agent is one department handler.
type Agent interface {
	Handle(ctx context.Context, message, roomNumber, conversationID string) (*models.AgentResult, error)
}
