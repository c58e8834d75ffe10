// internal/agents/agents_test.go
package agents

import (
	"context"
	"time"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/llm"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// ==========================
// Test Fakes
// ==========================

// fakeGateway returns canned extraction results. Zero value behaves like an
// offline gateway: every method reports nothing.
type fakeGateway struct {
	available   bool
	classify    string
	intents     *llm.IntentFlags
	order       *llm.OrderExtraction
	roomService *llm.RoomServiceExtraction
}

func (g *fakeGateway) Available() bool { return g.available }

func (g *fakeGateway) ClassifyDepartment(ctx context.Context, message string) string {
	return g.classify
}

func (g *fakeGateway) DetectIntents(ctx context.Context, message string) *llm.IntentFlags {
	return g.intents
}

func (g *fakeGateway) ExtractOrder(ctx context.Context, message string) *llm.OrderExtraction {
	return g.order
}

func (g *fakeGateway) ExtractRoomService(ctx context.Context, message string) *llm.RoomServiceExtraction {
	return g.roomService
}

// fakeStore is an in-memory ConversationStore. Persisted payloads mirror what
// the real store would return, including the computed total.
type fakeStore struct {
	lastDepartment string
	lastRooms      map[models.RecordKind]string
	recentMessages []string
	availableRooms []string
	historyErr     error
	orderErr       error
	roomSvcErr     error
	roomsErr       error

	savedOrders      []*models.OrderPayload
	savedRoomService []*models.RoomServicePayload
}

func (s *fakeStore) LastDepartment(ctx context.Context, conversationID string) (string, error) {
	return s.lastDepartment, nil
}

func (s *fakeStore) LastRoom(ctx context.Context, conversationID string, kind models.RecordKind) (string, error) {
	return s.lastRooms[kind], nil
}

func (s *fakeStore) RecentUserMessages(ctx context.Context, conversationID string, limit int) ([]string, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	if len(s.recentMessages) > limit {
		return s.recentMessages[:limit], nil
	}
	return s.recentMessages, nil
}

func (s *fakeStore) AvailableRooms(ctx context.Context) ([]string, error) {
	if s.roomsErr != nil {
		return nil, s.roomsErr
	}
	return s.availableRooms, nil
}

func (s *fakeStore) SaveOrder(ctx context.Context, items []models.OrderLine, roomNumber, conversationID string) (*models.OrderPayload, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	total := 0.0
	for _, line := range items {
		total += line.Price * float64(line.Quantity)
	}
	order := &models.OrderPayload{
		ID:          int64(len(s.savedOrders) + 1),
		DisplayID:   "RES-" + roomNumber + "-ABC123",
		RoomNumber:  roomNumber,
		Items:       items,
		TotalAmount: total,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	s.savedOrders = append(s.savedOrders, order)
	return order, nil
}

func (s *fakeStore) SaveRoomService(ctx context.Context, requestType, roomNumber, conversationID string) (*models.RoomServicePayload, error) {
	if s.roomSvcErr != nil {
		return nil, s.roomSvcErr
	}
	record := &models.RoomServicePayload{
		ID:          int64(len(s.savedRoomService) + 1),
		DisplayID:   "RSV-" + roomNumber + "-ABC123",
		RoomNumber:  roomNumber,
		RequestType: requestType,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	s.savedRoomService = append(s.savedRoomService, record)
	return record, nil
}
