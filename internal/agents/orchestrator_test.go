// internal/agents/orchestrator_test.go
package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/llm"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

func newOrchestrator(gateway Gateway, store ConversationStore) *Orchestrator {
	return NewOrchestrator(gateway, store, nil, logger.NewNoOpLogger())
}

// ==========================
// Intent Detection
// ==========================

func TestOrchestrator_DetectIntents_Heuristic(t *testing.T) {
	o := newOrchestrator(&fakeGateway{}, &fakeStore{})

	tests := []struct {
		name     string
		message  string
		expected models.IntentVector
	}{
		{
			name:     "food only",
			message:  "I'd like to order a pizza",
			expected: models.IntentVector{Restaurant: true},
		},
		{
			name:     "housekeeping only",
			message:  "I need my laundry picked up",
			expected: models.IntentVector{RoomService: true},
		},
		{
			name:     "front desk only",
			message:  "what time is check-in",
			expected: models.IntentVector{Receptionist: true},
		},
		{
			name:     "food and housekeeping",
			message:  "get me a coffee and some towels",
			expected: models.IntentVector{Restaurant: true, RoomService: true},
		},
		{
			name:     "nothing recognized defaults to receptionist",
			message:  "hello there",
			expected: models.IntentVector{Receptionist: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, o.DetectIntents(context.Background(), tt.message))
		})
	}
}

func TestOrchestrator_DetectIntents_GatewayTrustedVerbatim(t *testing.T) {
	// The gateway's booleans win even when the keywords disagree.
	gateway := &fakeGateway{
		available: true,
		intents:   &llm.IntentFlags{RoomService: true},
	}
	o := newOrchestrator(gateway, &fakeStore{})

	vector := o.DetectIntents(context.Background(), "I'd like to order a pizza")
	assert.Equal(t, models.IntentVector{RoomService: true}, vector)
}

// ==========================
// Routing
// ==========================

func TestOrchestrator_Handle_SingleIntentRouting(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		department models.Department
	}{
		{"restaurant", "I'd like to order a pizza, room 104", models.DepartmentRestaurant},
		{"room service", "please clean my room 104", models.DepartmentRoomService},
		{"receptionist", "what time is check-out", models.DepartmentReceptionist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(&fakeGateway{}, &fakeStore{})
			result := o.Handle(context.Background(), tt.message, "", "conv-1")
			assert.Equal(t, tt.department, result.Department)
			assert.NotEmpty(t, result.Reply)
		})
	}
}

func TestOrchestrator_Handle_IntentVectorOutranksClassifier(t *testing.T) {
	// The classifier says receptionist but the intent vector flags the
	// restaurant; the vector wins.
	gateway := &fakeGateway{
		available: true,
		classify:  "receptionist",
		intents:   &llm.IntentFlags{Restaurant: true},
	}
	o := newOrchestrator(gateway, &fakeStore{})

	result := o.Handle(context.Background(), "hmm", "", "conv-1")
	assert.Equal(t, models.DepartmentRestaurant, result.Department)
}

func TestOrchestrator_Handle_ClassifierUsedWhenVectorAmbiguous(t *testing.T) {
	// An empty vector falls through to the fallback chain, where the
	// classifier label is consulted first.
	gateway := &fakeGateway{
		available: true,
		classify:  "room_service",
		intents:   &llm.IntentFlags{},
	}
	o := newOrchestrator(gateway, &fakeStore{})

	result := o.Handle(context.Background(), "hmm", "", "conv-1")
	assert.Equal(t, models.DepartmentRoomService, result.Department)
}

func TestOrchestrator_RouteDepartment_FallbackChain(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		lastDepartment string
		expected       models.Department
	}{
		{"restaurant keyword", "what's for dinner", "", models.DepartmentRestaurant},
		{"room service keyword", "extra blanket", "", models.DepartmentRoomService},
		{"conversation continuity", "yes please", "room_service", models.DepartmentRoomService},
		{"receptionist default", "yes please", "", models.DepartmentReceptionist},
		{"unknown last department ignored", "yes please", "multi", models.DepartmentReceptionist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(&fakeGateway{}, &fakeStore{lastDepartment: tt.lastDepartment})
			assert.Equal(t, tt.expected, o.routeDepartment(context.Background(), tt.message, "conv-1"))
		})
	}
}

// ==========================
// Multi-Intent Combination
// ==========================

func TestOrchestrator_Handle_MultiIntentCombinesReplies(t *testing.T) {
	gateway := &fakeGateway{
		available: true,
		intents:   &llm.IntentFlags{Restaurant: true, RoomService: true},
		order: &llm.OrderExtraction{
			Items: []llm.ExtractedItem{{Name: "Coffee", Quantity: 1}},
		},
		roomService: &llm.RoomServiceExtraction{RequestType: "towels"},
	}
	store := &fakeStore{}
	o := newOrchestrator(gateway, store)

	result := o.Handle(context.Background(), "get me a coffee and fresh towels", "101", "conv-1")

	assert.Equal(t, models.DepartmentMulti, result.Department)
	assert.Equal(t,
		"Order placed for room 101. Total is ₹3.50. Anything else you'd like to add?\n"+
			"Towels request logged for room 101. Status: Pending.",
		result.Reply)
	require.NotNil(t, result.Order)
	require.NotNil(t, result.RoomService)
	assert.Len(t, store.savedOrders, 1)
	assert.Len(t, store.savedRoomService, 1)
}

func TestOrchestrator_Handle_MultiIntentSkipsFailingAgent(t *testing.T) {
	gateway := &fakeGateway{
		available: true,
		intents:   &llm.IntentFlags{Restaurant: true, RoomService: true},
		order: &llm.OrderExtraction{
			Items: []llm.ExtractedItem{{Name: "Coffee", Quantity: 1}},
		},
		roomService: &llm.RoomServiceExtraction{RequestType: "towels"},
	}
	store := &fakeStore{orderErr: errors.New("db down")}
	o := newOrchestrator(gateway, store)

	result := o.Handle(context.Background(), "coffee and towels", "101", "conv-1")

	assert.Equal(t, models.DepartmentMulti, result.Department)
	assert.Equal(t, "Towels request logged for room 101. Status: Pending.", result.Reply)
	assert.Nil(t, result.Order)
	require.NotNil(t, result.RoomService)
}

func TestOrchestrator_Handle_MultiIntentAllFail(t *testing.T) {
	gateway := &fakeGateway{
		available: true,
		intents:   &llm.IntentFlags{Restaurant: true, RoomService: true},
		order: &llm.OrderExtraction{
			Items: []llm.ExtractedItem{{Name: "Coffee", Quantity: 1}},
		},
		roomService: &llm.RoomServiceExtraction{RequestType: "towels"},
	}
	store := &fakeStore{
		orderErr:   errors.New("db down"),
		roomSvcErr: errors.New("db down"),
	}
	o := newOrchestrator(gateway, store)

	result := o.Handle(context.Background(), "coffee and towels", "101", "conv-1")

	assert.Equal(t, models.DepartmentMulti, result.Department)
	assert.Equal(t, genericAcknowledgement, result.Reply)
}

// ==========================
// Degradation
// ==========================

func TestOrchestrator_Handle_AgentFailureYieldsGenericAcknowledgement(t *testing.T) {
	gateway := &fakeGateway{
		available: true,
		intents:   &llm.IntentFlags{Restaurant: true},
		order: &llm.OrderExtraction{
			Items: []llm.ExtractedItem{{Name: "Coffee", Quantity: 1}},
		},
	}
	store := &fakeStore{orderErr: errors.New("db down")}
	o := newOrchestrator(gateway, store)

	result := o.Handle(context.Background(), "a coffee please", "101", "conv-1")

	assert.Equal(t, genericAcknowledgement, result.Reply)
	assert.Equal(t, models.DepartmentReceptionist, result.Department)
}

func TestOrchestrator_Handle_RoomExtractedFromMessage(t *testing.T) {
	store := &fakeStore{}
	o := newOrchestrator(&fakeGateway{}, store)

	result := o.Handle(context.Background(), "send a margherita pizza to room 104", "", "conv-1")

	require.NotNil(t, result.Order)
	assert.Equal(t, "104", result.Order.RoomNumber)
}
