// internal/agents/restaurant_test.go
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

func newRestaurantAgent(gateway Gateway, store ConversationStore) *RestaurantAgent {
	return NewRestaurantAgent(gateway, store, nil, logger.NewNoOpLogger())
}

func TestRestaurantAgent_Handle_MenuRequest(t *testing.T) {
	agent := newRestaurantAgent(&fakeGateway{}, &fakeStore{})

	result, err := agent.Handle(context.Background(), "show me the menu", "", "conv-1")
	require.NoError(t, err)

	assert.Equal(t, models.DepartmentRestaurant, result.Department)
	assert.Contains(t, result.Reply, "Here is the menu:")
	assert.Contains(t, result.Reply, "Margherita Pizza")
	assert.Contains(t, result.Reply, "₹12.00")
	assert.Nil(t, result.Order)
}

func TestRestaurantAgent_Handle_PlacesOrderWithExplicitQuantity(t *testing.T) {
	store := &fakeStore{}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "I want 2 pizzas, room 104", "104", "conv-1")
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, "Margherita Pizza", result.Order.Items[0].Name)
	assert.Equal(t, 2, result.Order.Items[0].Quantity)
	assert.Equal(t, 24.0, result.Order.TotalAmount)
	assert.Equal(t, "Order placed for room 104. Total is ₹24.00. Anything else you'd like to add?", result.Reply)
}

func TestRestaurantAgent_Handle_MultipleItemsWithoutQuantitiesNeedsConfirmation(t *testing.T) {
	store := &fakeStore{}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "pizza and fries please", "104", "conv-1")
	require.NoError(t, err)

	assert.Equal(t, "I can place this order: 1x French Fries, 1x Margherita Pizza. Confirm quantities or adjust?", result.Reply)
	assert.Nil(t, result.Order)
	assert.Empty(t, store.savedOrders)
}

func TestRestaurantAgent_Handle_SingleItemSkipsConfirmation(t *testing.T) {
	store := &fakeStore{}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "a margherita pizza please", "104", "conv-1")
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, 1, result.Order.Items[0].Quantity)
}

func TestRestaurantAgent_Handle_AsksForRoomBeforePlacing(t *testing.T) {
	store := &fakeStore{}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "I want 2 pizzas", "", "conv-1")
	require.NoError(t, err)

	assert.Equal(t, "Please share your room number so I can place the order.", result.Reply)
	assert.Nil(t, result.Order)
	assert.Empty(t, store.savedOrders)
}

func TestRestaurantAgent_Handle_RecoversOrderFromHistory(t *testing.T) {
	// Turn one asked for the room; turn two supplies only the room number and
	// the items come back from the conversation history.
	store := &fakeStore{recentMessages: []string{"room 104", "I want 2 pizzas"}}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "room 104", "104", "conv-1")
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, "Margherita Pizza", result.Order.Items[0].Name)
	assert.Equal(t, 2, result.Order.Items[0].Quantity)
	assert.Equal(t, "104", result.Order.RoomNumber)
}

func TestRestaurantAgent_Handle_RoomFromPreviousOrder(t *testing.T) {
	store := &fakeStore{
		lastRooms: map[models.RecordKind]string{models.RecordKindOrder: "202"},
	}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "add a coffee", "", "conv-1")
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	assert.Equal(t, "202", result.Order.RoomNumber)
}

func TestRestaurantAgent_Handle_GatewayExtractionPreferred(t *testing.T) {
	gateway := &fakeGateway{
		available: true,
		order: &llm.OrderExtraction{
			Items: []llm.ExtractedItem{
				{Name: "Grilled Salmon", Quantity: "two"},
				{Name: "Coffee", Quantity: float64(1)},
			},
		},
	}
	store := &fakeStore{}
	agent := newRestaurantAgent(gateway, store)

	result, err := agent.Handle(context.Background(), "the usual", "101", "conv-1")
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	require.Len(t, result.Order.Items, 2)
	assert.Equal(t, 2, result.Order.Items[0].Quantity)
	// 2 x 18.50 + 1 x 3.50
	assert.Equal(t, 40.5, result.Order.TotalAmount)
}

func TestRestaurantAgent_Handle_UnknownItemPricedAtZero(t *testing.T) {
	gateway := &fakeGateway{
		available: true,
		order: &llm.OrderExtraction{
			Items: []llm.ExtractedItem{{Name: "Chef Special", Quantity: 1}},
		},
	}
	store := &fakeStore{}
	agent := newRestaurantAgent(gateway, store)

	result, err := agent.Handle(context.Background(), "one chef special", "101", "conv-1")
	require.NoError(t, err)

	require.NotNil(t, result.Order)
	assert.Equal(t, 0.0, result.Order.TotalAmount)
	assert.Equal(t, 0.0, result.Order.Items[0].Price)
}

func TestRestaurantAgent_Handle_NothingParsedPrompts(t *testing.T) {
	agent := newRestaurantAgent(&fakeGateway{}, &fakeStore{})

	result, err := agent.Handle(context.Background(), "I'm hungry", "", "conv-1")
	require.NoError(t, err)

	assert.Equal(t, "I can place your food order. Tell me items and quantities or ask for the menu.", result.Reply)
}

func TestRestaurantAgent_Handle_PersistenceFailure(t *testing.T) {
	store := &fakeStore{orderErr: errors.New("db down")}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "a margherita pizza", "101", "conv-1")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRestaurantAgent_Handle_HistoryLookupFailureDegrades(t *testing.T) {
	store := &fakeStore{historyErr: errors.New("db down")}
	agent := newRestaurantAgent(&fakeGateway{}, store)

	result, err := agent.Handle(context.Background(), "room 104", "104", "conv-1")
	require.NoError(t, err)

	assert.Equal(t, "I can place your food order. Tell me items and quantities or ask for the menu.", result.Reply)
}
