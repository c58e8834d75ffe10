// internal/agents/restaurant.go
package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	cerrors "github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/errors"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/metrics"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/menu"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// restaurantTokenMinLen keeps only meaningful dish-name tokens for heuristic
// matching ("pizza", "fries"), skipping fillers like "with" or "and".
const restaurantTokenMinLen = 4

// parsedOrder is an unpriced order draft from extraction.
type parsedOrder struct {
	items           []draftItem
	needsQtyConfirm bool
}

type draftItem struct {
	name     string
	quantity int
}

// RestaurantAgent turns free-text food requests into priced, persisted
// orders.
type RestaurantAgent struct {
	gateway Gateway
	store   ConversationStore
	lookup  map[string]menu.Item
	// ordered walks the lookup deterministically during heuristic parsing.
	ordered []menu.Item
	logger  logger.Logger
}

// NewRestaurantAgent merges the parsed menu with the fallback list (primary
// wins on name collision) once per instance.
func NewRestaurantAgent(gateway Gateway, cs ConversationStore, primary []menu.Item, log logger.Logger) *RestaurantAgent {
	lookup := menu.NewLookup(primary)
	ordered := make([]menu.Item, 0, len(lookup))
	for _, item := range lookup {
		ordered = append(ordered, item)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	return &RestaurantAgent{
		gateway: gateway,
		store:   cs,
		lookup:  lookup,
		ordered: ordered,
		logger:  log.WithFields(map[string]interface{}{"agent": "restaurant"}),
	}
}

// Handle processes one restaurant-bound message.
func (a *RestaurantAgent) Handle(ctx context.Context, message, roomNumber, conversationID string) (*models.AgentResult, error) {
	text := strings.ToLower(message)
	if strings.Contains(text, "menu") || strings.Contains(text, "options") {
		return &models.AgentResult{Reply: a.menuText(), Department: models.DepartmentRestaurant}, nil
	}

	parsed := a.extractOrder(ctx, message)
	if parsed == nil || len(parsed.items) == 0 {
		// A bare room number usually answers our earlier prompt; look for
		// the items in recent turns.
		if roomNumber != "" {
			parsed = a.recoverOrderFromHistory(ctx, conversationID)
		}
	}
	if parsed == nil || len(parsed.items) == 0 {
		return &models.AgentResult{
			Reply:      "I can place your food order. Tell me items and quantities or ask for the menu.",
			Department: models.DepartmentRestaurant,
		}, nil
	}

	if parsed.needsQtyConfirm {
		names := make([]string, 0, len(parsed.items))
		for _, item := range parsed.items {
			names = append(names, "1x "+item.name)
		}
		return &models.AgentResult{
			Reply:      fmt.Sprintf("I can place this order: %s. Confirm quantities or adjust?", strings.Join(names, ", ")),
			Department: models.DepartmentRestaurant,
		}, nil
	}

	if roomNumber == "" {
		roomNumber = a.fallbackRoomNumber(ctx, conversationID)
	}
	if roomNumber == "" {
		a.logger.Debug("order held for room number", map[string]interface{}{
			"conversation_id": conversationID,
			"reason":          cerrors.NewMissingContextError("room number").Error(),
		})
		return &models.AgentResult{
			Reply:      "Please share your room number so I can place the order.",
			Department: models.DepartmentRestaurant,
		}, nil
	}

	order, err := a.saveOrder(ctx, parsed.items, roomNumber, conversationID)
	if err != nil {
		return nil, err
	}
	reply := fmt.Sprintf(
		"Order placed for room %s. Total is ₹%.2f. Anything else you'd like to add?",
		roomNumber, order.TotalAmount,
	)
	return &models.AgentResult{Reply: reply, Department: models.DepartmentRestaurant, Order: order}, nil
}

// extractOrder prefers the gateway and falls back to the heuristic parser
// whenever the gateway is absent or returned no items.
func (a *RestaurantAgent) extractOrder(ctx context.Context, message string) *parsedOrder {
	if fromLLM := a.gateway.ExtractOrder(ctx, message); fromLLM != nil && len(fromLLM.Items) > 0 {
		items := make([]draftItem, 0, len(fromLLM.Items))
		for _, it := range fromLLM.Items {
			if it.Name == "" {
				continue
			}
			items = append(items, draftItem{name: it.Name, quantity: coerceQuantity(it.Quantity)})
		}
		if len(items) > 0 {
			return &parsedOrder{items: items}
		}
	}
	metrics.HeuristicFallbacks.WithLabelValues("extract_order").Inc()
	return a.simpleParse(message)
}

// simpleParse walks the merged menu and collects every mentioned item with a
// nearby quantity. Confirmation is requested only when several items arrived
// with no explicit quantity signal at all.
func (a *RestaurantAgent) simpleParse(message string) *parsedOrder {
	text := strings.ToLower(message)
	tokens := tokenize(message)

	var items []draftItem
	for _, item := range a.ordered {
		if mentionsItem(text, tokens, item.Name, restaurantTokenMinLen) {
			items = append(items, draftItem{
				name:     item.Name,
				quantity: findQuantity(tokens, item.Name, restaurantTokenMinLen),
			})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &parsedOrder{
		items:           items,
		needsQtyConfirm: len(items) > 1 && !hasExplicitQuantity(tokens),
	}
}

// recoverOrderFromHistory re-parses the most recent user turns, newest first,
// and keeps the first one that mentions items. Lookup failures mean "no
// history".
func (a *RestaurantAgent) recoverOrderFromHistory(ctx context.Context, conversationID string) *parsedOrder {
	messages, err := a.store.RecentUserMessages(ctx, conversationID, historyScanLimit)
	if err != nil {
		a.logger.Debug("history scan failed", map[string]interface{}{
			"conversationId": conversationID,
			"error":          cerrors.NewHistoryLookupError(err).Error(),
		})
		return nil
	}
	for _, msg := range messages {
		if parsed := a.simpleParse(msg); parsed != nil && len(parsed.items) > 0 {
			return parsed
		}
	}
	return nil
}

// fallbackRoomNumber reuses the last known room for the conversation so
// multi-turn flows like "add fries" work without repeating the room.
func (a *RestaurantAgent) fallbackRoomNumber(ctx context.Context, conversationID string) string {
	if room, err := a.store.LastRoom(ctx, conversationID, models.RecordKindOrder); err == nil && room != "" {
		return room
	}
	if room, err := a.store.LastRoom(ctx, conversationID, models.RecordKindRoomService); err == nil && room != "" {
		return room
	}
	return ""
}

// saveOrder prices each line from the menu lookup (0 for unknown names, never
// rejected), coerces quantities, and persists.
func (a *RestaurantAgent) saveOrder(ctx context.Context, items []draftItem, roomNumber, conversationID string) (*models.OrderPayload, error) {
	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		price := 0.0
		if menuItem, ok := a.lookup[strings.ToLower(item.name)]; ok {
			price = menuItem.Price
		}
		lines = append(lines, models.OrderLine{
			Name:     item.name,
			Quantity: coerceQuantity(item.quantity),
			Price:    price,
		})
	}
	order, err := a.store.SaveOrder(ctx, lines, roomNumber, conversationID)
	if err != nil {
		return nil, cerrors.NewPersistenceError("restaurant order", err)
	}
	return order, nil
}

func (a *RestaurantAgent) menuText() string {
	var b strings.Builder
	b.WriteString("Here is the menu:")
	for _, item := range a.ordered {
		fmt.Fprintf(&b, "\n- %s (₹%.2f)", item.Name, item.Price)
	}
	return b.String()
}
