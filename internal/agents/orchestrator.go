// internal/agents/orchestrator.go
package agents

import (
	"context"
	"fmt"
	"strings"

	cerrors "github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/errors"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/metrics"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/menu"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// genericAcknowledgement is the worst-case reply: nothing in the pipeline may
// fail a guest message outright.
const genericAcknowledgement = "Request received."

// routingKeywords back the department fallback chain when the classifier is
// absent. Matched as substrings of the lowercased message, as are the intent
// keyword sets below.
var routingRestaurantKeywords = []string{
	"menu", "order", "food", "breakfast", "lunch", "dinner", "bill",
	"coffee", "tea", "juice", "drink", "beverage", "snack",
	"pizza", "fries", "burger", "sandwich", "salad", "soup", "dessert", "cake",
}

var roomServiceKeywords = []string{
	"clean", "laundry", "towel", "tooth", "brush", "pillow", "blanket",
	"amenity", "toiletries", "toothpaste", "toothbrush", "housekeeping",
	"room service",
}

var intentRestaurantKeywords = []string{
	"food", "order", "menu", "coffee", "tea", "juice", "drink", "snack",
	"breakfast", "lunch", "dinner", "restaurant",
	"pizza", "fries", "burger", "sandwich", "salad", "soup", "dessert", "cake",
}

var receptionistKeywords = []string{
	"check-in", "check in", "check-out", "check out",
	"gym", "spa", "pool", "availability", "available", "room availability",
}

// routingRoomServiceKeywords is the shorter set the routing chain uses; the
// intent detector uses the full roomServiceKeywords list.
var routingRoomServiceKeywords = []string{
	"clean", "laundry", "towel", "tooth", "pillow", "blanket", "amenity",
}

// Orchestrator routes each guest message to one or more domain agents and
// merges their replies.
type Orchestrator struct {
	gateway      Gateway
	store        ConversationStore
	menuItems    []menu.Item
	restaurant   Agent
	roomService  Agent
	receptionist Agent
	logger       logger.Logger
}

// NewOrchestrator wires the three domain agents over a shared gateway and
// store. menuItems is the primary parsed menu; the restaurant agent merges it
// with the fallback list itself.
func NewOrchestrator(gateway Gateway, cs ConversationStore, menuItems []menu.Item, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		gateway:      gateway,
		store:        cs,
		menuItems:    menuItems,
		restaurant:   NewRestaurantAgent(gateway, cs, menuItems, log),
		roomService:  NewRoomServiceAgent(gateway, cs, log),
		receptionist: NewReceptionistAgent(cs, log),
		logger:       log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
}

// Handle runs the full pipeline for one guest message. It never returns an
// error to the HTTP layer; internal faults degrade to the generic
// acknowledgement.
func (o *Orchestrator) Handle(ctx context.Context, message, roomNumber, conversationID string) *models.AgentResult {
	if roomNumber == "" {
		roomNumber = extractRoomNumber(message)
	}

	vector := o.DetectIntents(ctx, message)

	if vector.Count() > 1 {
		result := o.handleMulti(ctx, vector, message, roomNumber, conversationID)
		metrics.ChatRequests.WithLabelValues(string(result.Department)).Inc()
		return result
	}

	// A single positive intent routes directly; the intent vector outranks
	// the classifier label here.
	var result *models.AgentResult
	var err error
	switch {
	case vector.Restaurant && !vector.RoomService:
		result, err = o.restaurant.Handle(ctx, message, roomNumber, conversationID)
	case vector.RoomService && !vector.Restaurant:
		result, err = o.roomService.Handle(ctx, message, roomNumber, conversationID)
	case vector.Receptionist && !vector.Restaurant && !vector.RoomService:
		result, err = o.receptionist.Handle(ctx, message, roomNumber, conversationID)
	default:
		department := o.routeDepartment(ctx, message, conversationID)
		switch department {
		case models.DepartmentRestaurant:
			result, err = o.restaurant.Handle(ctx, message, roomNumber, conversationID)
		case models.DepartmentRoomService:
			result, err = o.roomService.Handle(ctx, message, roomNumber, conversationID)
		default:
			result, err = o.receptionist.Handle(ctx, message, roomNumber, conversationID)
		}
	}
	if err != nil || result == nil {
		o.logger.Error("agent failed, returning generic acknowledgement", map[string]interface{}{
			"conversationId": conversationID,
			"error":          errMessage(err),
		})
		result = &models.AgentResult{Reply: genericAcknowledgement, Department: models.DepartmentReceptionist}
	}

	metrics.ChatRequests.WithLabelValues(string(result.Department)).Inc()
	return result
}

// DetectIntents builds the three-bit intent vector. The gateway's booleans
// are trusted verbatim when present; otherwise lexical heuristics apply, with
// receptionist forced on when nothing else matched.
func (o *Orchestrator) DetectIntents(ctx context.Context, message string) models.IntentVector {
	if flags := o.gateway.DetectIntents(ctx, message); flags != nil {
		return models.IntentVector{
			Restaurant:   flags.Restaurant,
			RoomService:  flags.RoomService,
			Receptionist: flags.Receptionist,
		}
	}
	metrics.HeuristicFallbacks.WithLabelValues("detect_intents").Inc()

	text := strings.ToLower(message)
	tokens := tokenize(message)

	vector := models.IntentVector{
		Restaurant:  o.mentionsMenuItem(text, tokens) || containsAny(text, intentRestaurantKeywords),
		RoomService: containsAny(text, roomServiceKeywords),
	}
	vector.Receptionist = containsAny(text, receptionistKeywords) ||
		(!vector.Restaurant && !vector.RoomService)
	return vector
}

// routeDepartment picks a single department when the intent vector was
// ambiguous: classifier label first, then keyword heuristics in
// restaurant -> room_service order, then conversation continuity, then the
// receptionist default.
func (o *Orchestrator) routeDepartment(ctx context.Context, message, conversationID string) models.Department {
	if label := o.gateway.ClassifyDepartment(ctx, message); models.KnownDepartment(label) {
		return models.Department(label)
	}
	metrics.HeuristicFallbacks.WithLabelValues("classify_department").Inc()

	text := strings.ToLower(message)
	tokens := tokenize(message)

	if containsAny(text, routingRestaurantKeywords) || o.mentionsMenuItem(text, tokens) {
		return models.DepartmentRestaurant
	}
	if containsAny(text, routingRoomServiceKeywords) {
		return models.DepartmentRoomService
	}
	if conversationID != "" {
		if last, err := o.store.LastDepartment(ctx, conversationID); err == nil && models.KnownDepartment(last) {
			return models.Department(last)
		}
	}
	return models.DepartmentReceptionist
}

// mentionsMenuItem reports whether the message names any menu item, either in
// full or by a meaningful token. Intentionally permissive so offline routing
// still works without the LLM.
func (o *Orchestrator) mentionsMenuItem(text string, tokens []string) bool {
	for _, item := range o.menuItems {
		if mentionsItem(text, tokens, item.Name, 3) {
			return true
		}
	}
	for _, item := range menu.Fallback {
		if mentionsItem(text, tokens, item.Name, 3) {
			return true
		}
	}
	return false
}

// handleMulti fans the message out to every relevant agent in fixed
// restaurant -> room_service -> receptionist order. One agent failing (error
// or panic) is skipped without aborting its siblings.
func (o *Orchestrator) handleMulti(ctx context.Context, vector models.IntentVector, message, roomNumber, conversationID string) *models.AgentResult {
	type invocation struct {
		department models.Department
		agent      Agent
		wanted     bool
	}
	order := []invocation{
		{models.DepartmentRestaurant, o.restaurant, vector.Restaurant},
		{models.DepartmentRoomService, o.roomService, vector.RoomService},
		{models.DepartmentReceptionist, o.receptionist, vector.Receptionist},
	}

	var (
		replies    []string
		orderOut   *models.OrderPayload
		roomSvcOut *models.RoomServicePayload
	)
	for _, inv := range order {
		if !inv.wanted {
			continue
		}
		res, err := o.invokeSafely(ctx, inv.agent, message, roomNumber, conversationID)
		if err != nil {
			metrics.AgentsSkipped.WithLabelValues(string(inv.department)).Inc()
			o.logger.Warn("agent skipped during multi-intent combination", map[string]interface{}{
				"department":     string(inv.department),
				"conversationId": conversationID,
				"error":          cerrors.NewAgentSkippedError(string(inv.department), err).Error(),
			})
			continue
		}
		if res.Reply != "" {
			replies = append(replies, res.Reply)
		}
		if orderOut == nil && res.Order != nil {
			orderOut = res.Order
		}
		if roomSvcOut == nil && res.RoomService != nil {
			roomSvcOut = res.RoomService
		}
	}

	combined := genericAcknowledgement
	if len(replies) > 0 {
		combined = strings.Join(replies, "\n")
	}
	return &models.AgentResult{
		Reply:       combined,
		Department:  models.DepartmentMulti,
		Order:       orderOut,
		RoomService: roomSvcOut,
	}
}

// invokeSafely shields the combination loop from a panicking agent.
func (o *Orchestrator) invokeSafely(ctx context.Context, agent Agent, message, roomNumber, conversationID string) (result *models.AgentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("agent panic: %v", r)
		}
	}()
	result, err = agent.Handle(ctx, message, roomNumber, conversationID)
	if err == nil && result == nil {
		err = fmt.Errorf("agent returned no result")
	}
	return result, err
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func errMessage(err error) string {
	if err == nil {
		return "no result"
	}
	return err.Error()
}
