// internal/agents/roomservice.go
package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	cerrors "github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/errors"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/metrics"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// requestTypeVocabulary maps surface forms onto the eight canonical request
// types. Unrecognized input normalizes to absent, never to a raw passthrough.
var requestTypeVocabulary = map[string]string{
	"blanket":      "blanket",
	"blankets":     "blanket",
	"pillow":       "pillow",
	"pillows":      "pillow",
	"toiletry":     "toiletries",
	"toiletries":   "toiletries",
	"toothpaste":   "toothpaste",
	"toothbrush":   "toothbrush",
	"brush":        "toothbrush",
	"laundry":      "laundry",
	"clean":        "cleaning",
	"cleaning":     "cleaning",
	"housekeeping": "cleaning",
	"towel":        "towels",
	"towels":       "towels",
}

// NormalizeRequestType decodes the request_type union the gateway may return
// (string, sequence, or mapping) and maps the result through the canonical
// vocabulary. Precedence: plain string > first truthy sequence element >
// mapping's "request_type" field > mapping's first string value. Anything
// unrecognized yields ("", false).
func NormalizeRequestType(raw interface{}) (string, bool) {
	var surface string
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		surface = v
	case []interface{}:
		for _, elem := range v {
			if s, ok := elem.(string); ok && s != "" {
				surface = s
				break
			}
		}
	case map[string]interface{}:
		if s, ok := v["request_type"].(string); ok && s != "" {
			surface = s
		} else {
			// Keys sorted so the "first string value" is deterministic.
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if s, ok := v[k].(string); ok && s != "" {
					surface = s
					break
				}
			}
		}
	default:
		return "", false
	}

	canonical, ok := requestTypeVocabulary[strings.ToLower(strings.TrimSpace(surface))]
	return canonical, ok
}

// RoomServiceAgent turns housekeeping and amenity messages into persisted
// requests.
type RoomServiceAgent struct {
	gateway Gateway
	store   ConversationStore
	logger  logger.Logger
}

func NewRoomServiceAgent(gateway Gateway, cs ConversationStore, log logger.Logger) *RoomServiceAgent {
	return &RoomServiceAgent{
		gateway: gateway,
		store:   cs,
		logger:  log.WithFields(map[string]interface{}{"agent": "room_service"}),
	}
}

// Handle processes one room-service-bound message.
func (a *RoomServiceAgent) Handle(ctx context.Context, message, roomNumber, conversationID string) (*models.AgentResult, error) {
	requestType := a.extractRequest(ctx, message)
	if requestType == "" && roomNumber != "" {
		requestType = a.recoverRequestFromHistory(ctx, conversationID)
	}
	if requestType == "" {
		return &models.AgentResult{
			Reply: "I can schedule cleaning, laundry, or deliver amenities like towels, toiletries, toothpaste, pillows, " +
				"and blankets. What do you need?",
			Department: models.DepartmentRoomService,
		}, nil
	}

	if roomNumber == "" {
		roomNumber = a.fallbackRoomNumber(ctx, conversationID)
	}
	if roomNumber == "" {
		a.logger.Debug("request held for room number", map[string]interface{}{
			"conversation_id": conversationID,
			"reason":          cerrors.NewMissingContextError("room number").Error(),
		})
		return &models.AgentResult{
			Reply:      "Please confirm your room number so I can dispatch the request.",
			Department: models.DepartmentRoomService,
		}, nil
	}

	record, err := a.store.SaveRoomService(ctx, requestType, roomNumber, conversationID)
	if err != nil {
		return nil, cerrors.NewPersistenceError("room service request", err)
	}
	reply := fmt.Sprintf("%s request logged for room %s. Status: %s.",
		titleCase(record.RequestType), roomNumber, record.Status)
	return &models.AgentResult{Reply: reply, Department: models.DepartmentRoomService, RoomService: record}, nil
}

// extractRequest prefers the gateway; a payload whose request_type fails
// vocabulary normalization counts as absent and falls through to the
// heuristic parser rather than being accepted raw.
func (a *RoomServiceAgent) extractRequest(ctx context.Context, message string) string {
	if fromLLM := a.gateway.ExtractRoomService(ctx, message); fromLLM != nil {
		if canonical, ok := NormalizeRequestType(fromLLM.RequestType); ok {
			return canonical
		}
		a.logger.Debug("gateway request_type failed normalization", map[string]interface{}{
			"error": cerrors.NewMalformedExtractionError(fmt.Sprintf("request_type %v", fromLLM.RequestType)).Error(),
		})
	}
	metrics.HeuristicFallbacks.WithLabelValues("extract_room_service").Inc()
	return a.simpleParse(message)
}

// simpleParse tests keywords in fixed priority: laundry, then cleaning, then
// towels, then the amenity set. First match wins.
func (a *RoomServiceAgent) simpleParse(message string) string {
	text := strings.ToLower(message)
	if strings.Contains(text, "laundry") {
		return "laundry"
	}
	if strings.Contains(text, "clean") || strings.Contains(text, "housekeeping") {
		return "cleaning"
	}
	if strings.Contains(text, "towel") {
		return "towels"
	}
	for _, keyword := range []string{"toiletries", "toothpaste", "toothbrush", "brush", "pillow", "blanket"} {
		if strings.Contains(text, keyword) {
			if canonical, ok := NormalizeRequestType(keyword); ok {
				return canonical
			}
		}
	}
	return ""
}

// recoverRequestFromHistory mirrors the restaurant agent's scan over recent
// user turns.
func (a *RoomServiceAgent) recoverRequestFromHistory(ctx context.Context, conversationID string) string {
	messages, err := a.store.RecentUserMessages(ctx, conversationID, historyScanLimit)
	if err != nil {
		a.logger.Debug("history scan failed", map[string]interface{}{
			"conversationId": conversationID,
			"error":          cerrors.NewHistoryLookupError(err).Error(),
		})
		return ""
	}
	for _, msg := range messages {
		if requestType := a.simpleParse(msg); requestType != "" {
			return requestType
		}
	}
	return ""
}

// fallbackRoomNumber reuses the last known room, preferring this agent's own
// records over restaurant orders.
func (a *RoomServiceAgent) fallbackRoomNumber(ctx context.Context, conversationID string) string {
	if room, err := a.store.LastRoom(ctx, conversationID, models.RecordKindRoomService); err == nil && room != "" {
		return room
	}
	if room, err := a.store.LastRoom(ctx, conversationID, models.RecordKindOrder); err == nil && room != "" {
		return room
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
