// internal/agents/receptionist.go
package agents

import (
	"context"
	"strings"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
)

// Reception desk facts. The receptionist is a stateless keyword router over
// this table plus a live availability query.
var receptionInfo = struct {
	checkInTime  string
	checkOutTime string
	facilities   map[string]string
}{
	checkInTime:  "2:00 PM",
	checkOutTime: "11:00 AM",
	facilities: map[string]string{
		"gym":  "The gym is on the ground floor, open 6:00 AM to 10:00 PM daily.",
		"spa":  "The spa offers massages and treatments from 9:00 AM to 8:00 PM; bookings at the front desk.",
		"pool": "The outdoor swimming pool is open 7:00 AM to 9:00 PM; towels are provided poolside.",
	},
}

// ReceptionistAgent answers FAQs and availability queries. Lowest-priority
// department and the forced default when no other intent is detected.
type ReceptionistAgent struct {
	store  ConversationStore
	logger logger.Logger
}

func NewReceptionistAgent(cs ConversationStore, log logger.Logger) *ReceptionistAgent {
	return &ReceptionistAgent{
		store:  cs,
		logger: log.WithFields(map[string]interface{}{"agent": "receptionist"}),
	}
}

func (a *ReceptionistAgent) Handle(ctx context.Context, message, roomNumber, conversationID string) (*models.AgentResult, error) {
	reply := a.route(ctx, strings.ToLower(message))
	return &models.AgentResult{Reply: reply, Department: models.DepartmentReceptionist}, nil
}

func (a *ReceptionistAgent) route(ctx context.Context, text string) string {
	switch {
	case strings.Contains(text, "check-in") || strings.Contains(text, "check in"):
		return "Check-in time is " + receptionInfo.checkInTime + "."
	case strings.Contains(text, "check-out") || strings.Contains(text, "check out"):
		return "Check-out time is " + receptionInfo.checkOutTime + "."
	case strings.Contains(text, "gym"):
		return receptionInfo.facilities["gym"]
	case strings.Contains(text, "spa"):
		return receptionInfo.facilities["spa"]
	case strings.Contains(text, "pool") || strings.Contains(text, "swimming"):
		return receptionInfo.facilities["pool"]
	case strings.Contains(text, "available") || strings.Contains(text, "availability") || strings.Contains(text, "room"):
		return a.roomAvailability(ctx)
	}
	return "Hi there! I can help with check-in/out times, facilities (gym, spa, pool), and room availability. " +
		"Let me know what you need."
}

func (a *ReceptionistAgent) roomAvailability(ctx context.Context) string {
	rooms, err := a.store.AvailableRooms(ctx)
	if err != nil {
		a.logger.Warn("room availability query failed", map[string]interface{}{"error": err.Error()})
		return "I couldn't check room availability just now. Please try again in a moment."
	}
	if len(rooms) == 0 {
		return "All rooms are currently occupied. I can waitlist your request."
	}
	return "Available rooms right now: " + strings.Join(rooms, ", ") + ". Would you like me to reserve one?"
}
