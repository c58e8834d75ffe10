// internal/server/server.go

// Package server exposes the concierge pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/metrics"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/validation"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/llm"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/menu"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/models"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/notify"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/store"
)

// Pipeline is the orchestrator surface the server needs.
type Pipeline interface {
	Handle(ctx context.Context, message, roomNumber, conversationID string) *models.AgentResult
}

// Records is the store surface the HTTP layer uses directly (conversation
// log, dashboard, status updates).
type Records interface {
	SaveMessage(ctx context.Context, msg models.ConversationMessage) error
	ListOrders(ctx context.Context) ([]models.OrderPayload, error)
	ListRoomServiceRequests(ctx context.Context) ([]models.RoomServicePayload, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.OrderPayload, error)
	UpdateRoomServiceStatus(ctx context.Context, id int64, status string) (*models.RoomServicePayload, error)
}

// Oracle reports gateway health for the diagnostics endpoint.
type Oracle interface {
	Health() llm.HealthStatus
}

// Server holds the HTTP dependencies.
type Server struct {
	pipeline Pipeline
	records  Records
	oracle   Oracle
	notifier *notify.Notifier
	menu     []menu.Item
	logger   logger.Logger
}

// New assembles the server.
func New(pipeline Pipeline, records Records, oracle Oracle, notifier *notify.Notifier, menuItems []menu.Item, log logger.Logger) *Server {
	return &Server{
		pipeline: pipeline,
		records:  records,
		oracle:   oracle,
		notifier: notifier,
		menu:     menuItems,
		logger:   log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	}))

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/menu", s.getMenu)
	router.GET("/api/llm-health", s.llmHealth)
	router.POST("/api/chat", s.chat)
	router.GET("/api/dashboard", s.dashboard)
	router.POST("/api/orders/:id/status", s.updateOrderStatus)
	router.POST("/api/room-service/:id/status", s.updateRoomServiceStatus)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"menu": s.menu})
}

func (s *Server) llmHealth(c *gin.Context) {
	c.JSON(http.StatusOK, s.oracle.Health())
}

func (s *Server) chat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}
	if err := validation.ValidateChatRequest(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	started := time.Now()
	result := s.pipeline.Handle(c.Request.Context(), req.Message, req.RoomNumber, conversationID)
	metrics.ChatDuration.WithLabelValues(string(result.Department)).Observe(time.Since(started).Seconds())

	s.logger.Info("chat handled", map[string]interface{}{
		"conversationId": conversationID,
		"department":     string(result.Department),
		"room":           req.RoomNumber,
	})

	// The conversation log is best effort; a write failure must not lose the
	// reply.
	s.appendMessage(c, conversationID, models.SenderUser, result.Department, req.Message)
	s.appendMessage(c, conversationID, models.SenderAgent, result.Department, result.Reply)

	if s.notifier != nil {
		s.notifier.OrderPlaced(c.Request.Context(), result.Order)
		s.notifier.RoomServiceRequested(c.Request.Context(), result.RoomService)
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		ConversationID: conversationID,
		Department:     result.Department,
		Reply:          result.Reply,
		Order:          result.Order,
		RoomService:    result.RoomService,
	})
}

func (s *Server) appendMessage(c *gin.Context, conversationID, sender string, department models.Department, content string) {
	err := s.records.SaveMessage(c.Request.Context(), models.ConversationMessage{
		ConversationID: conversationID,
		Sender:         sender,
		Department:     string(department),
		Content:        content,
	})
	if err != nil {
		s.logger.Warn("failed to append conversation message", map[string]interface{}{
			"conversationId": conversationID,
			"sender":         sender,
			"error":          err.Error(),
		})
	}
}

func (s *Server) dashboard(c *gin.Context) {
	orders, err := s.records.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	requests, err := s.records.ListRoomServiceRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room service requests"})
		return
	}
	c.JSON(http.StatusOK, models.DashboardResponse{
		RestaurantOrders:    orders,
		RoomServiceRequests: requests,
	})
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, update, ok := s.statusParams(c)
	if !ok {
		return
	}
	order, err := s.records.UpdateOrderStatus(c.Request.Context(), id, update.Status)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"updated": false, "reason": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true, "order": order})
}

func (s *Server) updateRoomServiceStatus(c *gin.Context) {
	id, update, ok := s.statusParams(c)
	if !ok {
		return
	}
	req, err := s.records.UpdateRoomServiceStatus(c.Request.Context(), id, update.Status)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"updated": false, "reason": "Request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true, "room_service_request": req})
}

func (s *Server) statusParams(c *gin.Context) (int64, models.StatusUpdate, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, models.StatusUpdate{}, false
	}
	var update models.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return 0, models.StatusUpdate{}, false
	}
	if !models.ValidStatus(update.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: Pending, In Progress, Completed"})
		return 0, models.StatusUpdate{}, false
	}
	return id, update, true
}
