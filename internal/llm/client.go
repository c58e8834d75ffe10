// internal/llm/client.go

// Package llm wraps the OpenAI chat API behind a never-fails gateway. Every
// transport, auth, or parse problem is recorded and the call returns absent;
// callers treat gateway output as advisory and keep their own heuristics.
package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/config"
	cerrors "github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/errors"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/metrics"
)

const (
	classifyPrompt = "Classify the guest message into exactly one label: receptionist, restaurant, room_service. " +
		"restaurant = any food/drink/menu/order/billing intent (coffee, tea, juice, snacks, meals). " +
		"room_service = cleaning, laundry, towels, toiletries, toothpaste, toothbrush, pillow, blankets, amenities. " +
		"receptionist = general FAQs (check-in/out, gym, spa, pool) or room availability. " +
		"Return only the label."

	detectIntentsPrompt = "Given a guest message, indicate which departments are needed. " +
		"Return JSON with booleans: restaurant, room_service, receptionist. " +
		"restaurant for food/menu/orders/billing; room_service for cleaning/laundry/amenities " +
		"(towels, toothpaste, toothbrush, pillow, blankets); receptionist for general FAQs or room availability. " +
		"Set true for all that apply; false otherwise."

	extractOrderPrompt = "Extract restaurant order details. " +
		"Return JSON with fields: items (list of {name, quantity}), special_notes (string, optional)."

	extractRoomServicePrompt = "Extract room service request. " +
		"Return JSON with fields: request_type (cleaning, laundry, toiletries, toothpaste, toothbrush, pillow, blankets, towels), " +
		"and quantity if applicable."
)

// Client is the LLM gateway. The zero-credential client is valid: Available
// reports false and every call short-circuits to absent without a network
// attempt.
type Client struct {
	api    *openai.Client
	model  string
	logger logger.Logger

	mu            sync.Mutex
	lastError     string
	lastRequestID string
}

// New builds a gateway from config. A missing API key leaves the client in
// the unavailable state rather than returning an error.
func New(cfg config.OpenAIConfig, log logger.Logger) *Client {
	c := &Client{
		model:  cfg.Model,
		logger: log.WithFields(map[string]interface{}{"component": "llm-gateway"}),
	}
	if cfg.APIKey == "" {
		c.lastError = "openai client not initialized (missing api key)"
		return c
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	c.api = openai.NewClientWithConfig(oc)
	return c
}

// Available reports whether an oracle binding exists.
func (c *Client) Available() bool {
	return c.api != nil
}

// ClassifyDepartment asks for a single department label. Returns "" when the
// gateway is unavailable or the call fails.
func (c *Client) ClassifyDepartment(ctx context.Context, message string) string {
	if !c.Available() {
		return ""
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   4,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		c.recordFailure("classify_department", err)
		return ""
	}
	c.recordSuccess("classify_department", resp.ID)
	if len(resp.Choices) == 0 {
		return ""
	}
	label := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	if fields := strings.Fields(label); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// DetectIntents asks which departments a message concerns. Returns nil when
// absent; callers must fall back to heuristics.
func (c *Client) DetectIntents(ctx context.Context, message string) *IntentFlags {
	if !c.Available() {
		return nil
	}
	var flags IntentFlags
	if !c.completeJSON(ctx, "detect_intents", detectIntentsPrompt, message, &flags) {
		return nil
	}
	return &flags
}

// ExtractOrder pulls {items, special_notes} from an order message. Returns
// nil when absent.
func (c *Client) ExtractOrder(ctx context.Context, message string) *OrderExtraction {
	if !c.Available() {
		return nil
	}
	var out OrderExtraction
	if !c.completeJSON(ctx, "extract_order", extractOrderPrompt, message, &out) {
		return nil
	}
	return &out
}

// ExtractRoomService pulls a request_type (of whatever shape the model chose)
// from an amenity message. Returns nil when absent.
func (c *Client) ExtractRoomService(ctx context.Context, message string) *RoomServiceExtraction {
	if !c.Available() {
		return nil
	}
	var out RoomServiceExtraction
	if !c.completeJSON(ctx, "extract_room_service", extractRoomServicePrompt, message, &out) {
		return nil
	}
	return &out
}

// Health returns a snapshot without raising.
func (c *Client) Health() HealthStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return HealthStatus{
		Available:     c.Available(),
		Model:         c.model,
		LastError:     c.lastError,
		LastRequestID: c.lastRequestID,
	}
}

// completeJSON runs a JSON-mode chat completion and decodes the reply into
// out. Reports false on any failure.
func (c *Client) completeJSON(ctx context.Context, operation, systemPrompt, message string, out interface{}) bool {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          c.model,
		Temperature:    0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		c.recordFailure(operation, err)
		return false
	}
	if len(resp.Choices) == 0 {
		c.recordFailure(operation, errEmptyCompletion)
		return false
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		c.recordFailure(operation, err)
		return false
	}
	c.recordSuccess(operation, resp.ID)
	return true
}

func (c *Client) recordFailure(operation string, err error) {
	oerr := cerrors.NewOracleFailureError(err)
	c.mu.Lock()
	c.lastError = oerr.Error()
	c.mu.Unlock()
	metrics.LLMCalls.WithLabelValues(operation, "error").Inc()
	c.logger.Warn("llm call failed", map[string]interface{}{
		"operation": operation,
		"error":     oerr.Error(),
	})
}

func (c *Client) recordSuccess(operation, requestID string) {
	c.mu.Lock()
	c.lastRequestID = requestID
	c.mu.Unlock()
	metrics.LLMCalls.WithLabelValues(operation, "ok").Inc()
}
