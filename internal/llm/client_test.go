// internal/llm/client_test.go
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/config"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
)

// newStubServer fakes the chat completions endpoint, returning content as the
// assistant message body.
func newStubServer(t *testing.T, content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"chatcmpl-test","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
	}))
}

func newStubClient(t *testing.T, content string) *Client {
	ts := newStubServer(t, content)
	t.Cleanup(ts.Close)
	return New(config.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: ts.URL,
	}, logger.NewNoOpLogger())
}

func TestNew_MissingKeyLeavesClientUnavailable(t *testing.T) {
	c := New(config.OpenAIConfig{Model: "gpt-4o-mini"}, logger.NewNoOpLogger())

	assert.False(t, c.Available())
	assert.Empty(t, c.ClassifyDepartment(context.Background(), "pizza please"))
	assert.Nil(t, c.DetectIntents(context.Background(), "pizza please"))
	assert.Nil(t, c.ExtractOrder(context.Background(), "pizza please"))
	assert.Nil(t, c.ExtractRoomService(context.Background(), "towels please"))

	health := c.Health()
	assert.False(t, health.Available)
	assert.Equal(t, "gpt-4o-mini", health.Model)
	assert.Contains(t, health.LastError, "missing api key")
}

func TestClassifyDepartment(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"clean label", "restaurant", "restaurant"},
		{"mixed case with whitespace", "  Room_Service  ", "room_service"},
		{"chatty reply keeps first field", "restaurant because food", "restaurant"},
		{"empty reply", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStubClient(t, tt.content)
			assert.Equal(t, tt.expected, c.ClassifyDepartment(context.Background(), "msg"))
		})
	}
}

func TestDetectIntents(t *testing.T) {
	c := newStubClient(t, `{"restaurant": true, "room_service": true, "receptionist": false}`)

	flags := c.DetectIntents(context.Background(), "coffee and towels")
	require.NotNil(t, flags)
	assert.True(t, flags.Restaurant)
	assert.True(t, flags.RoomService)
	assert.False(t, flags.Receptionist)
}

func TestExtractOrder_QuantityShapesPreserved(t *testing.T) {
	c := newStubClient(t, `{"items": [{"name": "Margherita Pizza", "quantity": "two"}, {"name": "Coffee", "quantity": 1}], "special_notes": "extra hot"}`)

	out := c.ExtractOrder(context.Background(), "two pizzas and a coffee")
	require.NotNil(t, out)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "two", out.Items[0].Quantity)
	assert.Equal(t, float64(1), out.Items[1].Quantity)
	assert.Equal(t, "extra hot", out.SpecialNotes)
}

func TestExtractRoomService_UnionShapesPreserved(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, raw interface{})
	}{
		{
			name:    "string",
			content: `{"request_type": "towels"}`,
			check: func(t *testing.T, raw interface{}) {
				assert.Equal(t, "towels", raw)
			},
		},
		{
			name:    "list",
			content: `{"request_type": ["towels", "pillow"]}`,
			check: func(t *testing.T, raw interface{}) {
				assert.IsType(t, []interface{}{}, raw)
			},
		},
		{
			name:    "object",
			content: `{"request_type": {"request_type": "clean"}}`,
			check: func(t *testing.T, raw interface{}) {
				assert.IsType(t, map[string]interface{}{}, raw)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStubClient(t, tt.content)
			out := c.ExtractRoomService(context.Background(), "msg")
			require.NotNil(t, out)
			tt.check(t, out.RequestType)
		})
	}
}

func TestClient_TransportFailureRecorded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	c := New(config.OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: ts.URL}, logger.NewNoOpLogger())

	assert.Nil(t, c.DetectIntents(context.Background(), "msg"))
	assert.Empty(t, c.ClassifyDepartment(context.Background(), "msg"))

	health := c.Health()
	assert.True(t, health.Available)
	assert.NotEmpty(t, health.LastError)
}

func TestClient_MalformedJSONRecorded(t *testing.T) {
	c := newStubClient(t, "not json at all")

	assert.Nil(t, c.DetectIntents(context.Background(), "msg"))
	assert.NotEmpty(t, c.Health().LastError)
}

func TestClient_SuccessRecordsRequestID(t *testing.T) {
	c := newStubClient(t, `{"restaurant": true, "room_service": false, "receptionist": false}`)

	require.NotNil(t, c.DetectIntents(context.Background(), "msg"))
	assert.Equal(t, "chatcmpl-test", c.Health().LastRequestID)
}
