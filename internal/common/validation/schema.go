// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// chatRequestSchema validates the inbound /api/chat body before it reaches
// the pipeline.
const chatRequestSchema = `{
	"type": "object",
	"properties": {
		"message": {"type": "string", "minLength": 1, "maxLength": 4000},
		"room_number": {"type": "string", "maxLength": 10},
		"conversation_id": {"type": "string", "maxLength": 64}
	},
	"required": ["message"],
	"additionalProperties": false
}`

var chatRequestLoader = gojsonschema.NewStringLoader(chatRequestSchema)

// ValidateChatRequest checks raw JSON against the chat request schema and
// returns a single flattened error message on failure.
func ValidateChatRequest(body []byte) error {
	result, err := gojsonschema.Validate(chatRequestLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("invalid request body: %s", strings.Join(msgs, "; "))
}
