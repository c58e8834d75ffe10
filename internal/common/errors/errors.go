// internal/common/errors/errors.go
package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a failure class in the concierge pipeline.
type ErrorCode string

const (
	// Oracle failure: any LLM gateway transport/auth/parse error. Recovered
	// by heuristic fallback, never surfaced to the guest.
	CodeOracleFailure ErrorCode = "ORACLE_FAILURE"

	// Malformed extraction: the gateway returned a structurally unexpected
	// payload (wrong request_type shape, empty item list).
	CodeMalformedExtraction ErrorCode = "MALFORMED_EXTRACTION"

	// Missing context: no room number resolvable for a persisted record.
	// Surfaces as a clarification reply, not a fault.
	CodeMissingContext ErrorCode = "MISSING_CONTEXT"

	// History lookup: a collaborator query failed; treated as "no history".
	CodeHistoryLookupFailed ErrorCode = "HISTORY_LOOKUP_FAILED"

	// Persistence: a write to the store failed.
	CodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"

	// Partial multi-intent: one domain agent errored during combination and
	// was skipped.
	CodeAgentSkipped ErrorCode = "AGENT_SKIPPED"
)

// StandardError is the structured error carried across internal boundaries.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewOracleFailureError(err error) *StandardError {
	return &StandardError{
		Code:      CodeOracleFailure,
		Message:   "llm gateway call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now(),
	}
}

func NewMalformedExtractionError(details string) *StandardError {
	return &StandardError{
		Code:      CodeMalformedExtraction,
		Message:   "gateway returned an unexpected payload shape",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

func NewMissingContextError(details string) *StandardError {
	return &StandardError{
		Code:      CodeMissingContext,
		Message:   "required context missing from message and history",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now(),
	}
}

func NewHistoryLookupError(err error) *StandardError {
	return &StandardError{
		Code:      CodeHistoryLookupFailed,
		Message:   "conversation history query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now(),
	}
}

func NewPersistenceError(recordType string, err error) *StandardError {
	return &StandardError{
		Code:      CodePersistenceFailed,
		Message:   fmt.Sprintf("failed to persist %s", recordType),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now(),
	}
}

func NewAgentSkippedError(department string, err error) *StandardError {
	return &StandardError{
		Code:      CodeAgentSkipped,
		Message:   fmt.Sprintf("%s agent skipped", department),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now(),
	}
}
