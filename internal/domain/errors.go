package domain

import (
	"errors"
	"fmt"
)

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "eacsearch:"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrSessionNotFound signals an unknown or expired session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidSelection signals a selection that cannot be decoded.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrTransitionRefused signals a state transition the machine did not accept.
	ErrTransitionRefused = errors.New("transition refused")
	// ErrUnknownAction signals an action name no state machine knows.
	ErrUnknownAction = errors.New("unknown action")
	// ErrEmptyQuery signals a query with nothing to embed.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// TransitionError wraps ErrTransitionRefused with the action and current mode.
type TransitionError struct {
	Action string
	Mode   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s not allowed in mode %s", ErrTransitionRefused.Error(), e.Action, e.Mode)
}

func (e *TransitionError) Unwrap() error { return ErrTransitionRefused }

// NewTransitionRefused creates a transition refusal error.
func NewTransitionRefused(action, mode string) error {
	return &TransitionError{Action: action, Mode: mode}
}
