package game

import (
	"errors"
	"fmt"
)

// PlayErrorCode categorizes rejected card selections.
type PlayErrorCode string

const (
	// ErrCodeTooManyCards indicates the selection exceeds the per-turn cap.
	ErrCodeTooManyCards PlayErrorCode = "TOO_MANY_CARDS"

	// ErrCodeDuplicateCard indicates two selected cards share a name.
	ErrCodeDuplicateCard PlayErrorCode = "DUPLICATE_CARD"

	// ErrCodeNotInHand indicates a selected card is not currently held.
	ErrCodeNotInHand PlayErrorCode = "NOT_IN_HAND"
)

// PlayError rejects a card selection. Recoverable: the confirm is
// refused outright, no state changes, and the player re-selects.
// Distinct from a convergence failure - "these choices are not
// allowed" versus "the economy could not be solved with these
// choices".
type PlayError struct {
	Code    PlayErrorCode
	Message string
	Card    string // offending card name, when one exists
}

// Error implements the error interface.
func (e *PlayError) Error() string {
	if e.Card != "" {
		return fmt.Sprintf("%s: %s (card=%q)", e.Code, e.Message, e.Card)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPlayError reports whether err is a PlayError.
// Uses errors.As to handle wrapped errors.
func IsPlayError(err error) bool {
	var pe *PlayError
	return errors.As(err, &pe)
}

// PhaseError reports an operation invoked in a phase that does not
// permit it, e.g. confirming a turn before a character is selected.
type PhaseError struct {
	Op    string
	Phase Phase
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("operation %s not allowed in phase %s", e.Op, e.Phase)
}

// IsPhaseError reports whether err is a PhaseError.
func IsPhaseError(err error) bool {
	var pe *PhaseError
	return errors.As(err, &pe)
}
