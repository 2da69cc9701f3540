package draft

import "fmt"

// DraftError is a custom error type for draft-related errors
type DraftError string

// Error implements the error interface
func (e DraftError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotYourTurn      DraftError = "not your turn to pick"
	ErrUnknownToken     DraftError = "no undrafted player has that token"
	ErrDraftNotActive   DraftError = "draft is not in progress"
	ErrNilConfig        DraftError = "config cannot be nil"
	ErrNilRandom        DraftError = "random source cannot be nil"
	ErrOddSize          DraftError = "draft size must be even and at least 2"
	ErrAlphabetTooSmall DraftError = "token alphabet is smaller than the undrafted pool"
)

// PreconditionError reports an operation invoked while its precondition
// did not hold. It signals a caller bug, never a user action.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("draft: %s: precondition failed: %s", e.Op, e.Reason)
}
