package delivery

import (
	"errors"
	"fmt"

	"relaypost/internal/pkg/errs"
)

// ErrStatusConflict is returned when a lifecycle transition is requested from
// a status that does not allow it, for example claiming a delivery that is
// already in transit. Callers can detect it with errors.Is to translate the
// failure into a conflict response.
var ErrStatusConflict = errors.New("delivery status conflict")

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the relay workflow.
//
// State transitions:
//
//	AwaitingPickup ──> InTransit ──> ReadyForRecipient ──> Completed
//	       ^               │
//	       └───────────────┘
//	  (drop-off short of the destination)
//
// Any non-terminal status may additionally transition to Cancelled.
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// AwaitingPickup means the package sits at an access point waiting for a
	// courier to claim it. This is the initial status and the status a
	// delivery returns to after being dropped off short of the destination.
	AwaitingPickup

	// InTransit means a courier has claimed the package and carries it on an
	// open leg.
	InTransit

	// ReadyForRecipient means the package has reached the destination access
	// point and waits for the recipient to present the verification code.
	ReadyForRecipient

	// Completed means the recipient picked the package up and any unused
	// escrow has been released. This is a final state.
	Completed

	// Cancelled is a reserved terminal state. No current flow produces it,
	// but persisted records may carry it.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		AwaitingPickup:    "AwaitingPickup",
		InTransit:         "InTransit",
		ReadyForRecipient: "ReadyForRecipient",
		Completed:         "Completed",
		Cancelled:         "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		AwaitingPickup:    "AwaitingPickup",
		InTransit:         "InTransit",
		ReadyForRecipient: "ReadyForRecipient",
		Completed:         "Completed",
		Cancelled:         "Cancelled",
	}
}

// StatusFromString parses the persisted string representation of a status.
//
// Returns:
//   - the matching Status for a known representation
//   - error if the string does not name a valid status
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: AwaitingPickup, InTransit, ReadyForRecipient,
// Completed, Cancelled. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Claim transitions the status to InTransit.
//
// Valid transitions:
//   - AwaitingPickup -> InTransit (courier picks the package up)
//
// Returns:
//   - (InTransit, nil) on valid transition
//   - (0, error wrapping ErrStatusConflict) otherwise
//
// This method is used by Delivery.Claim() to enforce state transitions.
func (s Status) Claim() (Status, error) {
	if s != AwaitingPickup {
		return 0, fmt.Errorf("%w: %s is not a valid status to claim", ErrStatusConflict, s.String())
	}

	return InTransit, nil
}

// Dropoff transitions the status after a courier drops the package off.
//
// Valid transitions:
//   - InTransit -> ReadyForRecipient when atDestination is true
//   - InTransit -> AwaitingPickup when atDestination is false, so the next
//     courier can claim the following hop
//
// Returns:
//   - the resulting status on valid transition
//   - (0, error wrapping ErrStatusConflict) if no leg is in transit
//
// This method is used by Delivery.CompleteLeg() to enforce state transitions.
func (s Status) Dropoff(atDestination bool) (Status, error) {
	if s != InTransit {
		return 0, fmt.Errorf("%w: %s is not a valid status to drop off", ErrStatusConflict, s.String())
	}

	if atDestination {
		return ReadyForRecipient, nil
	}
	return AwaitingPickup, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - ReadyForRecipient -> Completed (recipient picked the package up)
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error wrapping ErrStatusConflict) otherwise
//
// This method is used by Delivery.ConfirmReceipt() to enforce state
// transitions. Completed is a final state with no further transitions.
func (s Status) Complete() (Status, error) {
	if s != ReadyForRecipient {
		return 0, fmt.Errorf("%w: %s is not a valid status to complete", ErrStatusConflict, s.String())
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions: any non-terminal status -> Cancelled.
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error wrapping ErrStatusConflict) if the status is already terminal
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s is not a valid status to cancel", ErrStatusConflict, s.String())
	}

	return Cancelled, nil
}
