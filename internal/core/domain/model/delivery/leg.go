package delivery

import (
	"errors"
	"fmt"
	"time"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"
	"relaypost/internal/pkg/guard"
)

var (
	// ErrLegIsNotConstructed indicates that the Leg was not properly
	// initialized through the NewLeg or RestoreLeg constructor functions.
	ErrLegIsNotConstructed = errors.New("Leg must be created via NewLeg constructor")

	// ErrLegAlreadyCompleted indicates an attempt to complete a leg that has
	// already been closed by a drop-off.
	ErrLegAlreadyCompleted = errors.New("leg is already completed")
)

// LegStatus represents the state of a single leg: a courier either still
// carries the package (InProgress) or has dropped it off (LegCompleted).
type LegStatus int

const (
	// LegUnknown represents an invalid or undefined leg status.
	LegUnknown LegStatus = iota

	// InProgress means the courier has picked the package up and has not yet
	// dropped it off.
	InProgress

	// LegCompleted means the leg was closed by a drop-off and its distance
	// and earnings are final.
	LegCompleted
)

// getLegStatusStrings returns a map of LegStatus values to their string
// representations.
func getLegStatusStrings() map[LegStatus]string {
	return map[LegStatus]string{
		LegUnknown:   "Unknown",
		InProgress:   "InProgress",
		LegCompleted: "Completed",
	}
}

// LegStatusFromString parses the persisted string representation of a leg status.
func LegStatusFromString(s string) (LegStatus, error) {
	for status, str := range getLegStatusStrings() {
		if status != LegUnknown && str == s {
			return status, nil
		}
	}
	return LegUnknown, errs.NewValueIsInvalidErrorWithCause("legStatus is invalid",
		fmt.Errorf("%q is not a valid leg status", s))
}

// Validate checks if the LegStatus value is valid.
func (s LegStatus) Validate() error {
	if s != InProgress && s != LegCompleted {
		return errs.NewValueIsInvalidErrorWithCause("legStatus is invalid",
			fmt.Errorf("%d is not a valid leg status", s))
	}
	return nil
}

// String returns the human-readable name of the leg status.
func (s LegStatus) String() string {
	if str, ok := getLegStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Leg represents one courier's carry of a delivery between two access points.
// It is a child entity of the Delivery aggregate and is only mutated through
// the aggregate root.
//
// A leg opens at claim time with a provisional destination and closes at
// drop-off time, when its actual endpoint, hop distance, and earnings become
// final.
//
// Key business rules:
//   - Must be constructed through NewLeg or RestoreLeg
//   - An open leg has no drop-off time, zero distance, and zero earnings
//   - A leg can be completed at most once
type Leg struct {
	// id uniquely identifies the leg
	id kernel.UUID

	// courierID identifies the account carrying this leg
	courierID kernel.UUID

	// from is the access point where the courier picked the package up
	from kernel.UUID

	// to is the access point where the leg ends. Provisional while the leg
	// is open, final after drop-off.
	to kernel.UUID

	// pickupAt is when the courier claimed the package
	pickupAt time.Time

	// dropoffAt is when the courier dropped the package off, nil while open
	dropoffAt *time.Time

	// distance is the hop count actually carried, final after drop-off
	distance int

	// earnings is the points credited to the courier for this leg
	earnings kernel.Points

	// status tracks whether the leg is open or closed
	status LegStatus

	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// NewLeg opens a new leg for a courier picking the package up.
//
// The destination is provisional: a courier may drop the package off at any
// access point on the planned path, and Complete records where the leg
// actually ended.
//
// Parameters:
//   - id: Unique identifier for the leg
//   - courierID: Account of the courier carrying the leg
//   - from: Access point where the package was picked up
//   - to: Provisional destination access point
//   - pickupAt: Pickup timestamp
//
// Returns:
//   - *Leg: An open leg with zero distance and earnings
//   - error: Aggregated validation errors, if any
func NewLeg(id kernel.UUID, courierID kernel.UUID, from kernel.UUID, to kernel.UUID, pickupAt time.Time) (*Leg, error) {
	leg := &Leg{
		status:   InProgress,
		earnings: kernel.ZeroPoints(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		leg.setID(id),
		leg.setCourierID(courierID),
		leg.setFrom(from),
		leg.setTo(to),
		leg.setPickupAt(pickupAt),
	); err != nil {
		return nil, err
	}

	return leg, nil
}

// RestoreLeg reconstructs a Leg from persistent storage, including its
// completion state. The restored leg behaves identically to one created
// through normal domain operations.
func RestoreLeg(
	id kernel.UUID,
	courierID kernel.UUID,
	from kernel.UUID,
	to kernel.UUID,
	pickupAt time.Time,
	dropoffAt *time.Time,
	distance int,
	earnings kernel.Points,
	status LegStatus,
) (*Leg, error) {
	leg := &Leg{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		leg.setID(id),
		leg.setCourierID(courierID),
		leg.setFrom(from),
		leg.setTo(to),
		leg.setPickupAt(pickupAt),
		leg.setDistance(distance),
		leg.setEarnings(earnings),
		leg.setStatus(status),
	); err != nil {
		return nil, err
	}

	if status == LegCompleted && dropoffAt == nil {
		return nil, errs.NewValueIsRequiredError("dropoffAt is required for a completed leg")
	}
	leg.dropoffAt = dropoffAt

	return leg, nil
}

// IsEqual compares two legs by their unique identifiers.
func (l *Leg) IsEqual(other *Leg) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the leg's unique identifier.
func (l *Leg) ID() kernel.UUID {
	return l.id
}

// CourierID returns the account of the courier carrying this leg.
func (l *Leg) CourierID() kernel.UUID {
	return l.courierID
}

// From returns the access point where the leg started.
func (l *Leg) From() kernel.UUID {
	return l.from
}

// To returns the access point where the leg ends.
// Provisional while the leg is open.
func (l *Leg) To() kernel.UUID {
	return l.to
}

// PickupAt returns the pickup timestamp.
func (l *Leg) PickupAt() time.Time {
	return l.pickupAt
}

// DropoffAt returns the drop-off timestamp, nil while the leg is open.
func (l *Leg) DropoffAt() *time.Time {
	return l.dropoffAt
}

// Distance returns the hop count carried on this leg.
// Zero while the leg is open.
func (l *Leg) Distance() int {
	return l.distance
}

// Earnings returns the points credited to the courier for this leg.
// Zero while the leg is open.
func (l *Leg) Earnings() kernel.Points {
	return l.earnings
}

// Status returns the current leg status.
func (l *Leg) Status() LegStatus {
	return l.status
}

// IsOpen reports whether the courier still carries the package.
func (l *Leg) IsOpen() bool {
	return l.status == InProgress
}

// Complete closes the leg at a drop-off.
//
// Business rules enforced:
//   - The leg must still be open (ErrLegAlreadyCompleted otherwise)
//   - The actual endpoint must be a valid access point id
//   - Distance must be non-negative and earnings must be constructed
//
// Parameters:
//   - to: Access point where the package was actually dropped off
//   - dropoffAt: Drop-off timestamp
//   - distance: Hop distance between the leg's endpoints
//   - earnings: Points owed to the courier for this leg
func (l *Leg) Complete(to kernel.UUID, dropoffAt time.Time, distance int, earnings kernel.Points) error {
	if l.status != InProgress {
		return ErrLegAlreadyCompleted
	}

	if err := errors.Join(
		l.setTo(to),
		l.setDistance(distance),
		l.setEarnings(earnings),
	); err != nil {
		return err
	}

	l.dropoffAt = &dropoffAt
	l.status = LegCompleted
	return nil
}

// Validate checks if the Leg was properly constructed.
func (l *Leg) Validate() error {
	if l == nil {
		return ErrLegIsNotConstructed
	}
	return l.guard.Validate(ErrLegIsNotConstructed)
}

func (l *Leg) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

func (l *Leg) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	l.courierID = courierID
	return nil
}

func (l *Leg) setFrom(from kernel.UUID) error {
	if err := from.Validate(); err != nil {
		return err
	}

	l.from = from
	return nil
}

func (l *Leg) setTo(to kernel.UUID) error {
	if err := to.Validate(); err != nil {
		return err
	}

	l.to = to
	return nil
}

func (l *Leg) setPickupAt(pickupAt time.Time) error {
	if pickupAt.IsZero() {
		return errs.NewValueIsRequiredError("pickupAt is required")
	}

	l.pickupAt = pickupAt
	return nil
}

func (l *Leg) setDistance(distance int) error {
	if distance < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", distance),
		)
	}

	l.distance = distance
	return nil
}

func (l *Leg) setEarnings(earnings kernel.Points) error {
	if err := earnings.Validate(); err != nil {
		return err
	}

	l.earnings = earnings
	return nil
}

func (l *Leg) setStatus(status LegStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	l.status = status
	return nil
}
