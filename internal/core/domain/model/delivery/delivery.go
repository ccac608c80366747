package delivery

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"
	"relaypost/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery. This ensures all
	// deliveries are properly validated.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrNotAssignedCourier is returned when a courier tries to drop off a
	// delivery that is assigned to somebody else.
	ErrNotAssignedCourier = errors.New("courier is not assigned to this delivery")

	// ErrNoOpenLeg is returned when a drop-off finds no leg in progress.
	ErrNoOpenLeg = errors.New("delivery has no open leg")

	// ErrPaidExceedsReserved is returned when crediting a courier would push
	// the total paid amount past the escrowed reservation.
	ErrPaidExceedsReserved = errors.New("paid amount would exceed reserved amount")

	// ErrInvalidCode is returned when the recipient presents a verification
	// code that does not match the one generated at initiation.
	ErrInvalidCode = errors.New("verification code does not match")
)

// Delivery is the aggregate root for one relayed shipment. It owns the
// planned path, escrow counters, the ordered sequence of legs, and the
// lifecycle status, and it is the only place those are mutated.
//
// Delivery maintains these invariants:
//   - plannedPath starts at the origin access point, ends at the destination
//     access point, and has at least two entries
//   - reservedAmount never changes after construction and paidAmount never
//     exceeds it or decreases
//   - the sum of completed leg earnings equals paidAmount
//   - at most one leg is open, and exactly one is open iff status is InTransit
//   - progress is monotonically non-decreasing
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through Claim, CompleteLeg, and ConfirmReceipt.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// productID references the shipped product (nil if none was supplied)
	productID *kernel.UUID

	// shipperID is the account that initiated and funded the delivery
	shipperID kernel.UUID

	// courierID is the courier currently carrying the package (nil between legs)
	courierID *kernel.UUID

	// originAP and destinationAP are the endpoint access points
	originAP      kernel.UUID
	destinationAP kernel.UUID

	// plannedPath is the ordered access point sequence from origin to destination
	plannedPath []kernel.UUID

	// currentAP is where the package currently sits or was last picked up
	currentAP kernel.UUID

	// status is the current lifecycle state
	status Status

	// legs is the ordered history of carries, oldest first
	legs []*Leg

	// totalCost is the full delivery price computed at initiation
	totalCost kernel.Points

	// reservedAmount is the escrow pool debited from the shipper, fixed at initiation
	reservedAmount kernel.Points

	// paidAmount is the running total credited to couriers
	paidAmount kernel.Points

	// estimatedDistance is the planned hop count between origin and destination
	estimatedDistance int

	// actualDistance accumulates the hops actually carried across all legs
	actualDistance int

	// progress is the completed fraction of the planned path, in [0, 1]
	progress float64

	// verificationCode is the shared secret the recipient must present
	verificationCode string

	// createdAt is when the delivery was initiated
	createdAt time.Time

	// completedAt is when the recipient picked the package up (nil until then)
	completedAt *time.Time

	// guard ensures the aggregate was properly initialized
	guard guard.ConstructorGuard
}

// NewDelivery creates a new Delivery at initiation time. This is the only way
// to create a valid Delivery, ensuring all business invariants hold.
//
// The delivery starts in AwaitingPickup at the origin access point with the
// whole cost reserved, nothing paid, no legs, and zero progress.
//
// Parameters:
//   - id: Unique identifier for the delivery
//   - productID: Optional reference to the shipped product
//   - shipperID: Account funding the delivery
//   - plannedPath: Ordered access point sequence, origin first, destination
//     last, at least two entries
//   - estimatedDistance: Hop count between origin and destination stations
//   - totalCost: Price computed from the estimated distance
//   - verificationCode: Opaque secret the recipient must present at pickup
//   - createdAt: Initiation timestamp
//
// Returns:
//   - *Delivery: the created delivery if all validations pass
//   - error: Aggregated validation errors, if any
func NewDelivery(
	id kernel.UUID,
	productID *kernel.UUID,
	shipperID kernel.UUID,
	plannedPath []kernel.UUID,
	estimatedDistance int,
	totalCost kernel.Points,
	verificationCode string,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:   AwaitingPickup,
		progress: 0,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setProductID(productID),
		d.setShipperID(shipperID),
		d.setPlannedPath(plannedPath),
		d.setEstimatedDistance(estimatedDistance),
		d.setTotalCost(totalCost),
		d.setVerificationCode(verificationCode),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	d.currentAP = d.originAP
	d.reservedAmount = d.totalCost
	d.paidAmount = kernel.ZeroPoints()

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistent storage, including
// its legs and escrow counters. The restored delivery behaves identically to
// one created through normal domain operations.
//
// Restoration re-validates the path shape and the escrow bound so a corrupted
// record cannot re-enter the domain.
func RestoreDelivery(
	id kernel.UUID,
	productID *kernel.UUID,
	shipperID kernel.UUID,
	courierID *kernel.UUID,
	plannedPath []kernel.UUID,
	currentAP kernel.UUID,
	status Status,
	legs []*Leg,
	totalCost kernel.Points,
	reservedAmount kernel.Points,
	paidAmount kernel.Points,
	estimatedDistance int,
	actualDistance int,
	progress float64,
	verificationCode string,
	createdAt time.Time,
	completedAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setProductID(productID),
		d.setShipperID(shipperID),
		d.setCourierID(courierID),
		d.setPlannedPath(plannedPath),
		d.setCurrentAP(currentAP),
		d.setStatus(status),
		d.setLegs(legs),
		d.setTotalCost(totalCost),
		d.setEstimatedDistance(estimatedDistance),
		d.setActualDistance(actualDistance),
		d.setProgress(progress),
		d.setVerificationCode(verificationCode),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if err := errors.Join(reservedAmount.Validate(), paidAmount.Validate()); err != nil {
		return nil, err
	}
	if reservedAmount.LessThan(paidAmount) {
		return nil, ErrPaidExceedsReserved
	}
	d.reservedAmount = reservedAmount
	d.paidAmount = paidAmount
	d.completedAt = completedAt

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
//
// This method should be called when reconstructing deliveries from
// persistence to ensure data integrity.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// ProductID returns the optional product reference, nil if none.
func (d *Delivery) ProductID() *kernel.UUID {
	return d.productID
}

// ShipperID returns the account that funds the delivery.
func (d *Delivery) ShipperID() kernel.UUID {
	return d.shipperID
}

// CourierID returns the currently assigned courier's account.
// Returns nil while the package waits at an access point.
func (d *Delivery) CourierID() *kernel.UUID {
	return d.courierID
}

// OriginAP returns the origin access point.
func (d *Delivery) OriginAP() kernel.UUID {
	return d.originAP
}

// DestinationAP returns the destination access point.
func (d *Delivery) DestinationAP() kernel.UUID {
	return d.destinationAP
}

// PlannedPath returns a copy of the ordered access point sequence the
// delivery is expected to follow.
func (d *Delivery) PlannedPath() []kernel.UUID {
	path := make([]kernel.UUID, len(d.plannedPath))
	copy(path, d.plannedPath)
	return path
}

// CurrentAP returns the access point where the package currently sits or was
// last picked up from.
func (d *Delivery) CurrentAP() kernel.UUID {
	return d.currentAP
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// Legs returns the carry history, oldest first.
func (d *Delivery) Legs() []*Leg {
	legs := make([]*Leg, len(d.legs))
	copy(legs, d.legs)
	return legs
}

// OpenLeg returns the leg currently in progress, or nil if none is open.
func (d *Delivery) OpenLeg() *Leg {
	for _, leg := range d.legs {
		if leg.IsOpen() {
			return leg
		}
	}
	return nil
}

// TotalCost returns the full delivery price computed at initiation.
func (d *Delivery) TotalCost() kernel.Points {
	return d.totalCost
}

// ReservedAmount returns the escrow pool debited from the shipper.
func (d *Delivery) ReservedAmount() kernel.Points {
	return d.reservedAmount
}

// PaidAmount returns the running total credited to couriers.
func (d *Delivery) PaidAmount() kernel.Points {
	return d.paidAmount
}

// UnusedAmount returns the escrow left after all courier payouts so far.
// This is what the shipper gets back at completion.
func (d *Delivery) UnusedAmount() kernel.Points {
	unused, err := d.reservedAmount.Sub(d.paidAmount)
	if err != nil {
		// reservedAmount >= paidAmount is enforced on every mutation
		return kernel.ZeroPoints()
	}
	return unused
}

// EstimatedDistance returns the planned hop count between origin and
// destination.
func (d *Delivery) EstimatedDistance() int {
	return d.estimatedDistance
}

// ActualDistance returns the hops actually carried across all legs.
func (d *Delivery) ActualDistance() int {
	return d.actualDistance
}

// Progress returns the completed fraction of the planned path, in [0, 1].
func (d *Delivery) Progress() float64 {
	return d.progress
}

// VerificationCode returns the shared secret the recipient must present.
// Exposed for persistence only; comparison goes through ConfirmReceipt.
func (d *Delivery) VerificationCode() string {
	return d.verificationCode
}

// CreatedAt returns the initiation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// CompletedAt returns the final pickup timestamp, nil until completion.
func (d *Delivery) CompletedAt() *time.Time {
	return d.completedAt
}

// Claim assigns a courier to the delivery and opens a new leg.
//
// Business rules enforced:
//   - The delivery must be AwaitingPickup with no assigned courier
//     (ErrStatusConflict otherwise)
//   - The courier ID must be valid
//
// The new leg starts at the current access point with the destination as its
// provisional endpoint. After a successful claim the delivery is InTransit.
//
// Note that Claim only enforces the aggregate-local rules. The atomicity of
// competing claims across processes is the repository's concern.
func (d *Delivery) Claim(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if d.courierID != nil {
		return fmt.Errorf("%w: delivery is already assigned to a courier", ErrStatusConflict)
	}

	newStatus, err := d.status.Claim()
	if err != nil {
		return err
	}

	leg, err := NewLeg(kernel.NewUUID(), courierID, d.currentAP, d.destinationAP, now)
	if err != nil {
		return err
	}

	d.legs = append(d.legs, leg)
	d.courierID = &courierID
	d.status = newStatus
	return nil
}

// CompleteLeg closes the open leg at a drop-off and advances the delivery.
//
// Business rules enforced:
//   - courierID must match the assigned courier (ErrNotAssignedCourier)
//   - An open leg must exist (ErrNoOpenLeg)
//   - The payout must fit in the remaining escrow (ErrPaidExceedsReserved)
//
// On success the leg is completed with the given distance and earnings,
// paidAmount and actualDistance grow, progress advances (never regresses),
// the courier assignment is cleared, and the status becomes ReadyForRecipient
// when the drop-off landed on the destination or AwaitingPickup otherwise.
//
// Returns:
//   - bool: whether the package reached the destination access point
//   - error: the violated rule, with no state change
func (d *Delivery) CompleteLeg(
	courierID kernel.UUID,
	toAP kernel.UUID,
	now time.Time,
	legDistance int,
	earnings kernel.Points,
	newProgress float64,
) (bool, error) {
	if err := errors.Join(courierID.Validate(), toAP.Validate()); err != nil {
		return false, err
	}

	if d.courierID == nil || !d.courierID.IsEqual(courierID) {
		return false, ErrNotAssignedCourier
	}

	leg := d.OpenLeg()
	if leg == nil {
		return false, ErrNoOpenLeg
	}

	atDestination := toAP.IsEqual(d.destinationAP)

	newStatus, err := d.status.Dropoff(atDestination)
	if err != nil {
		return false, err
	}

	newPaid, err := d.paidAmount.Add(earnings)
	if err != nil {
		return false, err
	}
	if d.reservedAmount.LessThan(newPaid) {
		return false, ErrPaidExceedsReserved
	}

	if err := leg.Complete(toAP, now, legDistance, earnings); err != nil {
		return false, err
	}

	d.paidAmount = newPaid
	d.actualDistance += legDistance
	if newProgress > d.progress {
		d.progress = min(newProgress, 1)
	}
	d.currentAP = toAP
	d.courierID = nil
	d.status = newStatus
	return atDestination, nil
}

// ConfirmReceipt completes the delivery when the recipient presents the
// verification code.
//
// Business rules enforced:
//   - The delivery must be ReadyForRecipient (ErrStatusConflict otherwise)
//   - The code must match the stored verification code (ErrInvalidCode,
//     compared in constant time)
//
// Returns:
//   - kernel.Points: the unused escrow to refund to the shipper
//   - error: the violated rule, with no state change
func (d *Delivery) ConfirmReceipt(code string, now time.Time) (kernel.Points, error) {
	newStatus, err := d.status.Complete()
	if err != nil {
		return kernel.Points{}, err
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(d.verificationCode)) != 1 {
		return kernel.Points{}, ErrInvalidCode
	}

	refund := d.UnusedAmount()
	d.status = newStatus
	d.completedAt = &now
	d.progress = 1
	return refund, nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setProductID(productID *kernel.UUID) error {
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return err
		}
	}
	d.productID = productID
	return nil
}

func (d *Delivery) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}
	d.shipperID = shipperID
	return nil
}

func (d *Delivery) setCourierID(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	d.courierID = courierID
	return nil
}

// setPlannedPath validates the path shape and derives the origin and
// destination access points from its endpoints.
func (d *Delivery) setPlannedPath(plannedPath []kernel.UUID) error {
	if len(plannedPath) < 2 {
		return errs.NewValueIsInvalidErrorWithCause(
			"plannedPath is invalid",
			fmt.Errorf("length %d is less than 2", len(plannedPath)),
		)
	}
	for _, ap := range plannedPath {
		if err := ap.Validate(); err != nil {
			return err
		}
	}

	d.plannedPath = make([]kernel.UUID, len(plannedPath))
	copy(d.plannedPath, plannedPath)
	d.originAP = plannedPath[0]
	d.destinationAP = plannedPath[len(plannedPath)-1]
	return nil
}

func (d *Delivery) setCurrentAP(currentAP kernel.UUID) error {
	if err := currentAP.Validate(); err != nil {
		return err
	}
	d.currentAP = currentAP
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// setLegs validates the restored leg history and enforces that at most one
// leg is open, and only while the delivery is in transit.
func (d *Delivery) setLegs(legs []*Leg) error {
	open := 0
	for _, leg := range legs {
		if err := leg.Validate(); err != nil {
			return err
		}
		if leg.IsOpen() {
			open++
		}
	}
	if open > 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"legs is invalid",
			fmt.Errorf("%d legs are in progress, at most 1 allowed", open),
		)
	}
	if (open == 1) != (d.status == InTransit) {
		return errs.NewValueIsInvalidErrorWithCause(
			"legs is invalid",
			fmt.Errorf("%d open legs is inconsistent with status %s", open, d.status.String()),
		)
	}

	d.legs = make([]*Leg, len(legs))
	copy(d.legs, legs)
	return nil
}

func (d *Delivery) setTotalCost(totalCost kernel.Points) error {
	if err := totalCost.Validate(); err != nil {
		return err
	}
	d.totalCost = totalCost
	return nil
}

func (d *Delivery) setEstimatedDistance(estimatedDistance int) error {
	if estimatedDistance < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"estimatedDistance is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", estimatedDistance),
		)
	}
	d.estimatedDistance = estimatedDistance
	return nil
}

func (d *Delivery) setActualDistance(actualDistance int) error {
	if actualDistance < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"actualDistance is invalid",
			fmt.Errorf("%d is not greater than or equal to 0", actualDistance),
		)
	}
	d.actualDistance = actualDistance
	return nil
}

func (d *Delivery) setProgress(progress float64) error {
	if progress < 0 || progress > 1 {
		return errs.NewValueIsOutOfRangeError("progress", progress, 0, 1)
	}
	d.progress = progress
	return nil
}

func (d *Delivery) setVerificationCode(verificationCode string) error {
	if verificationCode == "" {
		return errs.NewValueIsRequiredError("verificationCode is required")
	}
	d.verificationCode = verificationCode
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt is required")
	}
	d.createdAt = createdAt
	return nil
}
