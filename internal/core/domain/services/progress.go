package services

import (
	"errors"
	"fmt"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"
)

var (
	// ErrPositionNotOnPath is returned when an access point id cannot be
	// resolved to a position on the planned path.
	ErrPositionNotOnPath = errors.New("access point is not on the planned path")

	// ErrInvalidRange is returned when the destination does not come strictly
	// after the start on the planned path.
	ErrInvalidRange = errors.New("destination must come after start on the planned path")
)

// Mode selects how progress over a planned path is counted.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// ModeHops counts edge traversals: a path of n access points has n-1
	// units, and progress at the start is zero.
	ModeHops

	// ModeNodes counts visited access points: a path of n access points has
	// n units, and progress is never zero since the start node counts.
	ModeNodes
)

// getModeStrings returns a map of Mode values to their string representations.
func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeUnknown: "unknown",
		ModeHops:    "hops",
		ModeNodes:   "nodes",
	}
}

// ParseMode parses the textual form of a progress mode, "hops" or "nodes".
func ParseMode(s string) (Mode, error) {
	for mode, str := range getModeStrings() {
		if mode != ModeUnknown && str == s {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("mode",
		fmt.Errorf("%q is not a valid progress mode", s))
}

// Validate checks if the Mode value is valid.
func (m Mode) Validate() error {
	if m != ModeHops && m != ModeNodes {
		return errs.NewValueIsInvalidErrorWithCause("mode",
			fmt.Errorf("%d is not a valid progress mode", m))
	}
	return nil
}

// String returns the textual form of the mode.
func (m Mode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// ProgressReport describes how far along a planned path a delivery has come.
type ProgressReport struct {
	// Fraction is the completed share of the path, in [0, 1].
	Fraction float64

	// CompletedUnits is the number of units (hops or nodes) covered so far.
	CompletedUnits int

	// TotalUnits is the number of units between start and destination.
	TotalUnits int
}

// ProgressTracker is a domain service that measures fractional completion of
// a planned path and derives the incremental payout owed for progress made
// since the last payout.
//
// All positions are access point ids resolved against the planned path by
// index. Station ids never appear here.
type ProgressTracker struct{}

// NewProgressTracker creates a new ProgressTracker instance.
func NewProgressTracker() ProgressTracker {
	return ProgressTracker{}
}

// Progress computes the completed fraction of plannedPath between startID and
// destID, given that the package currently sits at currentID.
//
// Business rules:
//   - All three ids must resolve to positions on plannedPath
//     (ErrPositionNotOnPath otherwise)
//   - The destination must come strictly after the start (ErrInvalidRange)
//   - The current position is clamped into [start, destination], so a detour
//     before the start counts as zero progress and one past the destination
//     counts as full
//
// In hops mode the fraction is completedHops / totalHops and is zero at the
// start. In nodes mode the start node itself counts, so the fraction is
// always positive.
func (p ProgressTracker) Progress(
	plannedPath []kernel.UUID,
	startID kernel.UUID,
	destID kernel.UUID,
	currentID kernel.UUID,
	mode Mode,
) (ProgressReport, error) {
	if err := mode.Validate(); err != nil {
		return ProgressReport{}, err
	}

	startIndex, err := indexOnPath(plannedPath, startID)
	if err != nil {
		return ProgressReport{}, err
	}
	destIndex, err := indexOnPath(plannedPath, destID)
	if err != nil {
		return ProgressReport{}, err
	}
	currentIndex, err := indexOnPath(plannedPath, currentID)
	if err != nil {
		return ProgressReport{}, err
	}

	if destIndex <= startIndex {
		return ProgressReport{}, fmt.Errorf("%w: start at %d, destination at %d",
			ErrInvalidRange, startIndex, destIndex)
	}

	clamped := min(max(currentIndex, startIndex), destIndex)

	var completed, total int
	switch mode {
	case ModeHops:
		total = destIndex - startIndex
		completed = clamped - startIndex
	case ModeNodes:
		total = destIndex - startIndex + 1
		completed = clamped - startIndex + 1
	}

	fraction := 1.0
	if total > 0 {
		fraction = float64(completed) / float64(total)
	}

	return ProgressReport{
		Fraction:       fraction,
		CompletedUnits: completed,
		TotalUnits:     total,
	}, nil
}

// PayoutDelta computes the points owed for advancing from prevProgress to
// newProgress over a pool of basePoints.
//
// The delta is basePoints x max(0, newProgress - prevProgress), rounded to
// two decimal places. Regressions pay nothing, and the deltas of a full,
// monotonically progressing journey sum to basePoints once progress reaches
// one.
func (p ProgressTracker) PayoutDelta(
	basePoints kernel.Points,
	prevProgress float64,
	newProgress float64,
) (kernel.Points, error) {
	return basePoints.MulFraction(max(0, newProgress-prevProgress))
}

// indexOnPath resolves an access point id to its position on the planned path.
func indexOnPath(plannedPath []kernel.UUID, id kernel.UUID) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	for i, ap := range plannedPath {
		if ap.IsEqual(id) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrPositionNotOnPath, id.String())
}
