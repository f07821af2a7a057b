package order

import (
	"fmt"

	"goby/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Preparing ──┐
//	   │                    │
//	   └────────────────────┴──> Taken ──> Delivering ──> Completed
//
//	Cancelled is reachable from any non-terminal state.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a client places an order.
	// Orders in this status are waiting for the restaurant to start preparing.
	Pending

	// Preparing indicates the restaurant has accepted the order and is
	// preparing it. Couriers may claim orders in Pending or Preparing status.
	Preparing

	// Taken indicates a courier has claimed the order and a delivery exists.
	Taken

	// Delivering indicates the courier has picked the order up at the
	// restaurant and is on the way to the client.
	Delivering

	// Completed indicates the order has been delivered to the client.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was cancelled before completion.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "pending",
		Preparing:  "preparing",
		Taken:      "taken",
		Delivering: "delivering",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Preparing:  "preparing",
		Taken:      "taken",
		Delivering: "delivering",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Preparing, Taken, Delivering, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString maps a stored string representation back to a Status.
// Returns a ValueIsInvalid error for strings that do not name a valid status.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", value))
}

// IsTerminal reports whether the status is final.
// Completed and Cancelled orders admit no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateTake checks if a courier may claim an order in this status
// without performing the transition.
//
// Valid statuses for taking:
//   - Pending (restaurant has not started preparing yet)
//   - Preparing (restaurant is preparing the order)
//
// Returns a StateIsInvalid error if the order cannot be taken from
// the current status.
func (s Status) ValidateTake() error {
	if s != Pending && s != Preparing {
		return errs.NewStateIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to take", s.String()),
		)
	}
	return nil
}

// Take transitions the status to Taken.
//
// Valid transitions:
//   - Pending -> Taken
//   - Preparing -> Taken
//
// Returns:
//   - (Taken, nil) on valid transition
//   - (0, error) if the order is not available for delivery
//
// This method is used by Order.Take() to enforce state transitions.
func (s Status) Take() (Status, error) {
	if err := s.ValidateTake(); err != nil {
		return 0, err
	}

	return Taken, nil
}

// StartPreparing transitions the status to Preparing.
// Only Pending orders can start being prepared. This transition is driven
// by the restaurant, not by couriers.
func (s Status) StartPreparing() (Status, error) {
	if s != Pending {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to start preparing", s.String()),
		)
	}

	return Preparing, nil
}

// StartDelivering transitions the status to Delivering.
//
// Valid transitions:
//   - Taken -> Delivering (courier arrived at the restaurant)
//
// Returns:
//   - (Delivering, nil) on valid transition
//   - (0, error) if the order was not in Taken status
func (s Status) StartDelivering() (Status, error) {
	if s != Taken {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to start delivering", s.String()),
		)
	}

	return Delivering, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Delivering -> Completed (order handed over to the client)
//
// Completed is a final state with no further transitions possible.
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if the order was not in Delivering status
func (s Status) Complete() (Status, error) {
	if s != Delivering {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Cancellation is the escape hatch from any non-terminal state:
//   - Pending -> Cancelled
//   - Preparing -> Cancelled
//   - Taken -> Cancelled
//   - Delivering -> Cancelled
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if the order is already in a terminal state
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
