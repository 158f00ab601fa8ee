package model

import "errors"

// Locally detected failures. Validation errors are raised before any network
// call; conflict errors guard the single-edit-session invariant.
var (
	// ErrCapacityUnset: an item was toggled before a storage budget was set.
	ErrCapacityUnset = errors.New("storage capacity: must be set first")
	// ErrInsufficientSpace: the toggled item alone does not fit the remaining space.
	ErrInsufficientSpace = errors.New("storage capacity: item does not fit the remaining space")
	// ErrEmptySelection: a request was submitted with no items selected.
	ErrEmptySelection = errors.New("selection: must not be empty")
	// ErrNoCapacity: a request was submitted with no storage budget.
	ErrNoCapacity = errors.New("storage capacity: must be GT 0")
	// ErrOverLimit: the selected total exceeds the storage budget.
	ErrOverLimit = errors.New("selection: total size exceeds the storage capacity")
	// ErrInvalidAmount: a non-positive payment or a negative debt was entered.
	ErrInvalidAmount = errors.New("amount: must be valid")
	// ErrInvalidStatus: an unknown order status was requested.
	ErrInvalidStatus = errors.New("status: unknown value")

	// ErrEditConflict: a second edit session was started while one is open,
	// or the target cannot be edited at all.
	ErrEditConflict = errors.New("edit session: already in progress")
	// ErrNotEditable: the target order is not pending anymore.
	ErrNotEditable = errors.New("edit session: order is not pending")
	// ErrNoEditSession: a save/cancel was requested with no session open.
	ErrNoEditSession = errors.New("edit session: none open")
	// ErrNoOpenOrder: a ledger operation was requested with no order open.
	ErrNoOpenOrder = errors.New("ledger: no order open")

	// ErrBusy: the same action was fired again while the first one is in flight.
	ErrBusy = errors.New("action: already in flight")
)

// IsValidation reports whether the error was detected locally before any
// network round-trip.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrCapacityUnset, ErrInsufficientSpace, ErrEmptySelection,
		ErrNoCapacity, ErrOverLimit, ErrInvalidAmount, ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsStateConflict reports whether the error is an edit-session or in-flight conflict.
func IsStateConflict(err error) bool {
	for _, target := range []error{ErrEditConflict, ErrNotEditable, ErrNoEditSession, ErrNoOpenOrder, ErrBusy} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
