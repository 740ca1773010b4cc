package service

import (
	"strings"

	"github.com/lendshare/lendshare-backend/internal/models"
)

// StateFilter selects which of a user's bookings a list operation
// returns. CURRENT, PAST and FUTURE are temporal buckets computed
// against a single timestamp taken at the start of the operation; the
// remaining values match the booking status exactly.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateCurrent  StateFilter = "CURRENT"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
	StateApproved StateFilter = "APPROVED"
)

// ParseState normalizes a state query value to upper case and rejects
// anything outside the closed set with an UnknownState error.
func ParseState(raw string) (StateFilter, error) {
	switch f := StateFilter(strings.ToUpper(raw)); f {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected, StateApproved:
		return f, nil
	default:
		return "", UnknownState(raw)
	}
}

// Status returns the booking status a filter matches exactly, if any.
func (f StateFilter) Status() (models.BookingStatus, bool) {
	switch f {
	case StateWaiting, StateRejected, StateApproved:
		return models.BookingStatus(f), true
	default:
		return "", false
	}
}
