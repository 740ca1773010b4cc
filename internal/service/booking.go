package service

import (
	"context"
	"time"

	"github.com/lendshare/lendshare-backend/internal/models"
)

// BookingService holds the booking lifecycle rules: creation
// invariants, the owner-only approval transition, visibility of
// individual bookings and the filtered list views. It never writes to
// the user or item stores.
//
// SetApproval carries no version check: two concurrent approval calls
// on the same booking race and the last write wins.
type BookingService struct {
	users    UserStore
	items    ItemStore
	bookings BookingStore
	now      func() time.Time
}

func NewBookingService(users UserStore, items ItemStore, bookings BookingStore) *BookingService {
	return &BookingService{users: users, items: items, bookings: bookings, now: time.Now}
}

// WithClock replaces the time source. Tests pin it so the temporal
// buckets do not move during a run.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

type CreateBooking struct {
	Start  time.Time
	End    time.Time
	ItemID uint
}

// Create validates a booking candidate against the requesting user and
// the target item, then persists it in WAITING status. A user booking
// their own item gets NotFound rather than a validation failure, so
// the response does not differ from a nonexistent item.
func (s *BookingService) Create(ctx context.Context, userID uint, in CreateBooking) (*models.Booking, error) {
	now := s.now()
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound("user with id %d not found", userID)
	}
	item, err := s.items.ByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, NotFound("item with id %d not found", in.ItemID)
	}
	if item.OwnerID == user.ID {
		return nil, NotFound("owner cannot book their own item")
	}
	if !item.Available {
		return nil, InvalidArgument("booking of item id %d is unavailable", item.ID)
	}
	if !in.Start.After(now) {
		return nil, InvalidArgument("booking start must be in the future")
	}
	if !in.End.After(now) {
		return nil, InvalidArgument("booking end must be in the future")
	}
	if !in.Start.Before(in.End) {
		return nil, InvalidArgument("booking start must precede its end")
	}

	booking := &models.Booking{
		Start:    in.Start,
		End:      in.End,
		Status:   models.BookingStatusWaiting,
		ItemID:   item.ID,
		Item:     *item,
		BookerID: user.ID,
		Booker:   *user,
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// SetApproval moves a WAITING booking to APPROVED or REJECTED. Only
// the item's owner may call it; the booker is answered with NotFound
// so the booking's existence is not confirmed to them in a context
// they have no rights in, anyone else gets a validation failure.
// Re-applying a terminal status is rejected, not silently accepted.
func (s *BookingService) SetApproval(ctx context.Context, userID, bookingID uint, approve bool) (*models.Booking, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NotFound("booking with id %d not found", bookingID)
	}
	if booking.Item.OwnerID != userID {
		if booking.BookerID == userID {
			return nil, NotFound("booker id %d has no access to change the status of booking id %d", userID, bookingID)
		}
		return nil, InvalidArgument("user id %d has no access to change the status of booking id %d", userID, bookingID)
	}
	if approve {
		if booking.Status == models.BookingStatusApproved {
			return nil, InvalidArgument("repeat identical status change is not allowed")
		}
		booking.Status = models.BookingStatusApproved
	} else {
		if booking.Status == models.BookingStatusRejected {
			return nil, InvalidArgument("repeat identical status change is not allowed")
		}
		booking.Status = models.BookingStatusRejected
	}
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID returns a booking to its booker or the item's owner; every
// other caller gets NotFound.
func (s *BookingService) GetByID(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NotFound("booking with id %d not found", bookingID)
	}
	if booking.BookerID != userID && booking.Item.OwnerID != userID {
		return nil, NotFound("user id %d is neither the booker nor the owner of the item", userID)
	}
	return booking, nil
}

// ListByBooker returns the user's bookings matching the state filter,
// ordered by start descending.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID uint, state string, from, size int) ([]models.Booking, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	filter, err := ParseState(state)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserExists(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.bookings.ByBooker(ctx, bookerID, filter, s.now(), page)
}

// ListByOwner is ListByBooker filtered by item ownership instead of
// booker identity.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID uint, state string, from, size int) ([]models.Booking, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	filter, err := ParseState(state)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.bookings.ByOwner(ctx, ownerID, filter, s.now(), page)
}

// TemporalSummary is the last/next booking pair attached to an item
// when its owner views it. It takes the first booking ended before now
// and the first booking starting after now in store iteration order,
// not the closest ones to now.
type TemporalSummary struct {
	Last *models.Booking
	Next *models.Booking
}

func (s *BookingService) ItemTemporalSummary(ctx context.Context, itemID uint) (TemporalSummary, error) {
	now := s.now()
	bookings, err := s.bookings.ByItem(ctx, itemID)
	if err != nil {
		return TemporalSummary{}, err
	}
	var summary TemporalSummary
	for i := range bookings {
		b := &bookings[i]
		if summary.Last == nil && b.End.Before(now) {
			summary.Last = b
		}
		if summary.Next == nil && b.Start.After(now) {
			summary.Next = b
		}
	}
	return summary, nil
}

// CanReview reports whether the user has a booking of the item that
// has already ended. The booking status does not matter.
func (s *BookingService) CanReview(ctx context.Context, userID, itemID uint) (bool, error) {
	completed, err := s.bookings.CompletedByItemAndBooker(ctx, itemID, userID, s.now())
	if err != nil {
		return false, err
	}
	return len(completed) > 0, nil
}

func (s *BookingService) AssertCanReview(ctx context.Context, userID, itemID uint) error {
	ok, err := s.CanReview(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return InvalidArgument("user id %d has no completed booking of item id %d", userID, itemID)
	}
	return nil
}

func (s *BookingService) checkUserExists(ctx context.Context, userID uint) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("user with id %d not found", userID)
	}
	return nil
}
