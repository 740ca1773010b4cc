package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/repository"
	"github.com/lendshare/lendshare-backend/internal/service"
)

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type bookingFixture struct {
	ctx    context.Context
	db     *repository.MemoryDB
	svc    *service.BookingService
	owner  models.User
	booker models.User
	other  models.User
	item   models.Item
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()
	db := repository.NewMemoryDB()
	svc := service.NewBookingService(db.Users(), db.Items(), db.Bookings()).WithClock(fixedClock)

	f := &bookingFixture{ctx: ctx, db: db, svc: svc}
	f.owner = models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.Users().Save(ctx, &f.owner))
	f.booker = models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, db.Users().Save(ctx, &f.booker))
	f.other = models.User{Name: "Carol", Email: "carol@example.com"}
	require.NoError(t, db.Users().Save(ctx, &f.other))

	f.item = models.Item{Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: f.owner.ID}
	require.NoError(t, db.Items().Save(ctx, &f.item))
	return f
}

// seedBooking writes straight to the store so past and current
// bookings can exist despite the creation-time invariants.
func (f *bookingFixture) seedBooking(t *testing.T, bookerID uint, start, end time.Time, status models.BookingStatus) models.Booking {
	t.Helper()
	b := models.Booking{Start: start, End: end, Status: status, ItemID: f.item.ID, BookerID: bookerID}
	require.NoError(t, f.db.Bookings().Save(f.ctx, &b))
	return b
}

func (f *bookingFixture) futureCandidate() service.CreateBooking {
	return service.CreateBooking{
		Start:  fixedNow.Add(time.Minute),
		End:    fixedNow.Add(2 * time.Minute),
		ItemID: f.item.ID,
	}
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.NoError(t, err)

	assert.NotZero(t, booking.ID)
	assert.Equal(t, models.BookingStatusWaiting, booking.Status)
	assert.Equal(t, f.booker.ID, booking.BookerID)
	assert.Equal(t, f.item.ID, booking.Item.ID)
	assert.Equal(t, f.owner.ID, booking.Item.OwnerID)
	assert.True(t, booking.Start.Before(booking.End))
	assert.True(t, booking.Start.After(fixedNow))
	assert.True(t, booking.End.After(fixedNow))
}

func TestCreateBookingUnknownUser(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(f.ctx, 999, f.futureCandidate())
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestCreateBookingUnknownItem(t *testing.T) {
	f := newBookingFixture(t)

	in := f.futureCandidate()
	in.ItemID = 999
	_, err := f.svc.Create(f.ctx, f.booker.ID, in)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestCreateBookingByOwnerMaskedAsNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(f.ctx, f.owner.ID, f.futureCandidate())
	require.Error(t, err)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
	assert.Contains(t, err.Error(), "own item")
}

func TestCreateBookingUnavailableItem(t *testing.T) {
	f := newBookingFixture(t)
	f.item.Available = false
	require.NoError(t, f.db.Items().Save(f.ctx, &f.item))

	_, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
	assert.Contains(t, err.Error(), "unavailable")
}

func TestCreateBookingStartInPast(t *testing.T) {
	f := newBookingFixture(t)

	in := f.futureCandidate()
	in.Start = fixedNow.Add(-time.Minute)
	_, err := f.svc.Create(f.ctx, f.booker.ID, in)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestCreateBookingEndInPast(t *testing.T) {
	f := newBookingFixture(t)

	in := f.futureCandidate()
	in.Start = fixedNow.Add(time.Minute)
	in.End = fixedNow.Add(-time.Minute)
	_, err := f.svc.Create(f.ctx, f.booker.ID, in)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestCreateBookingStartNotBeforeEnd(t *testing.T) {
	f := newBookingFixture(t)

	in := f.futureCandidate()
	in.Start = fixedNow.Add(2 * time.Minute)
	in.End = fixedNow.Add(time.Minute)
	_, err := f.svc.Create(f.ctx, f.booker.ID, in)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))

	in.End = in.Start
	_, err = f.svc.Create(f.ctx, f.booker.ID, in)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestSetApprovalLifecycle(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.NoError(t, err)

	approved, err := f.svc.SetApproval(f.ctx, f.owner.ID, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, approved.Status)

	// Re-applying the identical status must fail, not no-op.
	_, err = f.svc.SetApproval(f.ctx, f.owner.ID, booking.ID, true)
	require.Error(t, err)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestSetApprovalRejectTwice(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.NoError(t, err)

	rejected, err := f.svc.SetApproval(f.ctx, f.owner.ID, booking.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)

	_, err = f.svc.SetApproval(f.ctx, f.owner.ID, booking.ID, false)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestSetApprovalByBookerMaskedAsNotFound(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.NoError(t, err)

	_, err = f.svc.SetApproval(f.ctx, f.booker.ID, booking.ID, true)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestSetApprovalByStranger(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.NoError(t, err)

	_, err = f.svc.SetApproval(f.ctx, f.other.ID, booking.ID, true)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestSetApprovalUnknownBooking(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.SetApproval(f.ctx, f.owner.ID, 999, true)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestGetByIDVisibility(t *testing.T) {
	f := newBookingFixture(t)
	booking, err := f.svc.Create(f.ctx, f.booker.ID, f.futureCandidate())
	require.NoError(t, err)

	got, err := f.svc.GetByID(f.ctx, f.booker.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	got, err = f.svc.GetByID(f.ctx, f.owner.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = f.svc.GetByID(f.ctx, f.other.ID, booking.ID)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestListByBookerStates(t *testing.T) {
	f := newBookingFixture(t)
	past := f.seedBooking(t, f.booker.ID, fixedNow.Add(-2*time.Hour), fixedNow.Add(-time.Hour), models.BookingStatusApproved)
	current := f.seedBooking(t, f.booker.ID, fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour), models.BookingStatusApproved)
	future := f.seedBooking(t, f.booker.ID, fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour), models.BookingStatusWaiting)
	rejected := f.seedBooking(t, f.booker.ID, fixedNow.Add(3*time.Hour), fixedNow.Add(4*time.Hour), models.BookingStatusRejected)

	ids := func(bookings []models.Booking) []uint {
		out := make([]uint, 0, len(bookings))
		for _, b := range bookings {
			out = append(out, b.ID)
		}
		return out
	}

	all, err := f.svc.ListByBooker(f.ctx, f.booker.ID, "ALL", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{rejected.ID, future.ID, current.ID, past.ID}, ids(all), "ordered by start descending")

	got, err := f.svc.ListByBooker(f.ctx, f.booker.ID, "CURRENT", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{current.ID}, ids(got))

	got, err = f.svc.ListByBooker(f.ctx, f.booker.ID, "PAST", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{past.ID}, ids(got))

	got, err = f.svc.ListByBooker(f.ctx, f.booker.ID, "FUTURE", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{rejected.ID, future.ID}, ids(got))

	got, err = f.svc.ListByBooker(f.ctx, f.booker.ID, "waiting", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{future.ID}, ids(got), "state filter is case-insensitive")

	got, err = f.svc.ListByBooker(f.ctx, f.booker.ID, "REJECTED", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{rejected.ID}, ids(got))

	got, err = f.svc.ListByBooker(f.ctx, f.booker.ID, "APPROVED", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{current.ID, past.ID}, ids(got))
}

func TestListByBookerUnknownState(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.ListByBooker(f.ctx, f.booker.ID, "BOGUS", 0, 10)
	require.Error(t, err)
	assert.Equal(t, service.KindUnknownState, service.KindOf(err))
	assert.Equal(t, "Unknown state: BOGUS", err.Error())
}

func TestListByBookerPageBounds(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.ListByBooker(f.ctx, f.booker.ID, "ALL", -1, 10)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))

	_, err = f.svc.ListByBooker(f.ctx, f.booker.ID, "ALL", 0, 0)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestListByBookerPageSemantics(t *testing.T) {
	f := newBookingFixture(t)
	var seeded []models.Booking
	for i := 0; i < 25; i++ {
		b := f.seedBooking(t, f.booker.ID,
			fixedNow.Add(time.Duration(i+1)*time.Hour),
			fixedNow.Add(time.Duration(i+2)*time.Hour),
			models.BookingStatusWaiting)
		seeded = append(seeded, b)
	}

	// from is a page number: page 1 of size 10 holds records 10-19 of
	// the start-descending order, i.e. seeded[14] down to seeded[5].
	page, err := f.svc.ListByBooker(f.ctx, f.booker.ID, "ALL", 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, seeded[14].ID, page[0].ID)
	assert.Equal(t, seeded[5].ID, page[9].ID)
}

func TestListByOwner(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t, f.booker.ID, fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour), models.BookingStatusWaiting)

	got, err := f.svc.ListByOwner(f.ctx, f.owner.ID, "ALL", 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, booking.ID, got[0].ID)

	got, err = f.svc.ListByOwner(f.ctx, f.other.ID, "ALL", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItemTemporalSummaryFirstMatch(t *testing.T) {
	f := newBookingFixture(t)
	firstPast := f.seedBooking(t, f.booker.ID, fixedNow.Add(-4*time.Hour), fixedNow.Add(-3*time.Hour), models.BookingStatusApproved)
	f.seedBooking(t, f.booker.ID, fixedNow.Add(-2*time.Hour), fixedNow.Add(-time.Hour), models.BookingStatusApproved)
	firstFuture := f.seedBooking(t, f.booker.ID, fixedNow.Add(3*time.Hour), fixedNow.Add(4*time.Hour), models.BookingStatusWaiting)
	f.seedBooking(t, f.booker.ID, fixedNow.Add(time.Hour), fixedNow.Add(2*time.Hour), models.BookingStatusWaiting)

	summary, err := f.svc.ItemTemporalSummary(f.ctx, f.item.ID)
	require.NoError(t, err)
	require.NotNil(t, summary.Last)
	require.NotNil(t, summary.Next)
	// First match in iteration order, not the booking closest to now.
	assert.Equal(t, firstPast.ID, summary.Last.ID)
	assert.Equal(t, firstFuture.ID, summary.Next.ID)
}

func TestItemTemporalSummaryEmpty(t *testing.T) {
	f := newBookingFixture(t)

	summary, err := f.svc.ItemTemporalSummary(f.ctx, f.item.ID)
	require.NoError(t, err)
	assert.Nil(t, summary.Last)
	assert.Nil(t, summary.Next)
}

func TestCanReview(t *testing.T) {
	f := newBookingFixture(t)
	// A rejected booking that already ended still counts.
	f.seedBooking(t, f.booker.ID, fixedNow.Add(-2*time.Hour), fixedNow.Add(-time.Hour), models.BookingStatusRejected)

	ok, err := f.svc.CanReview(f.ctx, f.booker.ID, f.item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.CanReview(f.ctx, f.other.ID, f.item.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = f.svc.AssertCanReview(f.ctx, f.other.ID, f.item.ID)
	assert.Equal(t, service.KindInvalidArgument, service.KindOf(err))
}

func TestCanReviewIgnoresUnfinishedBookings(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(t, f.booker.ID, fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour), models.BookingStatusApproved)

	ok, err := f.svc.CanReview(f.ctx, f.booker.ID, f.item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
