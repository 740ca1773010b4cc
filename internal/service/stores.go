package service

import (
	"context"
	"time"

	"github.com/lendshare/lendshare-backend/internal/models"
)

// Page is a validated offset/limit pair. `from` is a zero-based page
// number, so from=1 with size=10 skips records 0-9.
type Page struct {
	Offset int
	Limit  int
}

func NewPage(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, InvalidArgument("invalid value of from %d", from)
	}
	if size < 1 {
		return Page{}, InvalidArgument("invalid value of size %d", size)
	}
	return Page{Offset: from * size, Limit: size}, nil
}

// Lookup methods return (nil, nil) when the record does not exist; an
// error means the store itself failed.

type UserStore interface {
	Save(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id uint) (*models.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
	All(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type ItemStore interface {
	Save(ctx context.Context, item *models.Item) error
	ByID(ctx context.Context, id uint) (*models.Item, error)
	ByOwner(ctx context.Context, ownerID uint, page Page) ([]models.Item, error)
	Search(ctx context.Context, text string, page Page) ([]models.Item, error)
	ByRequest(ctx context.Context, requestID uint) ([]models.Item, error)
}

type BookingStore interface {
	Save(ctx context.Context, booking *models.Booking) error
	ByID(ctx context.Context, id uint) (*models.Booking, error)
	// ByBooker and ByOwner return bookings ordered by start descending.
	ByBooker(ctx context.Context, bookerID uint, filter StateFilter, now time.Time, page Page) ([]models.Booking, error)
	ByOwner(ctx context.Context, ownerID uint, filter StateFilter, now time.Time, page Page) ([]models.Booking, error)
	// ByItem returns the item's bookings in store iteration order,
	// without any sorting guarantee.
	ByItem(ctx context.Context, itemID uint) ([]models.Booking, error)
	CompletedByItemAndBooker(ctx context.Context, itemID, bookerID uint, endBefore time.Time) ([]models.Booking, error)
}

type CommentStore interface {
	Save(ctx context.Context, comment *models.Comment) error
	ByItem(ctx context.Context, itemID uint) ([]models.Comment, error)
}

type RequestStore interface {
	Save(ctx context.Context, request *models.ItemRequest) error
	ByID(ctx context.Context, id uint) (*models.ItemRequest, error)
	// ByRequester and ByOthers return requests newest first.
	ByRequester(ctx context.Context, requesterID uint) ([]models.ItemRequest, error)
	ByOthers(ctx context.Context, requesterID uint, page Page) ([]models.ItemRequest, error)
}
