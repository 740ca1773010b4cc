package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/service"
)

type GormBookingStore struct {
	db *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

func (r *GormBookingStore) Save(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Item", "Booker").Save(booking).Error; err != nil {
		return err
	}
	// Reload so the caller sees the persisted relations, not the
	// in-memory copies it passed in.
	return r.preloaded(ctx).First(booking, booking.ID).Error
}

func (r *GormBookingStore) ByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.preloaded(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *GormBookingStore) ByBooker(ctx context.Context, bookerID uint, filter service.StateFilter, now time.Time, page service.Page) ([]models.Booking, error) {
	q := r.preloaded(ctx).Where("booker_id = ?", bookerID)
	return r.listFiltered(q, filter, now, page)
}

func (r *GormBookingStore) ByOwner(ctx context.Context, ownerID uint, filter service.StateFilter, now time.Time, page service.Page) ([]models.Booking, error) {
	q := r.preloaded(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return r.listFiltered(q, filter, now, page)
}

func (r *GormBookingStore) ByItem(ctx context.Context, itemID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.preloaded(ctx).Where("item_id = ?", itemID).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingStore) CompletedByItemAndBooker(ctx context.Context, itemID, bookerID uint, endBefore time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND booker_id = ? AND end_date < ?", itemID, bookerID, endBefore).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingStore) listFiltered(q *gorm.DB, filter service.StateFilter, now time.Time, page service.Page) ([]models.Booking, error) {
	switch filter {
	case service.StateAll:
	case service.StateCurrent:
		q = q.Where("bookings.start_date < ? AND bookings.end_date > ?", now, now)
	case service.StatePast:
		q = q.Where("bookings.end_date < ?", now)
	case service.StateFuture:
		q = q.Where("bookings.start_date > ?", now)
	default:
		status, _ := filter.Status()
		q = q.Where("bookings.status = ?", status)
	}
	var bookings []models.Booking
	err := q.Order("bookings.start_date DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingStore) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Owner").
		Preload("Booker")
}
