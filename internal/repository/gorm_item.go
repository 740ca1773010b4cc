package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/service"
)

type GormItemStore struct {
	db *gorm.DB
}

func NewGormItemStore(db *gorm.DB) *GormItemStore {
	return &GormItemStore{db: db}
}

func (r *GormItemStore) Save(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Save(item).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Owner").First(item, item.ID).Error
}

func (r *GormItemStore) ByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Preload("Owner").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormItemStore) ByOwner(ctx context.Context, ownerID uint, page service.Page) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormItemStore) Search(ctx context.Context, text string, page service.Page) ([]models.Item, error) {
	pattern := "%" + text + "%"
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("id").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormItemStore) ByRequest(ctx context.Context, requestID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
