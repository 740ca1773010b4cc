package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/service"
)

type GormRequestStore struct {
	db *gorm.DB
}

func NewGormRequestStore(db *gorm.DB) *GormRequestStore {
	return &GormRequestStore{db: db}
}

func (r *GormRequestStore) Save(ctx context.Context, request *models.ItemRequest) error {
	if err := r.db.WithContext(ctx).Omit("Requester").Save(request).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Requester").First(request, request.ID).Error
}

func (r *GormRequestStore) ByID(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	if err := r.db.WithContext(ctx).Preload("Requester").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *GormRequestStore) ByRequester(ctx context.Context, requesterID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *GormRequestStore) ByOthers(ctx context.Context, requesterID uint, page service.Page) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.WithContext(ctx).
		Where("requester_id <> ?", requesterID).
		Order("created DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
