package service

import (
	"context"
	"strings"
	"time"

	"github.com/lendshare/lendshare-backend/internal/models"
)

// ItemService covers the item directory: CRUD, search, comments and
// the owner-only temporal summary assembly. Booking reads go through
// the BookingService so the first-match last/next semantics live in
// one place.
type ItemService struct {
	users    UserStore
	items    ItemStore
	comments CommentStore
	bookings *BookingService
	now      func() time.Time
}

func NewItemService(users UserStore, items ItemStore, comments CommentStore, bookings *BookingService) *ItemService {
	return &ItemService{users: users, items: items, comments: comments, bookings: bookings, now: time.Now}
}

// WithClock replaces the time source.
func (s *ItemService) WithClock(now func() time.Time) *ItemService {
	s.now = now
	return s
}

type CreateItem struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *uint
}

type UpdateItem struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDetail is an item with its comments and, for the owner's view,
// the last/next booking summary.
type ItemDetail struct {
	models.Item
	Comments    []models.Comment
	LastBooking *models.Booking
	NextBooking *models.Booking
}

func (s *ItemService) Add(ctx context.Context, userID uint, in CreateItem) (*models.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, InvalidArgument("item name must not be blank")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, InvalidArgument("item description must not be blank")
	}
	if in.Available == nil {
		return nil, InvalidArgument("item availability must be set")
	}
	owner, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, NotFound("user with id %d not found", userID)
	}
	item := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     owner.ID,
		Owner:       *owner,
		RequestID:   in.RequestID,
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial update; blank strings are ignored. Only the
// owner may update, anyone else gets NotFound.
func (s *ItemService) Update(ctx context.Context, userID, itemID uint, upd UpdateItem) (*models.Item, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.itemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, NotFound("item id %d does not belong to user id %d", itemID, userID)
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		item.Name = *upd.Name
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) != "" {
		item.Description = *upd.Description
	}
	if upd.Available != nil {
		item.Available = *upd.Available
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID returns the item with its comments; the last/next booking
// summary is attached only when the viewer owns the item.
func (s *ItemService) GetByID(ctx context.Context, userID, itemID uint) (*ItemDetail, error) {
	item, err := s.itemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.assembleDetail(ctx, userID, item)
}

// OwnerItems lists the owner's items, each with comments and the
// temporal summary.
func (s *ItemService) OwnerItems(ctx context.Context, ownerID uint, from, size int) ([]ItemDetail, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.items.ByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	details := make([]ItemDetail, 0, len(items))
	for i := range items {
		detail, err := s.assembleDetail(ctx, ownerID, &items[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Search returns available items whose name or description contains
// the text, case-insensitively. A blank query returns an empty list
// without touching the store.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]models.Item, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.items.Search(ctx, strings.ToLower(text), page)
}

// AddComment stores a review on an item. The author must have a
// booking of the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, InvalidArgument("comment text must not be blank")
	}
	author, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, NotFound("user with id %d not found", userID)
	}
	item, err := s.itemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.AssertCanReview(ctx, userID, itemID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Text:     text,
		ItemID:   item.ID,
		AuthorID: author.ID,
		Author:   *author,
		Created:  s.now(),
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// SetImage stores the uploaded image URL on the item. Owner only.
func (s *ItemService) SetImage(ctx context.Context, userID, itemID uint, url string) (*models.Item, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.itemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, NotFound("item id %d does not belong to user id %d", itemID, userID)
	}
	item.ImageURL = url
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) assembleDetail(ctx context.Context, viewerID uint, item *models.Item) (*ItemDetail, error) {
	comments, err := s.comments.ByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	detail := &ItemDetail{Item: *item, Comments: comments}
	if item.OwnerID == viewerID {
		summary, err := s.bookings.ItemTemporalSummary(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		detail.LastBooking = summary.Last
		detail.NextBooking = summary.Next
	}
	return detail, nil
}

func (s *ItemService) itemByID(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, NotFound("item with id %d not found", itemID)
	}
	return item, nil
}

func (s *ItemService) checkUserExists(ctx context.Context, userID uint) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("user with id %d not found", userID)
	}
	return nil
}
