package service

import (
	"context"
	"strings"
	"time"

	"github.com/lendshare/lendshare-backend/internal/models"
)

// RequestService handles the open-request bulletin board. Each listed
// request carries the items that were created against it.
type RequestService struct {
	users    UserStore
	requests RequestStore
	items    ItemStore
	now      func() time.Time
}

func NewRequestService(users UserStore, requests RequestStore, items ItemStore) *RequestService {
	return &RequestService{users: users, requests: requests, items: items, now: time.Now}
}

// WithClock replaces the time source.
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	s.now = now
	return s
}

// RequestDetail is a request with the items offered against it.
type RequestDetail struct {
	models.ItemRequest
	Items []models.Item
}

func (s *RequestService) Add(ctx context.Context, userID uint, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, InvalidArgument("request description must not be blank")
	}
	requester, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, NotFound("user with id %d not found", userID)
	}
	request := &models.ItemRequest{
		Description: description,
		RequesterID: requester.ID,
		Requester:   *requester,
		Created:     s.now(),
	}
	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ByRequester lists the user's own requests, newest first.
func (s *RequestService) ByRequester(ctx context.Context, userID uint) ([]RequestDetail, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assembleDetails(ctx, requests)
}

// ByOthers lists other users' requests, newest first, paginated.
func (s *RequestService) ByOthers(ctx context.Context, userID uint, from, size int) ([]RequestDetail, error) {
	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ByOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.assembleDetails(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID uint) (*RequestDetail, error) {
	if err := s.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.requests.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, NotFound("request with id %d not found", requestID)
	}
	items, err := s.items.ByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	return &RequestDetail{ItemRequest: *request, Items: items}, nil
}

func (s *RequestService) assembleDetails(ctx context.Context, requests []models.ItemRequest) ([]RequestDetail, error) {
	details := make([]RequestDetail, 0, len(requests))
	for i := range requests {
		items, err := s.items.ByRequest(ctx, requests[i].ID)
		if err != nil {
			return nil, err
		}
		details = append(details, RequestDetail{ItemRequest: requests[i], Items: items})
	}
	return details, nil
}

func (s *RequestService) checkUserExists(ctx context.Context, userID uint) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("user with id %d not found", userID)
	}
	return nil
}
