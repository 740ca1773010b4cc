package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lendshare/lendshare-backend/internal/models"
	"github.com/lendshare/lendshare-backend/internal/service"
)

// MemoryDB is the in-memory store backend. It implements the same
// contracts as the gorm stores and keeps bookings in insertion order,
// which is the iteration order the temporal summary relies on.
type MemoryDB struct {
	mu         sync.Mutex
	users      map[uint]models.User
	items      map[uint]models.Item
	bookings   []models.Booking
	comments   []models.Comment
	requests   []models.ItemRequest
	userSeq    uint
	itemSeq    uint
	bookingSeq uint
	commentSeq uint
	requestSeq uint
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users: make(map[uint]models.User),
		items: make(map[uint]models.Item),
	}
}

func (m *MemoryDB) Users() service.UserStore       { return &memoryUserStore{db: m} }
func (m *MemoryDB) Items() service.ItemStore       { return &memoryItemStore{db: m} }
func (m *MemoryDB) Bookings() service.BookingStore { return &memoryBookingStore{db: m} }
func (m *MemoryDB) Comments() service.CommentStore { return &memoryCommentStore{db: m} }
func (m *MemoryDB) Requests() service.RequestStore { return &memoryRequestStore{db: m} }

type memoryUserStore struct{ db *MemoryDB }

func (s *memoryUserStore) Save(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, existing := range s.db.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return service.Conflict("user with email %s already exists", user.Email)
		}
	}
	if user.ID == 0 {
		s.db.userSeq++
		user.ID = s.db.userSeq
	}
	s.db.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) ByID(_ context.Context, id uint) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if user, ok := s.db.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (s *memoryUserStore) Exists(_ context.Context, id uint) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.users[id]
	return ok, nil
}

func (s *memoryUserStore) All(_ context.Context) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	users := make([]models.User, 0, len(s.db.users))
	for _, user := range s.db.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *memoryUserStore) Delete(_ context.Context, id uint) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[id]; !ok {
		return false, nil
	}
	delete(s.db.users, id)
	return true, nil
}

type memoryItemStore struct{ db *MemoryDB }

func (s *memoryItemStore) Save(_ context.Context, item *models.Item) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if item.ID == 0 {
		s.db.itemSeq++
		item.ID = s.db.itemSeq
	}
	s.db.items[item.ID] = *item
	item.Owner = s.db.users[item.OwnerID]
	return nil
}

func (s *memoryItemStore) ByID(_ context.Context, id uint) (*models.Item, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	item, ok := s.db.items[id]
	if !ok {
		return nil, nil
	}
	item.Owner = s.db.users[item.OwnerID]
	return &item, nil
}

func (s *memoryItemStore) ByOwner(_ context.Context, ownerID uint, page service.Page) ([]models.Item, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var items []models.Item
	for _, item := range s.db.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return paginate(items, page), nil
}

func (s *memoryItemStore) Search(_ context.Context, text string, page service.Page) ([]models.Item, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var items []models.Item
	for _, item := range s.db.items {
		if item.Available && matches(item, text) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return paginate(items, page), nil
}

func (s *memoryItemStore) ByRequest(_ context.Context, requestID uint) ([]models.Item, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var items []models.Item
	for _, item := range s.db.items {
		if item.RequestID != nil && *item.RequestID == requestID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

type memoryBookingStore struct{ db *MemoryDB }

func (s *memoryBookingStore) Save(_ context.Context, booking *models.Booking) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if booking.ID == 0 {
		s.db.bookingSeq++
		booking.ID = s.db.bookingSeq
		s.db.bookings = append(s.db.bookings, *booking)
	} else {
		for i := range s.db.bookings {
			if s.db.bookings[i].ID == booking.ID {
				s.db.bookings[i] = *booking
				break
			}
		}
	}
	s.db.attachBookingRelations(booking)
	return nil
}

func (s *memoryBookingStore) ByID(_ context.Context, id uint) (*models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.bookings {
		if s.db.bookings[i].ID == id {
			booking := s.db.bookings[i]
			s.db.attachBookingRelations(&booking)
			return &booking, nil
		}
	}
	return nil, nil
}

func (s *memoryBookingStore) ByBooker(_ context.Context, bookerID uint, filter service.StateFilter, now time.Time, page service.Page) ([]models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.listBookings(func(b *models.Booking) bool { return b.BookerID == bookerID }, filter, now, page), nil
}

func (s *memoryBookingStore) ByOwner(_ context.Context, ownerID uint, filter service.StateFilter, now time.Time, page service.Page) ([]models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.listBookings(func(b *models.Booking) bool {
		return s.db.items[b.ItemID].OwnerID == ownerID
	}, filter, now, page), nil
}

func (s *memoryBookingStore) ByItem(_ context.Context, itemID uint) ([]models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var bookings []models.Booking
	for i := range s.db.bookings {
		if s.db.bookings[i].ItemID == itemID {
			booking := s.db.bookings[i]
			s.db.attachBookingRelations(&booking)
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (s *memoryBookingStore) CompletedByItemAndBooker(_ context.Context, itemID, bookerID uint, endBefore time.Time) ([]models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var bookings []models.Booking
	for i := range s.db.bookings {
		b := s.db.bookings[i]
		if b.ItemID == itemID && b.BookerID == bookerID && b.End.Before(endBefore) {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (m *MemoryDB) listBookings(match func(*models.Booking) bool, filter service.StateFilter, now time.Time, page service.Page) []models.Booking {
	var bookings []models.Booking
	for i := range m.bookings {
		b := m.bookings[i]
		if !match(&b) {
			continue
		}
		switch filter {
		case service.StateAll:
		case service.StateCurrent:
			if !(b.Start.Before(now) && b.End.After(now)) {
				continue
			}
		case service.StatePast:
			if !b.End.Before(now) {
				continue
			}
		case service.StateFuture:
			if !b.Start.After(now) {
				continue
			}
		default:
			if status, ok := filter.Status(); !ok || b.Status != status {
				continue
			}
		}
		m.attachBookingRelations(&b)
		bookings = append(bookings, b)
	}
	sort.SliceStable(bookings, func(i, j int) bool { return bookings[i].Start.After(bookings[j].Start) })
	return paginate(bookings, page)
}

func (m *MemoryDB) attachBookingRelations(b *models.Booking) {
	item := m.items[b.ItemID]
	item.Owner = m.users[item.OwnerID]
	b.Item = item
	b.Booker = m.users[b.BookerID]
}

type memoryCommentStore struct{ db *MemoryDB }

func (s *memoryCommentStore) Save(_ context.Context, comment *models.Comment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if comment.ID == 0 {
		s.db.commentSeq++
		comment.ID = s.db.commentSeq
	}
	s.db.comments = append(s.db.comments, *comment)
	comment.Author = s.db.users[comment.AuthorID]
	return nil
}

func (s *memoryCommentStore) ByItem(_ context.Context, itemID uint) ([]models.Comment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var comments []models.Comment
	for i := range s.db.comments {
		if s.db.comments[i].ItemID == itemID {
			comment := s.db.comments[i]
			comment.Author = s.db.users[comment.AuthorID]
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

type memoryRequestStore struct{ db *MemoryDB }

func (s *memoryRequestStore) Save(_ context.Context, request *models.ItemRequest) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if request.ID == 0 {
		s.db.requestSeq++
		request.ID = s.db.requestSeq
	}
	s.db.requests = append(s.db.requests, *request)
	request.Requester = s.db.users[request.RequesterID]
	return nil
}

func (s *memoryRequestStore) ByID(_ context.Context, id uint) (*models.ItemRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.requests {
		if s.db.requests[i].ID == id {
			request := s.db.requests[i]
			request.Requester = s.db.users[request.RequesterID]
			return &request, nil
		}
	}
	return nil, nil
}

func (s *memoryRequestStore) ByRequester(_ context.Context, requesterID uint) ([]models.ItemRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.listRequests(func(r *models.ItemRequest) bool { return r.RequesterID == requesterID }), nil
}

func (s *memoryRequestStore) ByOthers(_ context.Context, requesterID uint, page service.Page) ([]models.ItemRequest, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	requests := s.db.listRequests(func(r *models.ItemRequest) bool { return r.RequesterID != requesterID })
	return paginate(requests, page), nil
}

func (m *MemoryDB) listRequests(match func(*models.ItemRequest) bool) []models.ItemRequest {
	var requests []models.ItemRequest
	for i := range m.requests {
		if match(&m.requests[i]) {
			request := m.requests[i]
			request.Requester = m.users[request.RequesterID]
			requests = append(requests, request)
		}
	}
	sort.SliceStable(requests, func(i, j int) bool { return requests[i].Created.After(requests[j].Created) })
	return requests
}

func matches(item models.Item, text string) bool {
	return containsFold(item.Name, text) || containsFold(item.Description, text)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func paginate[T any](list []T, page service.Page) []T {
	if page.Offset >= len(list) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[page.Offset:end]
}
