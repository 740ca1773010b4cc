package service

import (
	"context"
	"strings"

	"github.com/lendshare/lendshare-backend/internal/models"
)

// UserService is plain directory plumbing; email uniqueness is
// enforced by the store and surfaces as a Conflict error.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

type CreateUser struct {
	Name  string
	Email string
}

type UpdateUser struct {
	Name  *string
	Email *string
}

func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

func (s *UserService) Add(ctx context.Context, in CreateUser) (*models.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	user := &models.User{Name: in.Name, Email: in.Email}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound("user with id %d not found", id)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, upd UpdateUser) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		if err := validateEmail(*upd.Email); err != nil {
			return nil, err
		}
		user.Email = *upd.Email
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return NotFound("user with id %d not found", id)
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return InvalidArgument("invalid email %q", email)
	}
	return nil
}
