package service

import (
	"context"
	"fmt"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/store"
)

// ListUsers returns every user record. Admin-only.
func (s *Service) ListUsers(ctx context.Context, actor model.User) ([]model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.readUsers(ctx)
}

// GetUser resolves a single user by id.
func (s *Service) GetUser(ctx context.Context, id string) (model.User, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// UpdateUserRole switches a user between rider and admin. Admin-only.
func (s *Service) UpdateUserRole(ctx context.Context, actor model.User, userID, role string) (model.User, error) {
	if err := requireAdmin(actor); err != nil {
		return model.User{}, err
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return model.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.readUsers(ctx)
	if err != nil {
		return model.User{}, err
	}
	for i := range users {
		if users[i].ID == userID {
			users[i].Role = role
			if err := s.store.Write(ctx, store.Users, users); err != nil {
				return model.User{}, err
			}
			return users[i], nil
		}
	}
	return model.User{}, ErrUserNotFound
}
