package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/store"
	"github.com/navetta/shuttle-booking/internal/utils"
)

// Authenticate resolves a user by exact, case-sensitive match on
// email and secret against the stored records. Credentials are kept
// and compared in plaintext; that is a known gap of this system, not
// a recommendation, and Authenticate is the single place to change
// when a hashing scheme is introduced.
func (s *Service) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

// RegisterInput is the self-service signup payload. Role is not a
// field on purpose: every registration starts as a rider.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// Register creates a rider account. It fails with ErrEmailExists when
// any stored user already holds the exact email, without touching the
// store. The caller treats the returned user as logged in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return model.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if in.FirstName == "" || in.LastName == "" {
		return model.User{}, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.readUsers(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			return model.User{}, ErrEmailExists
		}
	}

	id, err := utils.NewID("user")
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Password:  in.Password,
		Role:      model.RoleUser,
	}
	if err := s.store.Write(ctx, store.Users, append(users, u)); err != nil {
		return model.User{}, err
	}
	return u, nil
}
