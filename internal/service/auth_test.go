package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
	"github.com/navetta/shuttle-booking/internal/store"
)

func TestAuthenticateExactMatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "rita@example.com", "riderpass")
	require.NoError(t, err)
	assert.Equal(t, testRider.ID, u.ID)

	// Case mismatch on the email fails: the match is exact as stored.
	_, err = svc.Authenticate(ctx, "Rita@example.com", "riderpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "rita@example.com", "RIDERPASS")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "riderpass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRegisterCreatesRider(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, service.RegisterInput{
		FirstName: "Nina", LastName: "Nuova",
		Email: "nina@example.com", Phone: "444", Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)

	// The new account can log in right away.
	got, err := svc.Authenticate(ctx, "nina@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterDuplicateEmailLeavesStoreUntouched(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{
		FirstName: "Copy", LastName: "Cat",
		Email: "rita@example.com", Password: "other",
	})
	assert.ErrorIs(t, err, service.ErrEmailExists)

	var users []model.User
	require.NoError(t, st.Read(ctx, store.Users, &users))
	require.Len(t, users, 3)
	for _, u := range users {
		if u.Email == "rita@example.com" {
			assert.Equal(t, testRider, u, "original record must be unchanged")
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, service.RegisterInput{FirstName: "X", LastName: "Y", Email: "", Password: "pw"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Register(ctx, service.RegisterInput{Email: "z@x.com", Password: "pw"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
