package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/utils"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	u := model.User{ID: "user_abc", Role: model.RoleUser}

	tok, err := utils.NewSessionToken("secret", u, time.Hour)
	require.NoError(t, err)
	assert.True(t, tok.Exp.After(time.Now()))

	sub, err := utils.ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", sub)

	// Wrong secret fails verification.
	_, err = utils.ParseSessionToken("other", tok.Token)
	assert.Error(t, err)

	// Garbage fails verification.
	_, err = utils.ParseSessionToken("secret", "not-a-jwt")
	assert.Error(t, err)
}

func TestSessionTokenExpiry(t *testing.T) {
	u := model.User{ID: "user_abc", Role: model.RoleUser}
	tok, err := utils.NewSessionToken("secret", u, -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken("secret", tok.Token)
	assert.Error(t, err, "expired tokens must not parse")
}

func TestNewID(t *testing.T) {
	a, err := utils.NewID("booking")
	require.NoError(t, err)
	b, err := utils.NewID("booking")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "booking_"))
	assert.Len(t, a, len("booking_")+24)
	assert.NotEqual(t, a, b)
}

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, utils.HashToken("x"), utils.HashToken("x"))
	assert.NotEqual(t, utils.HashToken("x"), utils.HashToken("y"))
	assert.Len(t, utils.HashToken("x"), 64)
}
