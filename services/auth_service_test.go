package services

import (
	"context"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "new@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter22", user.Password, "password is stored hashed")

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "other-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "login@example.com", "hunter22")
	require.NoError(t, err)

	token, user, err := svc.Authenticate(ctx, "login@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	_, _, err = svc.Authenticate(ctx, "login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
