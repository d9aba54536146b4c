package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/store"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
	"github.com/campushq/uni-admin-api/pkg/session"
)

func newAuthService(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	st := store.New()
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour)
	svc := NewAuthService(st, sessions, nil, nil, AuthConfig{
		Secret:             "test-secret",
		Issuer:             "campushq-test",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: time.Hour,
	})
	return svc, st
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, models.SignupRequest{
		Email:    "alice@test.edu",
		Password: "secret123",
		FullName: "Alice Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, []models.RoleType{models.RoleStudent}, resp.User.Roles)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "alice@test.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := svc.ValidateToken(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, claims.UserID)
	assert.True(t, claims.HasRole(models.RoleStudent))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Alice"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "alice@test.edu", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@test.edu", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, st := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Alice"})
	require.NoError(t, err)

	inactive := false
	_, err = st.UpdateUser(ctx, resp.User.ID, models.UserPatch{Active: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "alice@test.edu", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Alice"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.User.ID, models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old refresh token no longer works.
	_, err = svc.RefreshToken(ctx, resp.User.ID, models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestLogoutInvalidatesAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Alice"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.User.ID))

	_, err = svc.ValidateToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Alice"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, resp.User.ID, ChangePasswordRequest{OldPassword: "nope", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	require.NoError(t, svc.ChangePassword(ctx, resp.User.ID, ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret"}))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "alice@test.edu", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "alice@test.edu", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Alice"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, models.SignupRequest{Email: "alice@test.edu", Password: "secret123", FullName: "Other"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
