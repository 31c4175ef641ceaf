// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/paywall-api/internal/core"
)

type fakeUserProvider struct {
	byUsername map[string]*UserInfo
}

func (f *fakeUserProvider) GetByUsername(
	_ context.Context, username string,
) (*UserInfo, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserProvider) GetByID(
	_ context.Context, id string,
) (*UserInfo, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserProvider) Create(
	_ context.Context, username, email, passwordHash string,
) (*UserInfo, error) {
	if _, exists := f.byUsername[username]; exists {
		return nil, core.ErrDuplicateKey
	}

	u := &UserInfo{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "user",
	}
	f.byUsername[username] = u
	return u, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserProvider) {
	t.Helper()

	dir := t.TempDir()
	privPath := dir + "/jwt_private.pem"
	pubPath := dir + "/jwt_public.pem"
	require.NoError(t, GenerateKeyPair(privPath, pubPath))

	jwtManager, err := NewJWTManager(testJWTConfig(privPath, pubPath))
	require.NoError(t, err)

	provider := &fakeUserProvider{byUsername: map[string]*UserInfo{}}
	return NewService(jwtManager, provider), provider
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.UserID)

	resp, err := svc.Login(ctx, LoginRequest{
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, reg.UserID, resp.UserID)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct horse battery",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{
			Username: "alice",
			Password: "wrong password!!",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{
			Username: "mallory",
			Password: "whatever password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestIssuedTokenVerifies(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	claims, err := svc.jwt.VerifyAccessToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}
