package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		RefreshSecret:          "test-refresh-secret-key-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "restopos-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(Subject{UserID: userID, Username: "caja1", Role: "cashier"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "caja1", claims.Username)
	assert.Equal(t, "cashier", claims.Role)
	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)
	assert.False(t, claims.IssuedAtTime().IsZero())

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Role)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestJWTService_RejectsWrongType(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "shared-secret-for-both-token-types",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "restopos-test",
	})
	pair, err := svc.GenerateTokenPair(Subject{UserID: uuid.New(), Username: "x", Role: "admin"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_RejectsTamperedAndForeign(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(Subject{UserID: uuid.New(), Username: "x"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-key-entirely-different",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "restopos-test",
	})
	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(Subject{UserID: uuid.New(), Username: "x"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestMemoryRevocationStore(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	require.NoError(t, store.RevokeToken(ctx, "jti-1", time.Hour))
	revoked, err := store.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsTokenRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeToken(ctx, "short", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	revoked, err = store.IsTokenRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = store.IsUserRevoked(ctx, "user-1", time.Now())
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.RevokeUser(ctx, "user-1", time.Hour))
	revoked, err = store.IsUserRevoked(ctx, "user-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = store.IsUserRevoked(ctx, "user-1", time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, revoked)
}
