package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore invalidates tokens before they expire: single tokens on
// logout, every token of a user on password change or deactivation.
type RevocationStore interface {
	// RevokeToken blacklists a token id for ttl (its remaining lifetime)
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeUser rejects every token of the user issued before now
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

const revocationPrefix = "restopos:revoked:"

// RedisRevocationStore keeps revocations in Redis so every API instance sees them
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore wraps an existing client
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func jtiKey(jti string) string     { return revocationPrefix + "jti:" + jti }
func userKey(userID string) string { return revocationPrefix + "user:" + userID }

// RevokeToken implements RevocationStore
func (s *RedisRevocationStore) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked implements RevocationStore
func (s *RedisRevocationStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// RevokeUser implements RevocationStore
func (s *RedisRevocationStore) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsUserRevoked implements RevocationStore
func (s *RedisRevocationStore) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	val, err := s.client.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user revocation: %w", err)
	}
	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return issuedAt.Unix() < revokedAt, nil
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// MemoryRevocationStore is the single-instance fallback used when Redis is
// disabled, and in tests.
type MemoryRevocationStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time // jti -> expiry
	users  map[string]time.Time // userID -> revoked at
}

// NewMemoryRevocationStore creates an empty store
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		tokens: make(map[string]time.Time),
		users:  make(map[string]time.Time),
	}
}

// RevokeToken implements RevocationStore
func (s *MemoryRevocationStore) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = time.Now().Add(ttl)
	return nil
}

// IsTokenRevoked implements RevocationStore; expired entries are pruned
func (s *MemoryRevocationStore) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(s.tokens, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUser implements RevocationStore
func (s *MemoryRevocationStore) RevokeUser(_ context.Context, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = time.Now()
	return nil
}

// IsUserRevoked implements RevocationStore. JWT iat has second precision;
// tokens issued within the revocation second stay valid so a user can log
// in again right after changing their password.
func (s *MemoryRevocationStore) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	revokedAt, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.Unix() < revokedAt.Unix(), nil
}

var _ RevocationStore = (*MemoryRevocationStore)(nil)
