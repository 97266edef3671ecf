package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/pong-arena/backend/internal/config"
	"github.com/iamasit07/pong-arena/backend/internal/domain"
)

const testSecret = "test-secret"

func init() {
	config.AppConfig = &config.Config{JWTSecret: testSecret}
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

type fakeIdentityRepo struct {
	identities map[int64]*domain.Identity
	calls      int
}

func (f *fakeIdentityRepo) GetIdentityByID(userID int64) (*domain.Identity, error) {
	f.calls++
	identity, ok := f.identities[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return identity, nil
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func TestValidateToken(t *testing.T) {
	s := NewAuthService(nil, nil)

	claims := Claims{
		UserID:   7,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	got, err := s.ValidateToken(signToken(t, testSecret, claims))
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "alice", got.Username)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := NewAuthService(nil, nil)

	claims := Claims{
		UserID:   7,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	_, err := s.ValidateToken(signToken(t, "other-secret", claims))
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := NewAuthService(nil, nil)

	claims := Claims{
		UserID:   7,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}

	_, err := s.ValidateToken(signToken(t, testSecret, claims))
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := NewAuthService(nil, nil)
	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGetIdentityCacheAside(t *testing.T) {
	repo := &fakeIdentityRepo{identities: map[int64]*domain.Identity{
		7: {UserID: 7, Username: "alice", Rating: 1250},
	}}
	cache := newFakeCache()
	s := NewAuthService(repo, cache)

	identity, err := s.GetIdentity(7)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, 1, repo.calls)

	// Second lookup is served from the cache.
	identity, err = s.GetIdentity(7)
	require.NoError(t, err)
	assert.Equal(t, 1250, identity.Rating)
	assert.Equal(t, 1, repo.calls)
}

func TestGetIdentityWithoutCache(t *testing.T) {
	repo := &fakeIdentityRepo{identities: map[int64]*domain.Identity{
		7: {UserID: 7, Username: "alice", Rating: 1250},
	}}
	s := NewAuthService(repo, nil)

	identity, err := s.GetIdentity(7)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	s.GetIdentity(7)
	assert.Equal(t, 2, repo.calls)
}

func TestGetIdentityUnknownUser(t *testing.T) {
	repo := &fakeIdentityRepo{identities: map[int64]*domain.Identity{}}
	s := NewAuthService(repo, newFakeCache())

	_, err := s.GetIdentity(99)
	assert.Error(t, err)
}

func TestInvalidateIdentity(t *testing.T) {
	repo := &fakeIdentityRepo{identities: map[int64]*domain.Identity{
		7: {UserID: 7, Username: "alice", Rating: 1250},
	}}
	cache := newFakeCache()
	s := NewAuthService(repo, cache)

	_, err := s.GetIdentity(7)
	require.NoError(t, err)

	s.InvalidateIdentity(7)

	// Next lookup goes back to the repository.
	repo.identities[7].Rating = 1282
	identity, err := s.GetIdentity(7)
	require.NoError(t, err)
	assert.Equal(t, 1282, identity.Rating)
	assert.Equal(t, 2, repo.calls)
}

func TestGetIdentityIgnoresCorruptCacheEntry(t *testing.T) {
	repo := &fakeIdentityRepo{identities: map[int64]*domain.Identity{
		7: {UserID: 7, Username: "alice", Rating: 1250},
	}}
	cache := newFakeCache()
	cache.data["identity:7"] = "{not json"
	s := NewAuthService(repo, cache)

	identity, err := s.GetIdentity(7)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, 1, repo.calls)

	var cached domain.Identity
	require.NoError(t, json.Unmarshal([]byte(cache.data["identity:7"]), &cached))
	assert.Equal(t, 1250, cached.Rating)
}
