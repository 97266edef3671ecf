package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/pong-arena/backend/internal/config"
	"github.com/iamasit07/pong-arena/backend/internal/domain"
)

const identityKeyPrefix = "identity:"
const identityTTL = 10 * time.Minute

// Claims represents JWT claims for access tokens issued by the upstream auth
// layer.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IdentityRepository is the persistent source of identities and ratings.
type IdentityRepository interface {
	GetIdentityByID(userID int64) (*domain.Identity, error)
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// AuthService validates tokens and resolves the verified identity the gateway
// needs before it lets a connection join matchmaking.
type AuthService struct {
	repo  IdentityRepository
	cache CacheRepository // Optional, can be nil
}

func NewAuthService(repo IdentityRepository, cache CacheRepository) *AuthService {
	return &AuthService{
		repo:  repo,
		cache: cache,
	}
}

// ValidateToken checks the JWT signature and returns the claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	secret := config.AppConfig.JWTSecret

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetIdentity returns the identity record for a user, cache-aside through
// Redis when available.
func (s *AuthService) GetIdentity(userID int64) (*domain.Identity, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", identityKeyPrefix, userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var identity domain.Identity
			if err := json.Unmarshal([]byte(cached), &identity); err == nil {
				return &identity, nil
			}
		}
	}

	identity, err := s.repo.GetIdentityByID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(identity); err == nil {
			if err := s.cache.Set(ctx, key, string(data), identityTTL); err != nil {
				log.Printf("[AUTH] Failed to cache identity for user %d: %v", userID, err)
			}
		}
	}

	return identity, nil
}

// InvalidateIdentity drops the cached identity, e.g. after a rating change.
func (s *AuthService) InvalidateIdentity(userID int64) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("%s%d", identityKeyPrefix, userID)
	if err := s.cache.Del(context.Background(), key); err != nil {
		log.Printf("[AUTH] Failed to invalidate identity cache for user %d: %v", userID, err)
	}
}
