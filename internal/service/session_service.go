package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// rotateSessionScript consumes the old refresh token and stores the new pair in
// one round trip, so a refresh token can be exchanged only once.
//
// KEYS[1] old refresh key, KEYS[2] new access key, KEYS[3] new refresh key
// ARGV[1] access ttl ms, ARGV[2] refresh ttl ms
// Returns 0 when the old refresh token was not on the allow-list.
var rotateSessionScript = redis.NewScript(`
	if redis.call('DEL', KEYS[1]) == 0 then
		return 0
	end
	redis.call('SET', KEYS[2], 'valid', 'PX', ARGV[1])
	redis.call('SET', KEYS[3], 'valid', 'PX', ARGV[2])
	return 1
`)

const (
	accessKeyFormat  = "access_token:%s:%s"
	refreshKeyFormat = "refresh_token:%s:%s"
)

// SessionService keeps the ids of issued tokens in redis. A token whose id is
// missing from the allow-list is treated as revoked.
type SessionService interface {
	Store(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
	IsAccessTokenActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Rotate(ctx context.Context, userID uuid.UUID, oldRefreshTokenID, accessTokenID, refreshTokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error
}

type sessionService struct {
	log           *logrus.Logger
	redisClient   *redis.Client
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewSessionService(log *logrus.Logger, redisClient *redis.Client, accessExpiry, refreshExpiry time.Duration) SessionService {
	return &sessionService{
		log:           log,
		redisClient:   redisClient,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func accessKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf(accessKeyFormat, userID.String(), tokenID)
}

func refreshKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf(refreshKeyFormat, userID.String(), tokenID)
}

func (s *sessionService) Store(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, accessKey(userID, accessTokenID), "valid", s.accessExpiry)
	pipe.Set(ctx, refreshKey(userID, refreshTokenID), "valid", s.refreshExpiry)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return err
	}
	return nil
}

func (s *sessionService) IsAccessTokenActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, accessKey(userID, tokenID)).Result()
	if err != nil {
		s.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists > 0, nil
}

func (s *sessionService) Rotate(ctx context.Context, userID uuid.UUID, oldRefreshTokenID, accessTokenID, refreshTokenID string) (bool, error) {
	keys := []string{
		refreshKey(userID, oldRefreshTokenID),
		accessKey(userID, accessTokenID),
		refreshKey(userID, refreshTokenID),
	}
	result, err := rotateSessionScript.Run(ctx, s.redisClient, keys,
		s.accessExpiry.Milliseconds(), s.refreshExpiry.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed to rotate refresh token: %+v", err)
		return false, err
	}
	return result == 1, nil
}

// Revoke removes both tokens; an empty refresh token id only revokes the access token.
func (s *sessionService) Revoke(ctx context.Context, userID uuid.UUID, accessTokenID, refreshTokenID string) error {
	keys := []string{accessKey(userID, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, refreshKey(userID, refreshTokenID))
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		s.log.Warnf("Failed to delete tokens: %+v", err)
		return err
	}
	return nil
}
