// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Sessions are keyed by the refresh token hash and carry their own TTL,
// so revocation is a delete and expiry needs no background sweep.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

type sessionRecord struct {
	AccountID int64     `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

/*
Set stores a session under the refresh token hash with the given TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - session: Session
  - ttl: time.Duration

Returns:
  - error: Serialization or execution errors
*/
func (repository *RedisSessionRepository) Set(context context.Context, tokenHash string, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{
		AccountID: session.AccountID,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the session for a given token hash.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - Session: Stored session
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, tokenHash string) (Session, error) {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, apperr.NotFound("Session is invalid or expired")
		}
		return Session{}, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return Session{}, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return Session{AccountID: record.AccountID, ExpiresAt: record.ExpiresAt}, nil
}

/*
Delete removes the session from Redis, revoking its refresh token.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
