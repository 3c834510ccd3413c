package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"uniconnect/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values that expire after ttl, so
// registrations survive restarts and are shared between instances.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) makeKey(userID int64) string {
	return fmt.Sprintf("%s%d", s.prefix, userID)
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*Session, error) {
	data, err := s.client.Get(ctx, s.makeKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get_session", Err: err}
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %d: %w", userID, err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.makeKey(sess.UserID), data, s.ttl).Err(); err != nil {
		return &domain.StoreError{Op: "save_session", Err: err}
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, s.makeKey(userID)).Err(); err != nil {
		return &domain.StoreError{Op: "delete_session", Err: err}
	}
	return nil
}
