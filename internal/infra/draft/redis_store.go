package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps booking drafts as JSON blobs under a TTL; an expired
// draft simply disappears and the client starts the wizard over.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

var _ commands.DraftStore = (*RedisStore)(nil)

func draftKey(id uuid.UUID) string {
	return fmt.Sprintf("booking:draft:%s", id)
}

func (s *RedisStore) Save(ctx context.Context, draft *commands.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return errs.Wrap(err, "failed to marshal draft")
	}
	if err := s.rdb.Set(ctx, draftKey(draft.ID), payload, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to store draft")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*commands.Draft, error) {
	payload, err := s.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.Mark(err, errs.ErrDraftNotFound)
		}
		return nil, errs.Wrap(err, "failed to load draft")
	}
	var draft commands.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal draft")
	}
	return &draft, nil
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, draftKey(id)).Err(); err != nil {
		return errs.Wrap(err, "failed to delete draft")
	}
	return nil
}
