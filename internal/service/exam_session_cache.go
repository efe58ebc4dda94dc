package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const examSessionKeyPrefix = "exam:session:"

// InFlightSession is the server-side record of a started exam: who it was
// issued to and exactly which questions, in which order. It is the
// authoritative universe for the eventual submission.
type InFlightSession struct {
	UserID      uint   `json:"userId"`
	QuestionIDs []uint `json:"questionIds"`
}

// ExamSessionCache keeps in-flight sessions in Redis under the session id
// with a TTL. Entries are small and expire on their own; submit deletes
// the entry eagerly once the result is stored.
type ExamSessionCache struct {
	Redis *redis.Client
}

func NewExamSessionCache(rdb *redis.Client) *ExamSessionCache {
	return &ExamSessionCache{Redis: rdb}
}

func (c *ExamSessionCache) Put(ctx context.Context, sessionID string, session InFlightSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, examSessionKeyPrefix+sessionID, data, ttl).Err()
}

// Get returns (nil, nil) when no entry exists, which callers treat as an
// expired session rather than an error.
func (c *ExamSessionCache) Get(ctx context.Context, sessionID string) (*InFlightSession, error) {
	val, err := c.Redis.Get(ctx, examSessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session InFlightSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *ExamSessionCache) Del(ctx context.Context, sessionID string) error {
	return c.Redis.Del(ctx, examSessionKeyPrefix+sessionID).Err()
}
