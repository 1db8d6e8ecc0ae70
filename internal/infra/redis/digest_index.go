package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DigestIndex is a Redis-backed implementation of app.DigestIndex.
// Entries expire after ttl; a miss means the quiz is regenerated.
type DigestIndex struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDigestIndex(client *redis.Client, ttl time.Duration) *DigestIndex {
	return &DigestIndex{
		client: client,
		ttl:    ttl,
	}
}

func (d *DigestIndex) Lookup(ctx context.Context, digest string) (string, bool) {
	quizID, err := d.client.Get(ctx, d.key(digest)).Result()
	if err != nil || quizID == "" {
		return "", false
	}
	return quizID, true
}

func (d *DigestIndex) Remember(ctx context.Context, digest, quizID string) error {
	return d.client.Set(ctx, d.key(digest), quizID, d.ttl).Err()
}

func (d *DigestIndex) key(digest string) string {
	return "quiz:digest:" + digest
}
