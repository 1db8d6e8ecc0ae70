package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestDigestIndexSetsAndExpiresKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	index := NewDigestIndex(client, time.Minute)
	ctx := context.Background()

	if _, ok := index.Lookup(ctx, "abc"); ok {
		t.Fatalf("expected miss on empty redis")
	}
	if err := index.Remember(ctx, "abc", "quiz-1"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if !mr.Exists("quiz:digest:abc") {
		t.Fatalf("expected redis key to be set")
	}
	if id, ok := index.Lookup(ctx, "abc"); !ok || id != "quiz-1" {
		t.Fatalf("expected quiz-1, got %q (present=%v)", id, ok)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := index.Lookup(ctx, "abc"); ok {
		t.Fatalf("expected digest to expire")
	}
}
