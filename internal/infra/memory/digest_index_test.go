package memory

import (
	"context"
	"testing"
)

func TestDigestIndexLifecycle(t *testing.T) {
	ctx := context.Background()
	index := NewDigestIndex()

	if _, ok := index.Lookup(ctx, "abc"); ok {
		t.Fatalf("expected empty index")
	}
	if err := index.Remember(ctx, "abc", "quiz-1"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if id, ok := index.Lookup(ctx, "abc"); !ok || id != "quiz-1" {
		t.Fatalf("expected quiz-1, got %q (present=%v)", id, ok)
	}

	if err := index.Remember(ctx, "abc", "quiz-2"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if id, _ := index.Lookup(ctx, "abc"); id != "quiz-2" {
		t.Fatalf("expected digest to point at latest quiz, got %q", id)
	}
}
