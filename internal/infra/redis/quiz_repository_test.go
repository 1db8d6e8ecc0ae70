package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"qa-quiz-service/internal/domain"
	"qa-quiz-service/internal/infra/memory"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	store := &countingStore{QuizStore: memory.NewStore()}
	_ = store.QuizStore.SaveQuiz(context.Background(), sampleQuiz())
	repo := NewQuizRepository(client, store, time.Minute)

	got, err := repo.GetQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if store.loads != 1 {
		t.Fatalf("expected store called once, got %d", store.loads)
	}
	if got.Quiz.Questions[0].Options[got.Quiz.Questions[0].CorrectAnswer] != "4" {
		t.Fatalf("unexpected quiz %+v", got.Quiz)
	}
	if !mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected quiz cached in redis")
	}

	// Second call should hit cache, store not incremented.
	_, _ = repo.GetQuiz(context.Background(), "quiz-1")
	if store.loads != 1 {
		t.Fatalf("expected cache hit, store loads=%d", store.loads)
	}
}

func TestQuizRepositorySaveCachesWithTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := &countingStore{QuizStore: memory.NewStore()}
	repo := NewQuizRepository(newClient(mr), store, time.Minute)

	if err := repo.Save(context.Background(), sampleQuiz()); err != nil {
		t.Fatalf("save: %v", err)
	}
	ttl := mr.TTL("quiz:quiz-1")
	if ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("expected ttl within jitter bounds, got %v", ttl)
	}

	got, err := repo.GetQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if got.Report.Format != domain.FormatLabeledAnswer || store.loads != 0 {
		t.Fatalf("expected cached quiz without store load, got %+v loads=%d", got.Report, store.loads)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz after expiry: %v", err)
	}
	if store.loads != 1 {
		t.Fatalf("expected store fallback after expiry, loads=%d", store.loads)
	}
}

func TestQuizRepositoryUnknownQuiz(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewQuizRepository(newClient(mr), memory.NewStore(), time.Minute)
	if _, err := repo.GetQuiz(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingStore struct {
	memory.QuizStore
	loads int
}

func (s *countingStore) LoadQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error) {
	s.loads++
	return s.QuizStore.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.GeneratedQuiz {
	return domain.GeneratedQuiz{
		ID:     "quiz-1",
		Seed:   7,
		Report: domain.Report{Format: domain.FormatLabeledAnswer, PairCount: 1},
		Quiz: domain.QuizRecord{
			Title:          "Arithmetic",
			TimeLimit:      30,
			TotalQuestions: 1,
			Questions: []domain.Question{
				{
					ID:            1,
					Question:      "What is 2 + 2?",
					Options:       []string{"3", "4", "5", "6"},
					CorrectAnswer: 1,
					Explanation:   "4",
				},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
