package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"qa-quiz-service/internal/domain"
	"qa-quiz-service/internal/infra/memory"
)

// QuizRepository caches generated quizzes in Redis and falls back to a store on cache miss.
// Each quiz is stored as: SET quiz:{quizID} {json} EX ttl
type QuizRepository struct {
	client *redis.Client
	store  memory.QuizStore
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizRepository(client *redis.Client, store memory.QuizStore, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		client: client,
		store:  store,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Save writes to the store first; the cache write is best-effort.
func (r *QuizRepository) Save(ctx context.Context, quiz domain.GeneratedQuiz) error {
	if err := r.store.SaveQuiz(ctx, quiz); err != nil {
		return err
	}
	if err := r.cache(ctx, quiz); err != nil {
		log.Printf("cache quiz %s: %v", quiz.ID, err)
	}
	return nil
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error) {
	if quiz, ok := r.cached(ctx, quizID); ok {
		return quiz, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := r.cached(ctx, quizID); ok {
			return quiz, nil
		}

		quiz, err := r.store.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.GeneratedQuiz{}, err
		}
		if err := r.cache(ctx, quiz); err != nil {
			log.Printf("cache quiz %s: %v", quiz.ID, err)
		}
		return quiz, nil
	})
	if err != nil {
		return domain.GeneratedQuiz{}, err
	}
	return result.(domain.GeneratedQuiz), nil
}

func (r *QuizRepository) cached(ctx context.Context, quizID string) (domain.GeneratedQuiz, bool) {
	raw, err := r.client.Get(ctx, r.key(quizID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("read cached quiz %s: %v", quizID, err)
		}
		return domain.GeneratedQuiz{}, false
	}
	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		log.Printf("decode cached quiz %s: %v", quizID, err)
		return domain.GeneratedQuiz{}, false
	}
	return quiz, true
}

func (r *QuizRepository) cache(ctx context.Context, quiz domain.GeneratedQuiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	return r.client.Set(ctx, r.key(quiz.ID), data, r.ttlWithJitter()).Err()
}

func (r *QuizRepository) key(quizID string) string {
	return "quiz:" + quizID
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
