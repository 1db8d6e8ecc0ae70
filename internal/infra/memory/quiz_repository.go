package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"qa-quiz-service/internal/domain"
)

// QuizStore persists generated quizzes in a backing store (e.g., Postgres).
type QuizStore interface {
	SaveQuiz(ctx context.Context, quiz domain.GeneratedQuiz) error
	LoadQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error)
}

// QuizRepository caches quizzes with TTL to avoid repeated store hits.
type QuizRepository struct {
	store QuizStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.GeneratedQuiz
	expiresAt time.Time
}

func NewQuizRepository(store QuizStore, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		store: store,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedQuiz),
	}
}

// Save writes through to the store and primes the cache.
func (r *QuizRepository) Save(ctx context.Context, quiz domain.GeneratedQuiz) error {
	if err := r.store.SaveQuiz(ctx, quiz); err != nil {
		return err
	}
	r.put(quiz, r.clock())
	return nil
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error) {
	if quiz, ok := r.cached(quizID, r.clock()); ok {
		return quiz, nil
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		now := r.clock()
		if quiz, ok := r.cached(quizID, now); ok {
			return quiz, nil
		}

		quiz, err := r.store.LoadQuiz(ctx, quizID)
		if err != nil {
			return domain.GeneratedQuiz{}, err
		}
		r.put(quiz, now)
		return quiz, nil
	})
	if err != nil {
		return domain.GeneratedQuiz{}, err
	}
	return result.(domain.GeneratedQuiz), nil
}

func (r *QuizRepository) cached(quizID string, now time.Time) (domain.GeneratedQuiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[quizID]
	if !ok || !entry.expiresAt.After(now) {
		return domain.GeneratedQuiz{}, false
	}
	return entry.quiz, true
}

func (r *QuizRepository) put(quiz domain.GeneratedQuiz, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[quiz.ID] = cachedQuiz{
		quiz:      quiz,
		expiresAt: now.Add(r.ttlWithJitterLocked()),
	}
}

func (r *QuizRepository) ttlWithJitterLocked() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// Store is a quiz store backed by an in-memory map, used when no database is configured.
type Store struct {
	mu      sync.RWMutex
	quizzes map[string]domain.GeneratedQuiz
}

func NewStore() *Store {
	return &Store{quizzes: make(map[string]domain.GeneratedQuiz)}
}

func (s *Store) SaveQuiz(_ context.Context, quiz domain.GeneratedQuiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *Store) LoadQuiz(_ context.Context, quizID string) (domain.GeneratedQuiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if quiz, ok := s.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.GeneratedQuiz{}, domain.ErrQuizNotFound
}
