package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"qa-quiz-service/internal/domain"
)

// QuizStore keeps generated quizzes as JSONB in Postgres.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) SaveQuiz(ctx context.Context, quiz domain.GeneratedQuiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	var digest *string
	if quiz.Digest != "" {
		digest = &quiz.Digest
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quizzes (id, digest, data, created_at) VALUES ($1, $2, $3::jsonb, $4)
		 ON CONFLICT (id) DO UPDATE SET digest = EXCLUDED.digest, data = EXCLUDED.data`,
		quiz.ID, digest, string(data), quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (s *QuizStore) LoadQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GeneratedQuiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.GeneratedQuiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.GeneratedQuiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

// Lookup returns the most recent quiz generated for digest. Together with
// Remember it lets the store serve as the digest index when Redis is absent.
func (s *QuizStore) Lookup(ctx context.Context, digest string) (string, bool) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM quizzes WHERE digest=$1 ORDER BY created_at DESC LIMIT 1`, digest).Scan(&id)
	if err != nil {
		return "", false
	}
	return id, true
}

// Remember is a no-op: SaveQuiz already records the digest column.
func (s *QuizStore) Remember(context.Context, string, string) error {
	return nil
}
