package app

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"qa-quiz-service/internal/assemble"
	"qa-quiz-service/internal/domain"
	"qa-quiz-service/internal/export"
	"qa-quiz-service/internal/extract"
)

// DefaultMinPairs is the usability threshold below which a document is flagged.
const DefaultMinPairs = 10

// QuizRepository stores generated quizzes (in-memory, Redis-cached, Postgres, etc).
type QuizRepository interface {
	Save(ctx context.Context, quiz domain.GeneratedQuiz) error
	GetQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error)
}

// DigestIndex maps a request digest to the quiz it produced so seeded requests
// are not regenerated.
type DigestIndex interface {
	Lookup(ctx context.Context, digest string) (string, bool)
	Remember(ctx context.Context, digest, quizID string) error
}

// Settings carries the service-wide defaults applied to every request.
type Settings struct {
	MinPairs int
	Defaults domain.QuizOptions
}

// QuizService contains the quiz generation use cases.
type QuizService struct {
	quizzes   QuizRepository
	digests   DigestIndex
	assembler *assemble.Assembler
	settings  Settings
	now       func() time.Time
	newID     func() string
}

func NewQuizService(quizzes QuizRepository, digests DigestIndex, assembler *assemble.Assembler, settings Settings) *QuizService {
	return NewQuizServiceWithClock(quizzes, digests, assembler, settings, time.Now)
}

// NewQuizServiceWithClock is test-only for deterministic timestamps.
func NewQuizServiceWithClock(quizzes QuizRepository, digests DigestIndex, assembler *assemble.Assembler, settings Settings, now func() time.Time) *QuizService {
	if settings.MinPairs <= 0 {
		settings.MinPairs = DefaultMinPairs
	}
	return &QuizService{
		quizzes:   quizzes,
		digests:   digests,
		assembler: assembler,
		settings:  settings,
		now:       now,
		newID:     uuid.NewString,
	}
}

// Generate turns one document into a stored quiz: detect, extract, check, assemble, validate, save.
func (s *QuizService) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GeneratedQuiz, error) {
	opts, err := s.resolveOptions(req.Options)
	if err != nil {
		return domain.GeneratedQuiz{}, err
	}

	seed := req.Seed
	var digest string
	if seed != 0 {
		digest = Digest(req.Text, opts, seed, req.Strict)
		if quiz, ok := s.lookupDigest(ctx, digest); ok {
			log.Printf("reusing quiz %s for digest %s", quiz.ID, digest[:12])
			return quiz, nil
		}
	} else {
		seed = s.now().UnixNano()
	}

	format, pairs, err := extract.Extract(req.Text)
	if err != nil {
		return domain.GeneratedQuiz{}, err
	}
	report := domain.Report{Format: format, PairCount: len(pairs)}
	log.Printf("detected format %s with %d pairs", format, len(pairs))

	if err := extract.CheckUsable(pairs, s.settings.MinPairs); err != nil {
		if req.Strict {
			return domain.GeneratedQuiz{}, err
		}
		log.Printf("warning: %v", err)
		report.Warnings = append(report.Warnings, err.Error())
	}

	record, err := s.assembler.Assemble(pairs, opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		return domain.GeneratedQuiz{}, err
	}
	if err := export.Validate(record); err != nil {
		return domain.GeneratedQuiz{}, err
	}

	quiz := domain.GeneratedQuiz{
		ID:        s.newID(),
		Digest:    digest,
		Seed:      seed,
		Report:    report,
		CreatedAt: s.now().UTC(),
		Quiz:      record,
	}
	if err := s.quizzes.Save(ctx, quiz); err != nil {
		return domain.GeneratedQuiz{}, fmt.Errorf("save quiz: %w", err)
	}
	if digest != "" {
		if err := s.digests.Remember(ctx, digest, quiz.ID); err != nil {
			log.Printf("remember digest for quiz %s: %v", quiz.ID, err)
		}
	}
	log.Printf("generated quiz %s with %d questions", quiz.ID, record.TotalQuestions)
	return quiz, nil
}

// GetQuiz loads a previously generated quiz.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.GeneratedQuiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

func (s *QuizService) lookupDigest(ctx context.Context, digest string) (domain.GeneratedQuiz, bool) {
	id, ok := s.digests.Lookup(ctx, digest)
	if !ok {
		return domain.GeneratedQuiz{}, false
	}
	quiz, err := s.quizzes.GetQuiz(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrQuizNotFound) {
			log.Printf("load memoized quiz %s: %v", id, err)
		}
		return domain.GeneratedQuiz{}, false
	}
	return quiz, true
}

// resolveOptions fills unset request fields from the configured defaults.
func (s *QuizService) resolveOptions(opts domain.QuizOptions) (domain.QuizOptions, error) {
	d := s.settings.Defaults
	if opts.NumQuestions <= 0 {
		opts.NumQuestions = d.NumQuestions
	}
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = d.TimeLimit
	}
	if opts.Title == "" {
		opts.Title = d.Title
	}
	if opts.Description == "" {
		opts.Description = d.Description
	}
	if opts.Domain == domain.DomainNone {
		opts.Domain = d.Domain
	}
	if _, err := domain.ParseDomain(string(opts.Domain)); err != nil {
		return opts, fmt.Errorf("%w: %q", err, opts.Domain)
	}
	return assemble.WithDefaults(opts), nil
}

// Digest identifies a generation request: same text, options, seed and strictness give the
// same digest. Strict and lenient requests never share one.
func Digest(text string, opts domain.QuizOptions, seed int64, strict bool) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	optsJSON, _ := json.Marshal(opts)
	h.Write(optsJSON)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])
	if strict {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
