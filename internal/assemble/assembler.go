// Package assemble turns extracted question/answer pairs into a multiple-choice quiz record.
package assemble

import (
	"fmt"
	"math/rand"

	"qa-quiz-service/internal/domain"
)

const (
	DefaultNumQuestions = 25
	DefaultTimeLimit    = 30

	// MaxOptionLen bounds the correct option; MaxExplanationLen bounds the explanation.
	MaxOptionLen      = 150
	MaxExplanationLen = 200
)

// Synthesizer produces exactly three distractors for a correct answer.
type Synthesizer interface {
	Synthesize(correct, question string, pool []string, d domain.Domain, rnd *rand.Rand) ([]string, error)
}

// Assembler builds QuizRecords. It holds no per-invocation state.
type Assembler struct {
	synth Synthesizer
}

func NewAssembler(synth Synthesizer) *Assembler {
	return &Assembler{synth: synth}
}

// Assemble selects up to opts.NumQuestions pairs, synthesizes distractors for each and
// shuffles the options. All randomness comes from rnd. It either returns a complete
// record or an error; no partial record is produced.
func (a *Assembler) Assemble(pairs []domain.QAPair, opts domain.QuizOptions, rnd *rand.Rand) (domain.QuizRecord, error) {
	if len(pairs) == 0 {
		return domain.QuizRecord{}, domain.ErrAssemblyEmptyPool
	}
	opts = WithDefaults(opts)

	pool := make([]string, len(pairs))
	for i, p := range pairs {
		pool[i] = p.Answer
	}

	selected := selectPairs(pairs, opts.NumQuestions, rnd)
	questions := make([]domain.Question, 0, len(selected))
	for i, pair := range selected {
		q, err := a.buildQuestion(i+1, pair, pool, opts.Domain, rnd)
		if err != nil {
			return domain.QuizRecord{}, err
		}
		questions = append(questions, q)
	}

	return domain.QuizRecord{
		Title:          opts.Title,
		Description:    opts.Description,
		TimeLimit:      opts.TimeLimit,
		TotalQuestions: len(questions),
		Questions:      questions,
	}, nil
}

func (a *Assembler) buildQuestion(id int, pair domain.QAPair, pool []string, d domain.Domain, rnd *rand.Rand) (domain.Question, error) {
	correct := domain.Truncate(pair.Answer, MaxOptionLen)
	distractors, err := a.synth.Synthesize(correct, pair.Question, pool, d, rnd)
	if err != nil {
		return domain.Question{}, fmt.Errorf("question %d: %w", id, err)
	}
	if len(distractors) != 3 {
		return domain.Question{}, fmt.Errorf("question %d: %w: got %d", id, domain.ErrDistractorShortfall, len(distractors))
	}

	options := append([]string{correct}, distractors...)
	rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return domain.Question{
		ID:            id,
		Question:      pair.Question,
		Options:       options,
		CorrectAnswer: indexOf(options, correct),
		Explanation:   domain.Truncate(pair.Answer, MaxExplanationLen),
	}, nil
}

// WithDefaults fills zero-valued counts with their defaults.
func WithDefaults(opts domain.QuizOptions) domain.QuizOptions {
	if opts.NumQuestions <= 0 {
		opts.NumQuestions = DefaultNumQuestions
	}
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	return opts
}

// selectPairs keeps every pair when there are at most n, else draws n without replacement.
func selectPairs(pairs []domain.QAPair, n int, rnd *rand.Rand) []domain.QAPair {
	if len(pairs) <= n {
		return pairs
	}
	out := make([]domain.QAPair, 0, n)
	for _, i := range rnd.Perm(len(pairs))[:n] {
		out = append(out, pairs[i])
	}
	return out
}

func indexOf(items []string, target string) int {
	for i, s := range items {
		if s == target {
			return i
		}
	}
	return -1
}
