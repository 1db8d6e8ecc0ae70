// Package distractor synthesizes plausible but wrong answer options without any
// external knowledge source.
package distractor

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"unicode/utf8"

	"qa-quiz-service/internal/domain"
)

// Count is the number of distractors every synthesis returns.
const Count = 3

const (
	defaultSampleSize = 20
	// keyword substitution leaves at least one slot to the other strategies
	maxKeywordDistractors = 2
	poolOptionLen         = 80
	poolAnswerLimit       = 200
)

// Synthesizer produces distractors from a Catalog.
type Synthesizer struct {
	catalog    *Catalog
	sampleSize int
}

// NewSynthesizer returns a synthesizer over catalog; nil selects DefaultCatalog.
func NewSynthesizer(catalog *Catalog) *Synthesizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Synthesizer{catalog: catalog, sampleSize: defaultSampleSize}
}

// Synthesize returns exactly Count distractors for correct, each distinct from correct and
// from each other. Strategies run in order: keyword and numeric substitution, sampling from
// pool, then fallback phrases. If all of them together fall short it returns
// ErrDistractorShortfall rather than fewer options.
func (s *Synthesizer) Synthesize(correct, question string, pool []string, d domain.Domain, rnd *rand.Rand) ([]string, error) {
	c := newCollector(correct)

	for _, candidate := range s.catalog.For(d).Apply(correct) {
		if c.len() >= maxKeywordDistractors {
			break
		}
		c.add(candidate)
	}
	for _, candidate := range numericVariants(correct) {
		if c.full() {
			break
		}
		c.add(candidate)
	}
	if !c.full() {
		for _, candidate := range s.poolCandidates(correct, question, pool, d, rnd) {
			if c.full() {
				break
			}
			c.add(candidate)
		}
	}
	for _, phrase := range s.catalog.FallbackPhrases(correct) {
		if c.full() {
			break
		}
		c.add(phrase)
	}

	if !c.full() {
		return nil, fmt.Errorf("%w: got %d for answer %q", domain.ErrDistractorShortfall, c.len(), domain.Truncate(correct, 40))
	}
	return c.items, nil
}

// poolCandidates samples other answers, topical ones first, truncated for use as options.
func (s *Synthesizer) poolCandidates(correct, question string, pool []string, d domain.Domain, rnd *rand.Rand) []string {
	eligible := make([]string, 0, len(pool))
	for _, answer := range pool {
		if sameAnswer(answer, correct) || utf8.RuneCountInString(answer) >= poolAnswerLimit {
			continue
		}
		eligible = append(eligible, answer)
	}
	if len(eligible) == 0 {
		return nil
	}

	n := min(s.sampleSize, len(eligible))
	sample := make([]string, 0, n)
	for _, i := range rnd.Perm(len(eligible))[:n] {
		sample = append(sample, eligible[i])
	}

	topics := questionTopics(question, s.catalog.Topics[d])
	if len(topics) > 0 {
		sort.SliceStable(sample, func(i, j int) bool {
			return mentionsAny(sample[i], topics) && !mentionsAny(sample[j], topics)
		})
	}

	out := make([]string, len(sample))
	for i, answer := range sample {
		out[i] = domain.Truncate(answer, poolOptionLen)
	}
	return out
}

// sameAnswer reports whether a pool answer is the correct answer, possibly truncated.
func sameAnswer(answer, correct string) bool {
	if answer == correct {
		return true
	}
	prefix, truncated := strings.CutSuffix(correct, domain.Ellipsis)
	return truncated && prefix != "" && strings.HasPrefix(answer, prefix)
}

func questionTopics(question string, keywords []string) []string {
	lower := strings.ToLower(question)
	var out []string
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			out = append(out, strings.ToLower(k))
		}
	}
	return out
}

func mentionsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

type collector struct {
	correct string
	items   []string
	seen    map[string]struct{}
}

func newCollector(correct string) *collector {
	return &collector{correct: correct, seen: make(map[string]struct{}, Count)}
}

func (c *collector) add(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || candidate == c.correct || c.full() {
		return false
	}
	if _, ok := c.seen[candidate]; ok {
		return false
	}
	c.seen[candidate] = struct{}{}
	c.items = append(c.items, candidate)
	return true
}

func (c *collector) len() int   { return len(c.items) }
func (c *collector) full() bool { return len(c.items) >= Count }
