package extract

import (
	"strings"

	"qa-quiz-service/internal/domain"
)

type state int

const (
	seekQuestion state = iota
	seekAnswer
	accumulateAnswer
)

// grammar captures how one format recognizes its lines. Every func receives a trimmed, non-blank line.
type grammar struct {
	// question recognizes the line that opens a pair and returns the cleaned question text.
	question func(line string) (string, bool)
	// answer recognizes an answer marker line and returns the text after the marker.
	answer func(line string) (string, bool)
	// restart recognizes a line that replaces a pending question which never received an answer.
	restart func(line, pending string) (string, bool)
	// boundary reports lines that always end an answer.
	boundary func(line string) bool
	// implicitAnswer lets an unmarked line open the answer.
	implicitAnswer bool
	// markedQuestions means only a marker line opens a question, so an answer runs to the next boundary.
	markedQuestions bool

	minQuestion int
	minAnswer   int
}

// scanner walks lines with an explicit cursor. Every state either advances the
// cursor or hands the current line to seekQuestion, which always advances.
type scanner struct {
	lines []string
	pos   int
	g     grammar
}

func newScanner(lines []string, g grammar) *scanner {
	return &scanner{lines: lines, g: g}
}

// run emits pairs in document order. Malformed candidates are dropped, never raised.
func (s *scanner) run() []domain.QAPair {
	var (
		pairs    []domain.QAPair
		st       = seekQuestion
		question string
		answer   string
	)

	for s.pos < len(s.lines) {
		line := strings.TrimSpace(s.lines[s.pos])
		if line == "" || skipLine(line) {
			s.pos++
			continue
		}

		switch st {
		case seekQuestion:
			if q, ok := s.g.question(line); ok {
				question = q
				st = seekAnswer
			}
			s.pos++

		case seekAnswer:
			s.pos++
			if a, ok := s.g.answer(line); ok {
				answer = a
				st = accumulateAnswer
				continue
			}
			if q, ok := s.g.restart(line, question); ok {
				question = q
				continue
			}
			if s.g.implicitAnswer && !wrapsQuestion(question, line) {
				answer = line
				st = accumulateAnswer
				continue
			}
			question = joinLine(question, line)

		case accumulateAnswer:
			if !s.continues(line) {
				pairs = s.emit(pairs, question, answer)
				question, answer = "", ""
				st = seekQuestion
				continue
			}
			answer = joinLine(answer, line)
			s.pos++
		}
	}

	if st == accumulateAnswer {
		pairs = s.emit(pairs, question, answer)
	}
	return pairs
}

// continues reports whether line extends the answer being accumulated.
func (s *scanner) continues(line string) bool {
	if s.g.markedQuestions {
		return !s.g.boundary(line)
	}
	if s.g.boundary(line) || s.nextIsAnswer() {
		return false
	}
	if hasEnumerationPrefix(line) {
		return true
	}
	return !endsWithQuestionMark(line)
}

// nextIsAnswer reports whether the next non-blank line after the cursor is an answer marker,
// which makes the line under the cursor a question.
func (s *scanner) nextIsAnswer() bool {
	for i := s.pos + 1; i < len(s.lines); i++ {
		next := strings.TrimSpace(s.lines[i])
		if next == "" {
			continue
		}
		_, ok := s.g.answer(next)
		return ok
	}
	return false
}

func (s *scanner) emit(pairs []domain.QAPair, question, answer string) []domain.QAPair {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if runeLen(question) <= s.g.minQuestion || runeLen(answer) <= s.g.minAnswer {
		return pairs
	}
	return append(pairs, domain.QAPair{Question: question, Answer: answer})
}

// wrapsQuestion reports a line that finishes a question wrapped across lines.
func wrapsQuestion(pending, line string) bool {
	return !endsWithQuestionMark(pending) && endsWithQuestionMark(line)
}
