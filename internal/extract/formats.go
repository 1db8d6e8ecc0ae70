package extract

import (
	"strings"

	"qa-quiz-service/internal/domain"
)

const (
	minQuestionLen = 3
	minAnswerLen   = 5
	// generic splitting is noisier, so it demands longer answers
	minGenericAnswerLen = 10
)

func labeledGrammar() grammar {
	return grammar{
		question: func(line string) (string, bool) {
			if labeledMarker.MatchString(line) {
				return "", false
			}
			q, _ := stripOrdinal(line)
			return q, true
		},
		answer: func(line string) (string, bool) {
			return stripMarker(labeledMarker, line)
		},
		restart: func(line, pending string) (string, bool) {
			if q, ok := stripOrdinal(line); ok {
				return q, true
			}
			if endsWithQuestionMark(pending) && endsWithQuestionMark(line) {
				return line, true
			}
			return "", false
		},
		boundary:    labeledMarker.MatchString,
		minQuestion: minQuestionLen,
		minAnswer:   minAnswerLen,
	}
}

func qaMarkerGrammar() grammar {
	isQ := questionMarker.MatchString
	isA := answerMarker.MatchString
	return grammar{
		question: func(line string) (string, bool) {
			return stripMarker(questionMarker, line)
		},
		answer: func(line string) (string, bool) {
			return stripMarker(answerMarker, line)
		},
		restart: func(line, _ string) (string, bool) {
			return stripMarker(questionMarker, line)
		},
		boundary: func(line string) bool {
			return isQ(line) || isA(line)
		},
		markedQuestions: true,
		minQuestion:     minQuestionLen,
		minAnswer:       minAnswerLen,
	}
}

func numberedGrammar() grammar {
	return grammar{
		question: stripOrdinal,
		answer: func(line string) (string, bool) {
			return stripMarker(labeledMarker, line)
		},
		restart: func(line, _ string) (string, bool) {
			return stripOrdinal(line)
		},
		boundary: func(line string) bool {
			_, ordinal := stripOrdinal(line)
			return ordinal || labeledMarker.MatchString(line)
		},
		implicitAnswer: true,
		minQuestion:    minQuestionLen,
		minAnswer:      minAnswerLen,
	}
}

// splitInlineAnswers breaks "Q: … A: …" lines in two so the scanner sees one marker per line.
func splitInlineAnswers(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if !questionMarker.MatchString(line) {
			out = append(out, raw)
			continue
		}
		loc := inlineAnswer.FindStringIndex(line)
		if loc == nil {
			out = append(out, raw)
			continue
		}
		out = append(out, line[:loc[0]], strings.TrimSpace(line[loc[0]:]))
	}
	return out
}

// splitInlineLabeled breaks "What is insulin? Answer: …" lines after the question mark.
func splitInlineLabeled(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if labeledMarker.MatchString(line) {
			out = append(out, raw)
			continue
		}
		loc := inlineLabeled.FindStringSubmatchIndex(line)
		if loc == nil {
			out = append(out, raw)
			continue
		}
		out = append(out, strings.TrimSpace(line[:loc[2]]), line[loc[2]:])
	}
	return out
}

// genericPairs splits text on question marks: the last line before each mark is a
// question and the following non-question lines, up to a blank line, are its answer.
func genericPairs(text string) []domain.QAPair {
	text = strings.Join(splitLines(text), "\n")
	marks := questionSplit.FindAllStringIndex(text, -1)
	if len(marks) == 0 {
		return nil
	}

	var pairs []domain.QAPair
	start := 0
	for i, m := range marks {
		head := strings.TrimSpace(text[start:m[0]])
		mark := text[m[0]:m[1]]
		start = m[1]

		end := len(text)
		lastSection := i == len(marks)-1
		if !lastSection {
			end = marks[i+1][0]
		}
		tail := strings.Split(strings.TrimSpace(text[m[1]:end]), "\n")
		if !lastSection && len(tail) > 0 {
			// the final line of the section is the next question
			tail = tail[:len(tail)-1]
		}

		question := lastLine(head)
		if question == "" || skipLine(question) {
			continue
		}
		var answer string
		for _, l := range tail {
			l = strings.TrimSpace(l)
			if l == "" {
				break
			}
			answer = joinLine(answer, l)
		}
		if runeLen(question) > minQuestionLen && runeLen(answer) > minGenericAnswerLen {
			pairs = append(pairs, domain.QAPair{Question: question + mark, Answer: answer})
		}
	}
	return pairs
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
