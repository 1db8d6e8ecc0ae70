// Package extract recovers question/answer pairs from loosely structured text.
//
// Parsing is lenient by policy: blank lines, structural headers and malformed
// candidates are dropped one at a time, and a single bad line never aborts the
// whole parse. Only a document that yields nothing at all is an error.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"qa-quiz-service/internal/domain"
)

var questionSplit = regexp.MustCompile(`[？?]`)

// Extract detects the format of text and returns its pairs in document order.
func Extract(text string) (domain.Format, []domain.QAPair, error) {
	if strings.TrimSpace(text) == "" {
		return domain.FormatUnknown, nil, domain.ErrExtractionEmpty
	}
	format := Detect(text)
	pairs := Pairs(format, text)
	if len(pairs) == 0 {
		return format, nil, fmt.Errorf("%w: nothing recognizable as %s", domain.ErrExtractionEmpty, format)
	}
	return format, pairs, nil
}

// Pairs runs the extractor variant for format over text.
func Pairs(format domain.Format, text string) []domain.QAPair {
	lines := splitLines(text)
	switch format {
	case domain.FormatLabeledAnswer:
		return newScanner(splitInlineLabeled(lines), labeledGrammar()).run()
	case domain.FormatQAMarker:
		return newScanner(splitInlineAnswers(lines), qaMarkerGrammar()).run()
	case domain.FormatNumbered:
		return newScanner(lines, numberedGrammar()).run()
	default:
		return genericPairs(text)
	}
}

// CheckUsable reports ErrInsufficientPairs when fewer than threshold pairs were recovered.
// Callers decide whether that is fatal.
func CheckUsable(pairs []domain.QAPair, threshold int) error {
	if len(pairs) < threshold {
		return fmt.Errorf("%w: got %d, want at least %d", domain.ErrInsufficientPairs, len(pairs), threshold)
	}
	return nil
}
