package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// "1. What…", "12、…", "2、2型…", "1. 3 signs…". After an ASCII dot the body needs a
	// space or a non-digit so "3.9 mmol/L" is not an ordinal.
	ordinalLine = regexp.MustCompile(`^\d{1,3}(?:[、．]\s*(\S.*)|\.\s+(\S.*)|\.([^\d\s].*))$`)
	// "1.1", "2)", "(3)", "（4）"
	subNumbering   = regexp.MustCompile(`^(?:\d+[.．]\d+|\d+[)）]|[（(]\d+[)）])`)
	labeledMarker  = regexp.MustCompile(`^(?:答案|解答|答|(?i:answer|ans))\s*[：:]\s*`)
	questionMarker = regexp.MustCompile(`^(?i:q)\s*[：:]\s*`)
	answerMarker   = regexp.MustCompile(`^(?i:a)\s*[：:]\s*`)
	inlineAnswer   = regexp.MustCompile(`\s(?i:a)\s*[：:]`)
	// "What is insulin? Answer: …"
	inlineLabeled  = regexp.MustCompile(`[?？]\s*((?:答案|解答|答|\b(?i:answer|ans))\s*[：:])`)
	chapterHeading = regexp.MustCompile(`^(?:第[一二三四五六七八九十百零\d]+[章节篇部]|(?i:chapter|part)\s+\d+)`)
)

var denyContains = []string{"目录", "索引"}

var denyExact = map[string]struct{}{
	"contents":          {},
	"table of contents": {},
	"index":             {},
}

// skipLine reports structural lines (headers, table-of-contents markers) that never carry content.
func skipLine(line string) bool {
	for _, s := range denyContains {
		if strings.Contains(line, s) {
			return true
		}
	}
	if _, ok := denyExact[strings.ToLower(line)]; ok {
		return true
	}
	return chapterHeading.MatchString(line)
}

func endsWithQuestionMark(line string) bool {
	return strings.HasSuffix(line, "?") || strings.HasSuffix(line, "？")
}

// hasEnumerationPrefix matches bullets (parentheses, circled digits) and sub-numbering.
func hasEnumerationPrefix(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	switch {
	case r == '(' || r == '（' || r == '•':
		return true
	case r >= '①' && r <= '⑳':
		return true
	}
	return subNumbering.MatchString(line)
}

func stripOrdinal(line string) (string, bool) {
	m := ordinalLine.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	for _, body := range m[1:] {
		if body != "" {
			return strings.TrimSpace(body), true
		}
	}
	return line, false
}

func stripMarker(re *regexp.Regexp, line string) (string, bool) {
	loc := re.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}

func joinLine(acc, line string) string {
	if acc == "" {
		return line
	}
	return acc + " " + line
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// splitLines normalizes line endings and splits text into raw lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
