package extract

import (
	"regexp"

	"qa-quiz-service/internal/domain"
)

type detector struct {
	format  domain.Format
	pattern *regexp.Regexp
}

// detectors are checked in priority order; the first pattern found anywhere in the text wins.
var detectors = []detector{
	{domain.FormatLabeledAnswer, regexp.MustCompile(`(?:答案|解答|答)\s*[：:]|\b(?i:answer|ans)\s*[：:]`)},
	{domain.FormatQAMarker, regexp.MustCompile(`(?ms)^\s*(?i:q)\s*[：:].*?\b(?i:a)\s*[：:]`)},
	{domain.FormatNumbered, regexp.MustCompile(`(?m)^[ \t]*\d{1,3}(?:[、．][ \t]*\S|\.[ \t]+\S|\.[^\d\s])`)},
}

// Detect classifies text into one of the known structural conventions.
// Text matching none of them is FormatUnknown.
func Detect(text string) domain.Format {
	for _, d := range detectors {
		if d.pattern.MatchString(text) {
			return d.format
		}
	}
	return domain.FormatUnknown
}
