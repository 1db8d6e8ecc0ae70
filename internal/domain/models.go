package domain

import "time"

// Format is the structural convention a source document follows.
type Format string

const (
	FormatLabeledAnswer Format = "labeled-answer"
	FormatQAMarker      Format = "qa-marker"
	FormatNumbered      Format = "numbered"
	FormatUnknown       Format = "unknown"
)

// Domain selects a specialized substitution overlay for distractor synthesis.
type Domain string

const (
	DomainNone      Domain = ""
	DomainMedical   Domain = "medical"
	DomainTechnical Domain = "technical"
	DomainBusiness  Domain = "business"
	DomainLegal     Domain = "legal"
)

// ParseDomain validates a raw domain tag.
func ParseDomain(raw string) (Domain, error) {
	switch d := Domain(raw); d {
	case DomainNone, DomainMedical, DomainTechnical, DomainBusiness, DomainLegal:
		return d, nil
	default:
		return DomainNone, ErrUnknownDomain
	}
}

// QAPair is one recovered question/answer unit.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Question is an assembled multiple-choice item.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"` // 0-based index into Options
	Explanation   string   `json:"explanation"`
}

// QuizRecord is the terminal artifact handed to persistence collaborators.
type QuizRecord struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TimeLimit      int        `json:"time_limit"` // minutes
	TotalQuestions int        `json:"total_questions"`
	Questions      []Question `json:"questions"`
}

// QuizOptions is the configuration surface of a single assembly.
type QuizOptions struct {
	NumQuestions int    `json:"num_questions"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TimeLimit    int    `json:"time_limit"`
	Domain       Domain `json:"domain"`
}

// GenerateRequest is one document-to-quiz invocation.
type GenerateRequest struct {
	Text    string      `json:"text"`
	Options QuizOptions `json:"options"`
	Seed    int64       `json:"seed,omitempty"`   // 0 picks a time-based seed
	Strict  bool        `json:"strict,omitempty"` // fail instead of warn on few pairs
}

// Report summarizes how a document was parsed.
type Report struct {
	Format    Format   `json:"format"`
	PairCount int      `json:"pair_count"`
	Warnings  []string `json:"warnings,omitempty"`
}

// GeneratedQuiz wraps a QuizRecord with the metadata needed to store and reproduce it.
type GeneratedQuiz struct {
	ID        string     `json:"id"`
	Digest    string     `json:"digest,omitempty"`
	Seed      int64      `json:"seed"`
	Report    Report     `json:"report"`
	CreatedAt time.Time  `json:"created_at"`
	Quiz      QuizRecord `json:"quiz"`
}
