// Package export validates quiz records and writes them as UTF-8 JSON.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"qa-quiz-service/internal/domain"
)

//go:embed quiz_record.schema.json
var schemaJSON []byte

const schemaURL = "quiz_record.schema.json"

var recordSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add schema resource: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

// Validate checks record against the embedded schema and the cross-field rules
// a schema cannot express.
func Validate(record domain.QuizRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := recordSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	if record.TotalQuestions != len(record.Questions) {
		return fmt.Errorf("%w: total_questions %d but %d questions", domain.ErrInvalidRecord, record.TotalQuestions, len(record.Questions))
	}
	for i, q := range record.Questions {
		if q.ID != i+1 {
			return fmt.Errorf("%w: question %d has id %d", domain.ErrInvalidRecord, i+1, q.ID)
		}
		if q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d correct_answer out of range", domain.ErrInvalidRecord, q.ID)
		}
	}
	return nil
}

// Write validates record and encodes it to w, indented, without HTML escaping so
// non-ASCII and markup characters survive verbatim.
func Write(w io.Writer, record domain.QuizRecord) error {
	if err := Validate(record); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// WriteFile writes record to path, creating parent directories as needed.
func WriteFile(path string, record domain.QuizRecord) error {
	var buf bytes.Buffer
	if err := Write(&buf, record); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write quiz file: %w", err)
	}
	return nil
}
