package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"qa-quiz-service/internal/domain"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: "9090"
quiz:
  num_questions: 5
  domain: medical
  title: 糖尿病知识测验
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Quiz.NumQuestions != 5 {
		t.Fatalf("expected overrides applied, got %+v", cfg)
	}
	if cfg.Quiz.TimeLimit != 30 || cfg.Quiz.MinPairs != 10 {
		t.Fatalf("expected defaults kept, got time_limit=%d min_pairs=%d", cfg.Quiz.TimeLimit, cfg.Quiz.MinPairs)
	}
	opts := cfg.QuizDefaults()
	if opts.Domain != domain.DomainMedical || opts.Title != "糖尿病知识测验" {
		t.Fatalf("unexpected quiz defaults %+v", opts)
	}
	if cfg.ServiceSettings().MinPairs != 10 {
		t.Fatalf("expected min pairs passed through")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("quiz:\n  questions: 5\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"quiz:\n  domain: astrology\n",
		"quiz:\n  num_questions: -1\n",
		"redis:\n  ttl: soon\n",
	}
	for _, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
	_, err := Parse([]byte("quiz:\n  domain: astrology\n"))
	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("expected unknown domain, got %v", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Quiz.NumQuestions != 25 {
		t.Fatalf("expected default num_questions, got %d", cfg.Quiz.NumQuestions)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("quiz:\n  min_pairs: 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.MinPairs != 3 {
		t.Fatalf("expected min_pairs 3, got %d", cfg.Quiz.MinPairs)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("30s", time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for bad input, got %v", got)
	}
}
