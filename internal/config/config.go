package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"qa-quiz-service/internal/app"
	"qa-quiz-service/internal/assemble"
	"qa-quiz-service/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL          string `yaml:"ttl"`
		NumQuestions int    `yaml:"num_questions"`
		Title        string `yaml:"title"`
		Description  string `yaml:"description"`
		TimeLimit    int    `yaml:"time_limit"`
		Domain       string `yaml:"domain"`
		MinPairs     int    `yaml:"min_pairs"`
	} `yaml:"quiz"`
	Distractors struct {
		DictionaryPath string `yaml:"dictionary_path"`
	} `yaml:"distractors"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Redis.TTL = "10m"
	cfg.Quiz.TTL = "10m"
	cfg.Quiz.NumQuestions = assemble.DefaultNumQuestions
	cfg.Quiz.TimeLimit = assemble.DefaultTimeLimit
	cfg.Quiz.Title = "Generated Quiz"
	cfg.Quiz.MinPairs = app.DefaultMinPairs
	return cfg
}

// Load reads YAML config from path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but treats a missing file as empty.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML config data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the generator cannot honour.
func (c Config) Validate() error {
	if _, err := domain.ParseDomain(c.Quiz.Domain); err != nil {
		return fmt.Errorf("quiz.domain %q: %w", c.Quiz.Domain, err)
	}
	if c.Quiz.NumQuestions < 0 || c.Quiz.TimeLimit < 0 || c.Quiz.MinPairs < 0 {
		return errors.New("quiz counts must not be negative")
	}
	for name, raw := range map[string]string{"redis.ttl": c.Redis.TTL, "quiz.ttl": c.Quiz.TTL} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// QuizDefaults returns the configured per-request defaults.
func (c Config) QuizDefaults() domain.QuizOptions {
	return domain.QuizOptions{
		NumQuestions: c.Quiz.NumQuestions,
		Title:        c.Quiz.Title,
		Description:  c.Quiz.Description,
		TimeLimit:    c.Quiz.TimeLimit,
		Domain:       domain.Domain(c.Quiz.Domain),
	}
}

// ServiceSettings adapts the config for app.NewQuizService.
func (c Config) ServiceSettings() app.Settings {
	return app.Settings{MinPairs: c.Quiz.MinPairs, Defaults: c.QuizDefaults()}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
