package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"qa-quiz-service/internal/app"
	"qa-quiz-service/internal/assemble"
	"qa-quiz-service/internal/config"
	"qa-quiz-service/internal/distractor"
	"qa-quiz-service/internal/domain"
	"qa-quiz-service/internal/export"
	"qa-quiz-service/internal/infra/memory"
)

type generateFlags struct {
	output       string
	title        string
	description  string
	numQuestions int
	timeLimit    int
	domain       string
	seed         int64
	strict       bool
	dictionary   string
}

// NewGenerateCmd converts one plain-text document into a quiz JSON file.
func NewGenerateCmd(configPath *string) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <document.txt>",
		Short: "Generate a quiz JSON file from a text document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), *configPath, args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "quiz_questions.json", "output JSON path, - for stdout")
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "quiz title")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "quiz description")
	cmd.Flags().IntVarP(&flags.numQuestions, "num-questions", "n", 0, "number of questions (default from config)")
	cmd.Flags().IntVarP(&flags.timeLimit, "time-limit", "l", 0, "time limit in minutes (default from config)")
	cmd.Flags().StringVar(&flags.domain, "domain", "", "knowledge domain: medical, technical, business or legal")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "random seed for reproducible output (0 picks one)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when the document yields too few pairs")
	cmd.Flags().StringVar(&flags.dictionary, "dictionary", "", "YAML substitution dictionary overlay")
	return cmd
}

func runGenerate(ctx context.Context, configPath, input string, flags *generateFlags) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	text, err := readDocument(input)
	if err != nil {
		return err
	}

	d, err := domain.ParseDomain(flags.domain)
	if err != nil {
		return fmt.Errorf("--domain %q: %w", flags.domain, err)
	}

	dictionaryPath := flags.dictionary
	if dictionaryPath == "" {
		dictionaryPath = cfg.Distractors.DictionaryPath
	}
	service, err := newService(cfg, dictionaryPath, memory.NewStore(), memory.NewDigestIndex())
	if err != nil {
		return err
	}

	quiz, err := service.Generate(ctx, domain.GenerateRequest{
		Text: text,
		Options: domain.QuizOptions{
			NumQuestions: flags.numQuestions,
			Title:        flags.title,
			Description:  flags.description,
			TimeLimit:    flags.timeLimit,
			Domain:       d,
		},
		Seed:   flags.seed,
		Strict: flags.strict,
	})
	if err != nil {
		return err
	}

	if flags.output == "-" {
		return export.Write(os.Stdout, quiz.Quiz)
	}
	if err := export.WriteFile(flags.output, quiz.Quiz); err != nil {
		return err
	}
	log.Printf("wrote %d questions to %s (format %s, seed %d)", quiz.Quiz.TotalQuestions, flags.output, quiz.Report.Format, quiz.Seed)
	return nil
}

// readDocument loads a UTF-8 plain-text document. Other formats must be converted first.
func readDocument(path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".txt" && ext != ".md" && ext != "" {
		return "", fmt.Errorf("unsupported input format %q: convert the document to plain text first", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read document: %s is not valid UTF-8 text", path)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// newService assembles the generation pipeline over the given storage.
func newService(cfg config.Config, dictionaryPath string, store memory.QuizStore, digests app.DigestIndex) (*app.QuizService, error) {
	catalog := distractor.DefaultCatalog()
	if dictionaryPath != "" {
		loaded, err := distractor.LoadCatalogFile(dictionaryPath)
		if err != nil {
			return nil, err
		}
		catalog = loaded
		log.Printf("loaded substitution dictionary %s (%d generic terms)", dictionaryPath, catalog.Generic.Len())
	}
	quizzes := memory.NewQuizRepository(store, config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute))
	assembler := assemble.NewAssembler(distractor.NewSynthesizer(catalog))
	return app.NewQuizService(quizzes, digests, assembler, cfg.ServiceSettings()), nil
}
