/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	MinOptions = 2
	MaxOptions = 4
)

//go:embed questions.json
var defaultBank []byte

// Bank is the on-disk question document.
type Bank struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// Issue is a problem with a single question of a bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError lists the questions that were dropped from a bank.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}

	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}

	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

// LoadBank reads a question bank from path. Files ending in .yaml or .yml
// are decoded as YAML, anything else as JSON.
func LoadBank(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read question bank: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseBank(data, "yaml")
	default:
		return ParseBank(data, "json")
	}
}

// DefaultBank returns the bank compiled into the binary.
func DefaultBank() (Bank, error) {
	return ParseBank(defaultBank, "json")
}

func ParseBank(data []byte, format string) (Bank, error) {
	switch format {
	case "json":
		return parseJSONBank(data)
	case "yaml":
		return parseYAMLBank(data)
	default:
		return Bank{}, fmt.Errorf("unsupported question bank format %q", format)
	}
}

func parseJSONBank(data []byte) (Bank, error) {
	var bank Bank

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&bank); err != nil {
		return Bank{}, fmt.Errorf("parse json: %w", err)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Bank{}, errors.New("parse json: multiple documents are not supported")
		}

		return Bank{}, fmt.Errorf("parse json: %w", err)
	}

	return bank, nil
}

func parseYAMLBank(data []byte) (Bank, error) {
	var bank Bank

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bank); err != nil {
		return Bank{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Bank{}, errors.New("parse yaml: multiple documents are not supported")
		}

		return Bank{}, fmt.Errorf("parse yaml: %w", err)
	}

	return bank, nil
}

// Pool returns the well-formed questions of the bank. Malformed questions
// are left out and described by the returned *ValidationError; the pool is
// usable even when the error is non-nil.
func (b Bank) Pool() ([]Question, error) {
	var issues []Issue

	pool := make([]Question, 0, len(b.Questions))
	seen := make(map[int]struct{}, len(b.Questions))

	for i, q := range b.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		if msg := checkQuestion(q); msg != "" {
			issues = append(issues, Issue{Field: prefix, Message: msg})

			continue
		}

		if _, dup := seen[q.ID]; dup {
			issues = append(issues, Issue{Field: prefix + ".id", Message: fmt.Sprintf("duplicate id %d", q.ID)})

			continue
		}
		seen[q.ID] = struct{}{}

		q.Text = strings.TrimSpace(q.Text)
		pool = append(pool, q)
	}

	if len(issues) > 0 {
		return pool, &ValidationError{Issues: issues}
	}

	return pool, nil
}

func checkQuestion(q Question) string {
	switch {
	case strings.TrimSpace(q.Text) == "":
		return "question text is required"
	case len(q.Options) < MinOptions:
		return fmt.Sprintf("needs at least %d options, has %d", MinOptions, len(q.Options))
	case len(q.Options) > MaxOptions:
		return fmt.Sprintf("allows at most %d options, has %d", MaxOptions, len(q.Options))
	case q.Answer < 0 || q.Answer >= len(q.Options):
		return fmt.Sprintf("correctAnswer %d is out of range", q.Answer)
	}

	for i, option := range q.Options {
		if strings.TrimSpace(option) == "" {
			return fmt.Sprintf("option %d is empty", i)
		}
	}

	return ""
}

// LoadPool loads the bank at path (or the compiled-in bank when path is
// empty) and returns its valid questions. Any failure, including a bank
// with no valid questions, falls back to FallbackPool. logf may be nil.
func LoadPool(path string, logf func(format string, args ...any)) []Question {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	source := path
	if source == "" {
		source = "built-in bank"
	}

	var (
		bank Bank
		err  error
	)
	if path == "" {
		bank, err = DefaultBank()
	} else {
		bank, err = LoadBank(path)
	}
	if err != nil {
		logf("QUESTIONS: Failed to load %s (%v), using fallback questions", source, err)

		return FallbackPool()
	}

	pool, err := bank.Pool()

	var verr *ValidationError
	if errors.As(err, &verr) {
		for _, issue := range verr.Issues {
			logf("QUESTIONS: Skipped %s in %s: %s", issue.Field, source, issue.Message)
		}
	}

	if len(pool) == 0 {
		logf("QUESTIONS: No valid questions in %s, using fallback questions", source)

		return FallbackPool()
	}

	logf("QUESTIONS: Loaded %d questions from %s", len(pool), source)

	return pool
}
