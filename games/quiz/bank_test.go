package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBank(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

func TestLoadBankJSON(t *testing.T) {
	path := writeBank(t, "questions.json", `{
  "questions": [
    {"id": 1, "question": "What is 2 + 2?", "options": ["3", "4", "5", "6"], "correctAnswer": 1, "category": "Math", "difficulty": 1}
  ]
}`)

	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if len(bank.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(bank.Questions))
	}
	q := bank.Questions[0]
	if q.Text != "What is 2 + 2?" || q.Answer != 1 || q.Category != "Math" || len(q.Options) != 4 {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestLoadBankYAML(t *testing.T) {
	path := writeBank(t, "questions.yaml", `questions:
  - id: 7
    question: "  Which animal barks? "
    options: [Cat, Dog, Fish, Owl]
    correctAnswer: 1
    category: Animals
    difficulty: 1
`)

	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	pool, err := bank.Pool()
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	if len(pool) != 1 || pool[0].ID != 7 {
		t.Fatalf("unexpected pool: %+v", pool)
	}
	if pool[0].Text != "Which animal barks?" {
		t.Fatalf("expected trimmed text, got %q", pool[0].Text)
	}
}

func TestLoadBankYAMLUnknownField(t *testing.T) {
	path := writeBank(t, "questions.yml", `questions:
  - id: 1
    question: "Q"
    options: [a, b]
    correctAnswer: 0
    answer_text: a
`)

	if _, err := LoadBank(path); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	if _, err := LoadBank(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseBankMultipleDocuments(t *testing.T) {
	if _, err := ParseBank([]byte(`{"questions": []} {"questions": []}`), "json"); err == nil {
		t.Fatalf("expected multiple documents to be rejected")
	}
	if _, err := ParseBank([]byte("questions: []\n---\nquestions: []\n"), "yaml"); err == nil {
		t.Fatalf("expected multiple yaml documents to be rejected")
	}
	if _, err := ParseBank([]byte(`{}`), "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestBankPoolFiltersMalformed(t *testing.T) {
	bank := Bank{Questions: []Question{
		{ID: 1, Text: "ok", Options: []string{"a", "b", "c", "d"}, Answer: 2},
		{ID: 2, Text: "too few", Options: []string{"a"}, Answer: 0},
		{ID: 3, Text: "out of range", Options: []string{"a", "b"}, Answer: 2},
		{ID: 4, Text: "negative", Options: []string{"a", "b"}, Answer: -1},
		{ID: 5, Text: "   ", Options: []string{"a", "b"}, Answer: 0},
		{ID: 6, Text: "blank option", Options: []string{"a", " "}, Answer: 0},
		{ID: 7, Text: "too many", Options: []string{"a", "b", "c", "d", "e"}, Answer: 0},
		{ID: 1, Text: "duplicate", Options: []string{"a", "b"}, Answer: 0},
		{ID: 8, Text: "two options", Options: []string{"yes", "no"}, Answer: 1},
	}}

	pool, err := bank.Pool()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 7 {
		t.Fatalf("expected 7 issues, got %d: %v", len(verr.Issues), verr)
	}
	if !strings.Contains(verr.Error(), "questions[7].id") {
		t.Fatalf("expected duplicate id issue, got %q", verr.Error())
	}
	if len(pool) != 2 || pool[0].ID != 1 || pool[1].ID != 8 {
		t.Fatalf("unexpected pool: %+v", pool)
	}
}

func TestDefaultBankIsValid(t *testing.T) {
	bank, err := DefaultBank()
	if err != nil {
		t.Fatalf("default bank: %v", err)
	}
	pool, err := bank.Pool()
	if err != nil {
		t.Fatalf("default bank has issues: %v", err)
	}
	if len(pool) < DefaultRoundSize {
		t.Fatalf("expected at least %d questions, got %d", DefaultRoundSize, len(pool))
	}
}

func TestLoadPoolFallback(t *testing.T) {
	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, format)
	}

	cases := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "missing.json")},
		{name: "broken json", path: writeBank(t, "broken.json", `{"questions": [`)},
		{name: "no valid questions", path: writeBank(t, "empty.json", `{"questions": [{"id": 1, "question": "Q", "options": ["a"], "correctAnswer": 0}]}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logged = nil
			pool := LoadPool(tc.path, logf)
			if len(pool) != len(FallbackPool()) {
				t.Fatalf("expected fallback pool, got %d questions", len(pool))
			}
			if len(logged) == 0 {
				t.Fatalf("expected the fallback to be logged")
			}
		})
	}
}

func TestLoadPoolDefault(t *testing.T) {
	pool := LoadPool("", nil)
	if len(pool) <= len(FallbackPool()) {
		t.Fatalf("expected built-in bank, got %d questions", len(pool))
	}
}

func TestFallbackPoolIsValid(t *testing.T) {
	pool, err := Bank{Questions: FallbackPool()}.Pool()
	if err != nil {
		t.Fatalf("fallback pool has issues: %v", err)
	}
	if len(pool) < 2 {
		t.Fatalf("expected at least 2 fallback questions, got %d", len(pool))
	}
}
