package games

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Question is a catalog prompt. Options is empty for free-form prompts
// such as dares.
type Question struct {
	ID       int64    `json:"id"`
	Category Category `json:"category"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
}

//go:embed questions.json
var defaultQuestions []byte

// DefaultQuestions returns the built-in catalog seeded at startup.
func DefaultQuestions() ([]Question, error) {
	return ReadQuestions(bytes.NewReader(defaultQuestions))
}

// ReadQuestions parses a JSON array of questions, as used by --seed-file.
func ReadQuestions(r io.Reader) ([]Question, error) {
	var qs []Question
	if err := json.NewDecoder(r).Decode(&qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	for i := range qs {
		qs[i].Text = strings.TrimSpace(qs[i].Text)
		if qs[i].Text == "" {
			return nil, fmt.Errorf("question %d: empty text", i)
		}
		if !qs[i].Category.Valid() {
			return nil, fmt.Errorf("question %d: unknown category %q", i, qs[i].Category)
		}
		if qs[i].Options == nil {
			qs[i].Options = []string{}
		}
	}

	return qs, nil
}

// FilterByCategory returns the questions in c, keeping their order.
func FilterByCategory(qs []Question, c Category) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if q.Category == c {
			out = append(out, q)
		}
	}
	return out
}
