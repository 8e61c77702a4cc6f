package sentences

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/wordfill/internal/llm"
)

//go:embed default_bank.json
var defaultBankJSON []byte

// BankSchema describes the sentence bank file format.
var BankSchema = &llm.Schema{
	Name:        "sentence-bank",
	Description: "A list of fill-in-the-blank questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": questionDefinition,
			},
		},
		"required": []any{"questions"},
	},
}

var questionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"word": map[string]any{
			"type":        "string",
			"minLength":   1,
			"description": "The missing word, lowercase",
		},
		"sentence": map[string]any{
			"type":        "string",
			"pattern":     "___",
			"description": "The sentence with the missing word replaced by ___",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    MinOptions,
			"maxItems":    MaxOptions,
			"description": "Choices shown to the player; one of them is the missing word",
		},
	},
	"required":             []any{"word", "sentence", "options"},
	"additionalProperties": false,
}

type bankFile struct {
	Questions []Question `json:"questions"`
}

// Bank is a fixed set of questions served in random order.
type Bank struct {
	mu        sync.Mutex
	questions []Question
	intn      func(int) int
}

// NewBank validates and normalizes qs. Duplicate word+sentence pairs are
// dropped.
func NewBank(qs []Question) (*Bank, error) {
	b := &Bank{intn: rand.IntN}
	seen := make(map[string]bool, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		q.Normalize()
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		key := q.Word + "\x00" + q.Sentence
		if seen[key] {
			continue
		}
		seen[key] = true
		b.questions = append(b.questions, q)
	}
	return b, nil
}

// DefaultBank returns the bank bundled with the binary.
func DefaultBank() *Bank {
	b, err := ParseBank(defaultBankJSON)
	if err != nil {
		panic(fmt.Sprintf("sentences: bundled bank is invalid: %v", err))
	}
	return b
}

// ParseBank decodes a bank document after checking it against BankSchema.
func ParseBank(data []byte) (*Bank, error) {
	if err := llm.ValidateJSON(BankSchema, data); err != nil {
		return nil, err
	}
	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return NewBank(f.Questions)
}

// LoadBank reads a bank file from path.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Save writes the bank as indented JSON, replacing path atomically.
func (b *Bank) Save(path string) error {
	data, err := json.MarshalIndent(bankFile{Questions: b.Questions()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bank dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".bank-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp bank: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write bank: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close bank: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace bank: %w", err)
	}
	return nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.questions)
}

// Questions returns a copy of the bank contents.
func (b *Bank) Questions() []Question {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}

// Merge adds the questions of other that b does not already hold and
// returns how many were added.
func (b *Bank) Merge(other *Bank) int {
	incoming := other.Questions()

	b.mu.Lock()
	defer b.mu.Unlock()
	have := make(map[string]bool, len(b.questions))
	for _, q := range b.questions {
		have[q.Word+"\x00"+q.Sentence] = true
	}
	added := 0
	for _, q := range incoming {
		key := q.Word + "\x00" + q.Sentence
		if have[key] {
			continue
		}
		have[key] = true
		b.questions = append(b.questions, q)
		added++
	}
	return added
}

// Next picks a random question. Review words not asked recently come
// first, then any word not asked recently, then anything.
func (b *Bank) Next(_ context.Context, in SourceInput) (*Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.questions) == 0 {
		return nil, ErrNoQuestions
	}

	recent := wordSet(in.Recent)
	review := wordSet(in.Review)

	var preferred, fresh []int
	for i, q := range b.questions {
		if recent[q.Word] {
			continue
		}
		fresh = append(fresh, i)
		if review[q.Word] {
			preferred = append(preferred, i)
		}
	}

	pool := preferred
	if len(pool) == 0 {
		pool = fresh
	}
	var idx int
	if len(pool) == 0 {
		idx = b.intn(len(b.questions))
	} else {
		idx = pool[b.intn(len(pool))]
	}
	return b.questions[idx].Shuffled(), nil
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return set
}
