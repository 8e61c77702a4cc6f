// Package sentences supplies fill-in-the-blank questions from a bundled or
// imported bank and, when configured, from an LLM.
package sentences

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/wordfill/internal/ledger"
)

// Blank marks the position of the target word in a sentence.
const Blank = "___"

const (
	MinOptions = 2
	MaxOptions = 4
)

var (
	ErrInvalidQuestion = errors.New("invalid question")
	ErrNoQuestions     = errors.New("no questions available")
)

// Question is a sentence with one missing word and the choices offered
// for it. Word is always one of Options.
type Question struct {
	Word     string   `json:"word"`
	Sentence string   `json:"sentence"`
	Options  []string `json:"options"`
}

// SourceInput steers question selection.
type SourceInput struct {
	// Recent target words to avoid repeating.
	Recent []string
	// Review words the player has not mastered yet; preferred when possible.
	Review []string
}

// Source produces the next question to ask.
type Source interface {
	Next(ctx context.Context, in SourceInput) (*Question, error)
}

// Normalize lowercases and trims the word and options in place.
func (q *Question) Normalize() {
	q.Word = strings.ToLower(strings.TrimSpace(q.Word))
	q.Sentence = strings.TrimSpace(q.Sentence)
	for i, o := range q.Options {
		q.Options[i] = strings.ToLower(strings.TrimSpace(o))
	}
}

// Validate checks that q can be asked: a valid target word, a sentence
// with exactly one blank, and 2 to 4 distinct options containing the word.
func (q *Question) Validate() error {
	w, err := ledger.Normalize(q.Word)
	if err != nil {
		return fmt.Errorf("%w: word: %w", ErrInvalidQuestion, err)
	}
	if n := strings.Count(q.Sentence, Blank); n != 1 {
		return fmt.Errorf("%w: sentence must contain one %q, found %d", ErrInvalidQuestion, Blank, n)
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("%w: want %d to %d options, got %d", ErrInvalidQuestion, MinOptions, MaxOptions, len(q.Options))
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		n, err := ledger.Normalize(o)
		if err != nil {
			return fmt.Errorf("%w: option: %w", ErrInvalidQuestion, err)
		}
		if seen[n] {
			return fmt.Errorf("%w: duplicate option %q", ErrInvalidQuestion, n)
		}
		seen[n] = true
	}
	if !seen[w] {
		return fmt.Errorf("%w: options do not include %q", ErrInvalidQuestion, w)
	}
	return nil
}

// IsCorrect reports whether choice names the target word.
func (q *Question) IsCorrect(choice string) bool {
	return strings.EqualFold(strings.TrimSpace(choice), q.Word)
}

// Filled returns the sentence with the blank replaced by word.
func (q *Question) Filled(word string) string {
	return strings.Replace(q.Sentence, Blank, word, 1)
}

// Shuffled returns a copy of q with its options in random order.
func (q Question) Shuffled() *Question {
	opts := append([]string(nil), q.Options...)
	rand.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	q.Options = opts
	return &q
}
