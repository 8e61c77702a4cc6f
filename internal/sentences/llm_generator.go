package sentences

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/wordfill/internal/llm"
)

// SentenceSchema is the structured output requested from the model.
var SentenceSchema = &llm.Schema{
	Name:        "fill-in-sentence",
	Description: "One vocabulary question: a sentence with a missing word and answer options",
	Definition:  questionDefinition,
}

const systemPrompt = `You write vocabulary practice questions for young readers.

Rules:
- Produce one short, everyday sentence with exactly one word replaced by ___.
- The missing word is a common English word a child aged 8-12 should learn.
- Give between 2 and 4 options, all lowercase single words, including the missing word.
- Distractors must be real words of a different meaning that clearly do not fit the sentence.
- Prefer a word from the "review" list when one is given.
- Never use a word from the "avoid" list as the missing word.`

// GeneratorConfig tunes the LLMGenerator.
type GeneratorConfig struct {
	MaxTokens   int
	Temperature float64

	// Limits on how many recent and review words are put in the prompt.
	MaxRecent int
	MaxReview int
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:   300,
		Temperature: 0.8,
		MaxRecent:   10,
		MaxReview:   8,
	}
}

// LLMGenerator asks a language model for fresh questions.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

func (g *LLMGenerator) Next(ctx context.Context, in SourceInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSentenceGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: g.userMessage(in)}},
		Schema:      SentenceSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var q Question
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if wordSet(in.Recent)[q.Word] {
		return nil, fmt.Errorf("%w: %q was asked recently", ErrInvalidQuestion, q.Word)
	}
	return q.Shuffled(), nil
}

func (g *LLMGenerator) userMessage(in SourceInput) string {
	var b strings.Builder
	b.WriteString("Write one fill-in-the-blank question.\n")
	fmt.Fprintf(&b, "\nReview (prefer one of these): %s", wordList(in.Review, g.config.MaxReview, false))
	fmt.Fprintf(&b, "\nAvoid (asked recently): %s", wordList(in.Recent, g.config.MaxRecent, true))
	return b.String()
}

// wordList joins at most max words, keeping the tail when newest is set.
func wordList(words []string, max int, newest bool) string {
	if len(words) == 0 {
		return "None"
	}
	if max > 0 && len(words) > max {
		if newest {
			words = words[len(words)-max:]
		} else {
			words = words[:max]
		}
	}
	return strings.Join(words, ", ")
}
