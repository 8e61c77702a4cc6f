package sentences

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()
	require.Greater(t, b.Len(), 10)
	for _, q := range b.Questions() {
		assert.NoError(t, q.Validate(), "bundled question %q", q.Word)
	}
}

func TestParseBank_SchemaErrors(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"no questions":  `{}`,
		"extra field":   `{"questions":[{"word":"a","sentence":"___","options":["a","b"],"hint":"x"}]}`,
		"one option":    `{"questions":[{"word":"a","sentence":"___","options":["a"]}]}`,
		"missing blank": `{"questions":[{"word":"a","sentence":"a b","options":["a","b"]}]}`,
		"word missing":  `{"questions":[{"word":"a","sentence":"___","options":["b","c"]}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBank([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestBank_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bank.json")
	b, err := NewBank([]Question{
		{Word: "Cloud", Sentence: "A dark ___ covered the sun.", Options: []string{"CLOUD", "spoon"}},
		{Word: "cloud", Sentence: "A dark ___ covered the sun.", Options: []string{"cloud", "spoon"}},
		{Word: "drum", Sentence: "He beat the ___ loudly.", Options: []string{"drum", "leaf", "soap"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len(), "duplicates dropped")

	require.NoError(t, b.Save(path))
	loaded, err := LoadBank(path)
	require.NoError(t, err)
	assert.Equal(t, b.Questions(), loaded.Questions())

	_, err = LoadBank(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestBank_Merge(t *testing.T) {
	a, err := NewBank([]Question{{Word: "cat", Sentence: "The ___ purred.", Options: []string{"cat", "car"}}})
	require.NoError(t, err)
	b, err := NewBank([]Question{
		{Word: "cat", Sentence: "The ___ purred.", Options: []string{"cat", "car"}},
		{Word: "dog", Sentence: "The ___ barked.", Options: []string{"dog", "fog"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Merge(b))
	assert.Equal(t, 2, a.Len())
}

func testBank(t *testing.T, words ...string) *Bank {
	t.Helper()
	var qs []Question
	for _, w := range words {
		qs = append(qs, Question{Word: w, Sentence: "I saw a ___ today.", Options: []string{w, "zzz"}})
	}
	b, err := NewBank(qs)
	require.NoError(t, err)
	return b
}

func TestBank_NextPreferences(t *testing.T) {
	ctx := context.Background()
	b := testBank(t, "ant", "bee", "cow", "doe")

	for range 20 {
		q, err := b.Next(ctx, SourceInput{Review: []string{"cow", "ant"}, Recent: []string{"ANT"}})
		require.NoError(t, err)
		assert.Equal(t, "cow", q.Word, "review word not asked recently wins")
	}

	for range 20 {
		q, err := b.Next(ctx, SourceInput{Recent: []string{"ant", "bee", "cow"}})
		require.NoError(t, err)
		assert.Equal(t, "doe", q.Word)
	}

	q, err := b.Next(ctx, SourceInput{Recent: []string{"ant", "bee", "cow", "doe"}})
	require.NoError(t, err)
	assert.Contains(t, []string{"ant", "bee", "cow", "doe"}, q.Word, "all recent still yields a question")
}

func TestBank_NextEmpty(t *testing.T) {
	b, err := NewBank(nil)
	require.NoError(t, err)
	_, err = b.Next(context.Background(), SourceInput{})
	assert.ErrorIs(t, err, ErrNoQuestions)
}
