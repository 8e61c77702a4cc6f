package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRepo_MissingFilesAreEmpty(t *testing.T) {
	repo := NewTextRepo(filepath.Join(t.TempDir(), "nothing-here"))
	ctx := context.Background()

	words, err := repo.LoadKnownWords(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)

	usage, err := repo.LoadUsage(ctx)
	require.NoError(t, err)
	assert.Empty(t, usage)
}

func TestTextRepo_AppendKnownWordIdempotent(t *testing.T) {
	dir := t.TempDir()
	repo := NewTextRepo(dir)
	ctx := context.Background()

	require.NoError(t, repo.AppendKnownWord(ctx, "cat"))
	require.NoError(t, repo.AppendKnownWord(ctx, "dog"))
	require.NoError(t, repo.AppendKnownWord(ctx, "cat"))

	raw, err := os.ReadFile(filepath.Join(dir, KnownWordsFile))
	require.NoError(t, err)
	assert.Equal(t, "cat\ndog\n", string(raw))
}

func TestTextRepo_LoadKnownWordsNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, KnownWordsFile)
	require.NoError(t, os.WriteFile(path, []byte("Cat\n\n  dog \nCAT\n"), 0o644))

	words, err := NewTextRepo(dir).LoadKnownWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, words)
}

func TestTextRepo_AppendRecognizesMixedCaseLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, KnownWordsFile)
	require.NoError(t, os.WriteFile(path, []byte("Apple\n"), 0o644))

	require.NoError(t, NewTextRepo(dir).AppendKnownWord(context.Background(), "apple"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Apple\n", string(raw))
}

func TestTextRepo_SaveUsageFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewTextRepo(dir)

	err := repo.SaveUsage(context.Background(), map[string]WordUsageData{
		"zebra": {Seen: 2, Correct: 1},
		"apple": {Seen: 5, Correct: 4},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, UsageFile))
	require.NoError(t, err)
	assert.Equal(t, "apple:5:4\nzebra:2:1\n", string(raw))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestTextRepo_UsageRoundTrip(t *testing.T) {
	repo := NewTextRepo(t.TempDir())
	ctx := context.Background()
	want := map[string]WordUsageData{
		"apple": {Seen: 3, Correct: 2},
		"pear":  {Seen: 1, Correct: 5},
	}

	require.NoError(t, repo.SaveUsage(ctx, want))
	got, err := repo.LoadUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTextRepo_LoadUsageSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"apple:3:2",
		"banana:4",
		"cherry:x:1",
		"date:1:-1",
		":1:1",
		"fig:1:2:3",
		"",
		"Grape:2:0",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsageFile), []byte(content), 0o644))

	usage, err := NewTextRepo(dir).LoadUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]WordUsageData{
		"apple": {Seen: 3, Correct: 2},
		"grape": {Seen: 2, Correct: 0},
	}, usage)
}

func TestTextRepo_OverlongLineSkipped(t *testing.T) {
	dir := t.TempDir()
	huge := strings.Repeat("x", 70000)
	ctx := context.Background()
	repo := NewTextRepo(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, UsageFile),
		[]byte("apple:5:4\n"+huge+"\npear:3:2\n"), 0o644))
	usage, err := repo.LoadUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]WordUsageData{
		"apple": {Seen: 5, Correct: 4},
		"pear":  {Seen: 3, Correct: 2},
	}, usage)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KnownWordsFile),
		[]byte("apple\n"+huge+"\npear\n"), 0o644))
	words, err := repo.LoadKnownWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear"}, words)

	require.NoError(t, repo.AppendKnownWord(ctx, "kiwi"))
	words, err = repo.LoadKnownWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear", "kiwi"}, words)
}

func TestTextRepo_AppendAfterUnterminatedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, KnownWordsFile)
	require.NoError(t, os.WriteFile(path, []byte("orphan"), 0o644))

	repo := NewTextRepo(dir)
	require.NoError(t, repo.AppendKnownWord(context.Background(), "kiwi"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "orphan\nkiwi\n", string(raw))

	words, err := repo.LoadKnownWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan", "kiwi"}, words)
}

func TestTextRepo_Paths(t *testing.T) {
	repo := NewTextRepo("/data")
	assert.Equal(t, filepath.Join("/data", KnownWordsFile), repo.KnownWordsPath())
	assert.Equal(t, filepath.Join("/data", UsageFile), repo.UsagePath())
}

func TestTextRepo_LoadUsageUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a file.
	require.NoError(t, os.Mkdir(filepath.Join(dir, UsageFile), 0o755))

	_, err := NewTextRepo(dir).LoadUsage(context.Background())
	assert.Error(t, err)
}

func TestParseUsageLine(t *testing.T) {
	tests := []struct {
		line string
		word string
		data WordUsageData
		ok   bool
	}{
		{"cat:1:0", "cat", WordUsageData{Seen: 1}, true},
		{" Cat : 2 : 1 ", "cat", WordUsageData{Seen: 2, Correct: 1}, true},
		{"cat:1", "", WordUsageData{}, false},
		{"cat", "", WordUsageData{}, false},
		{"cat:a:b", "", WordUsageData{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			word, data, ok := parseUsageLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.word, word)
			assert.Equal(t, tt.data, data)
		})
	}
}

func TestMemoryRepo_WriteErr(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveUsage(ctx, map[string]WordUsageData{"a": {Seen: 1}}))
	repo.WriteErr = os.ErrPermission

	assert.ErrorIs(t, repo.SaveUsage(ctx, map[string]WordUsageData{}), os.ErrPermission)
	assert.ErrorIs(t, repo.AppendKnownWord(ctx, "b"), os.ErrPermission)
	assert.Equal(t, map[string]WordUsageData{"a": {Seen: 1}}, repo.StoredUsage())
}
