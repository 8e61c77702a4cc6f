package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "wordfill.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		require.NoError(t, err, "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordfill.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.LedgerRepo().AppendKnownWord(context.Background(), "apple"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	words, err := s.LedgerRepo().LoadKnownWords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, words)
}

func TestSQLiteLedger_KnownWordsIdempotent(t *testing.T) {
	repo := openTestStore(t).LedgerRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendKnownWord(ctx, "cat"))
	require.NoError(t, repo.AppendKnownWord(ctx, "ant"))
	require.NoError(t, repo.AppendKnownWord(ctx, "cat"))

	words, err := repo.LoadKnownWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ant", "cat"}, words)
}

func TestSQLiteLedger_SaveUsageRewrites(t *testing.T) {
	repo := openTestStore(t).LedgerRepo()
	ctx := context.Background()

	usage, err := repo.LoadUsage(ctx)
	require.NoError(t, err)
	assert.Empty(t, usage)

	require.NoError(t, repo.SaveUsage(ctx, map[string]WordUsageData{
		"apple":  {Seen: 3, Correct: 2},
		"banana": {Seen: 1, Correct: 0},
	}))
	require.NoError(t, repo.SaveUsage(ctx, map[string]WordUsageData{
		"apple": {Seen: 4, Correct: 3},
	}))

	usage, err = repo.LoadUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]WordUsageData{"apple": {Seen: 4, Correct: 3}}, usage)
}

func TestSQLiteLedger_SaveUsageManyRows(t *testing.T) {
	repo := openTestStore(t).LedgerRepo()
	ctx := context.Background()

	want := make(map[string]WordUsageData)
	for i := range 2*usageInsertChunk + 7 {
		want[wordN(i)] = WordUsageData{Seen: i + 1, Correct: i % 5}
	}
	require.NoError(t, repo.SaveUsage(ctx, want))

	got, err := repo.LoadUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		SessionID: "s1", Provider: "mock", Model: "mock", Purpose: "sentence-gen",
		InputTokens: 10, OutputTokens: 5, LatencyMs: 12, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"word":"cat"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "other",
		InputTokens: 1, OutputTokens: 1, LatencyMs: 30, Success: false, ErrorMessage: "boom",
	}))

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "other", all[0].Purpose, "newest first")
	assert.False(t, all[0].Timestamp.IsZero())

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "sentence-gen", Limit: 5})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "s1", filtered[0].SessionID)
	assert.True(t, filtered[0].Success)

	got, err := repo.GetLLMEvent(ctx, filtered[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"word":"cat"}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	usage, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, PurposeUsage{Purpose: "other", Calls: 1, InputTokens: 1, OutputTokens: 1, AvgLatencyMs: 30}, usage[0])
	assert.Equal(t, 10, usage[1].InputTokens)
}

func TestDefaultDataDir_Env(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("WORDFILL_DATA_DIR", dir)

	got, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, dir)
}

func TestDefaultDataDir_XDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WORDFILL_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", home)

	got, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "wordfill"), got)
}

func wordN(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := []byte{letters[i%26], letters[(i/26)%26], letters[(i/676)%26]}
	return string(b)
}
