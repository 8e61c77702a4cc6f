package store

import (
	"context"
	"time"
)

// WordUsageData is the persisted counter pair for one word.
type WordUsageData struct {
	Seen    int
	Correct int
}

// LedgerRepo persists the two ledger artifacts: the known-word set and the
// word usage map. The artifacts are independent and never written atomically
// together.
type LedgerRepo interface {
	// LoadKnownWords returns every stored known word. A missing store is
	// not an error and yields an empty slice.
	LoadKnownWords(ctx context.Context) ([]string, error)

	// AppendKnownWord adds word to the known-word set unless already present.
	AppendKnownWord(ctx context.Context, word string) error

	// LoadUsage returns the stored usage map. Malformed entries are skipped.
	LoadUsage(ctx context.Context) (map[string]WordUsageData, error)

	// SaveUsage replaces the stored usage map with usage.
	SaveUsage(ctx context.Context, usage map[string]WordUsageData) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}
