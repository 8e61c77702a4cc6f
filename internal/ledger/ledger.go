package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/wordfill/internal/store"
)

var (
	// ErrInvalidWord is returned for words that are empty after trimming or
	// contain characters the stores cannot represent.
	ErrInvalidWord = errors.New("invalid word")

	// ErrStorage wraps every persistence failure during a mutation.
	ErrStorage = errors.New("ledger storage")
)

// UsageRecord holds the exposure and success counters for one word.
// TimesCorrect is not capped at TimesSeen.
type UsageRecord struct {
	TimesSeen    int
	TimesCorrect int
}

// Summary counts known words per mastery level.
type Summary struct {
	Known  int
	Counts map[Level]int
}

// Ledger is the in-memory usage ledger with write-through persistence.
type Ledger struct {
	mu     sync.Mutex
	repo   store.LedgerRepo
	known  map[string]bool
	usage  map[string]UsageRecord
	logger *slog.Logger
}

// New creates a Ledger and loads its state from repo. Load failures are
// logged and leave the affected artifact empty.
func New(ctx context.Context, repo store.LedgerRepo, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{
		repo:   repo,
		known:  make(map[string]bool),
		usage:  make(map[string]UsageRecord),
		logger: logger.With("component", "ledger"),
	}

	words, err := repo.LoadKnownWords(ctx)
	if err != nil {
		l.logger.Warn("known words unreadable, starting empty", "error", err)
	}
	for _, w := range words {
		if n, err := Normalize(w); err == nil {
			l.known[n] = true
		}
	}

	usage, err := repo.LoadUsage(ctx)
	if err != nil {
		l.logger.Warn("usage store unreadable, starting empty", "error", err)
	}
	for w, d := range usage {
		n, err := Normalize(w)
		if err != nil || d.Seen < 0 || d.Correct < 0 {
			continue
		}
		l.usage[n] = UsageRecord{TimesSeen: d.Seen, TimesCorrect: d.Correct}
	}

	l.logger.Debug("ledger loaded", "known", len(l.known), "records", len(l.usage))
	return l
}

// Normalize trims and lowercases word. It rejects empty words and words
// containing ':' or line breaks.
func Normalize(word string) (string, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidWord)
	}
	if strings.ContainsAny(w, ":\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return w, nil
}

// MarkSeen records that word was presented as a question target. The word is
// added to the known set if absent, its seen counter is incremented, and the
// usage map is persisted before returning.
func (l *Ledger) MarkSeen(ctx context.Context, word string) error {
	w, err := Normalize(word)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.known[w] {
		if err := l.repo.AppendKnownWord(ctx, w); err != nil {
			return fmt.Errorf("%w: append known word %q: %w", ErrStorage, w, err)
		}
		l.known[w] = true
	}

	prev, existed := l.usage[w]
	next := prev
	if existed {
		next.TimesSeen++
	} else {
		next = UsageRecord{TimesSeen: 1}
	}

	if err := l.commit(ctx, w, prev, existed, next); err != nil {
		return err
	}
	l.logger.Debug("word seen", "word", w, "seen", next.TimesSeen)
	return nil
}

// MarkGuessed records a correct answer for word and persists the usage map.
// A word with no record gets {seen:1, correct:1}.
func (l *Ledger) MarkGuessed(ctx context.Context, word string) error {
	w, err := Normalize(word)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev, existed := l.usage[w]
	next := prev
	if existed {
		next.TimesCorrect++
	} else {
		next = UsageRecord{TimesSeen: 1, TimesCorrect: 1}
	}

	if err := l.commit(ctx, w, prev, existed, next); err != nil {
		return err
	}
	l.logger.Debug("word guessed", "word", w, "correct", next.TimesCorrect)
	return nil
}

// commit applies next for w and persists the usage map. On a write failure
// the previous record is restored so memory matches the last good write.
// Caller must hold l.mu.
func (l *Ledger) commit(ctx context.Context, w string, prev UsageRecord, existed bool, next UsageRecord) error {
	l.usage[w] = next

	if err := l.repo.SaveUsage(ctx, l.snapshot()); err != nil {
		if existed {
			l.usage[w] = prev
		} else {
			delete(l.usage, w)
		}
		l.logger.Error("usage write failed", "word", w, "error", err)
		return fmt.Errorf("%w: save usage: %w", ErrStorage, err)
	}
	return nil
}

// snapshot converts the usage map to its persisted form. Caller must hold l.mu.
func (l *Ledger) snapshot() map[string]store.WordUsageData {
	out := make(map[string]store.WordUsageData, len(l.usage))
	for w, r := range l.usage {
		out[w] = store.WordUsageData{Seen: r.TimesSeen, Correct: r.TimesCorrect}
	}
	return out
}

// MasteryLevel classifies word by its correct-guess count. Words without a
// record, and invalid words, are LevelNew.
func (l *Ledger) MasteryLevel(word string) Level {
	rec, _ := l.Record(word)
	return Classify(rec.TimesCorrect)
}

// Record returns the counters for word and whether a record exists.
func (l *Ledger) Record(word string) (UsageRecord, bool) {
	w, err := Normalize(word)
	if err != nil {
		return UsageRecord{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.usage[w]
	return rec, ok
}

// AllKnownWords returns every known word, sorted.
func (l *Ledger) AllKnownWords() []string {
	l.mu.Lock()
	words := make([]string, 0, len(l.known))
	for w := range l.known {
		words = append(words, w)
	}
	l.mu.Unlock()

	sort.Strings(words)
	return words
}

// Summary counts known words per level.
func (l *Ledger) Summary() Summary {
	s := Summary{Counts: make(map[Level]int, len(Levels))}
	for _, w := range l.AllKnownWords() {
		s.Known++
		s.Counts[l.MasteryLevel(w)]++
	}
	return s
}

// ReviewWords returns known words below LevelMastered, least practised first.
func (l *Ledger) ReviewWords(limit int) []string {
	type entry struct {
		word    string
		correct int
	}

	var entries []entry
	for _, w := range l.AllKnownWords() {
		rec, _ := l.Record(w)
		if Classify(rec.TimesCorrect) == LevelMastered {
			continue
		}
		entries = append(entries, entry{word: w, correct: rec.TimesCorrect})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].correct < entries[j].correct
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.word
	}
	return out
}
