package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Default file names inside the data directory.
const (
	KnownWordsFile = "own_dictionary.txt"
	UsageFile      = "word_usage.txt"
)

// maxLineLen bounds a single line in either file. Longer lines are skipped.
const maxLineLen = 4096

// TextRepo implements LedgerRepo with two newline-delimited text files:
// one known word per line, and one "word:seen:correct" line per word.
type TextRepo struct {
	knownPath string
	usagePath string
}

var _ LedgerRepo = (*TextRepo)(nil)

// NewTextRepo creates a TextRepo using the default file names in dir.
func NewTextRepo(dir string) *TextRepo {
	return NewTextRepoPaths(filepath.Join(dir, KnownWordsFile), filepath.Join(dir, UsageFile))
}

// NewTextRepoPaths creates a TextRepo with explicit file paths.
func NewTextRepoPaths(knownPath, usagePath string) *TextRepo {
	return &TextRepo{knownPath: knownPath, usagePath: usagePath}
}

// KnownWordsPath returns the known-words file path.
func (r *TextRepo) KnownWordsPath() string { return r.knownPath }

// UsagePath returns the usage file path.
func (r *TextRepo) UsagePath() string { return r.usagePath }

func (r *TextRepo) LoadKnownWords(_ context.Context) ([]string, error) {
	f, err := os.Open(r.knownPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open known words: %w", err)
	}
	defer f.Close()

	words, err := readKnownWords(f)
	if err != nil {
		return nil, fmt.Errorf("read known words: %w", err)
	}
	return words, nil
}

func (r *TextRepo) AppendKnownWord(ctx context.Context, word string) error {
	existing, err := r.LoadKnownWords(ctx)
	if err != nil {
		return err
	}
	for _, w := range existing {
		if w == word {
			return nil
		}
	}

	if err := EnsureDir(r.knownPath); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(r.knownPath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open known words for append: %w", err)
	}

	line := word + "\n"
	terminated, err := endsWithNewline(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("inspect known words: %w", err)
	}
	if !terminated {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("append known word: %w", err)
	}
	return f.Close()
}

// endsWithNewline reports whether f is empty or its last byte is '\n'.
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

func (r *TextRepo) LoadUsage(_ context.Context) (map[string]WordUsageData, error) {
	f, err := os.Open(r.usagePath)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]WordUsageData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open usage: %w", err)
	}
	defer f.Close()

	usage, err := readUsage(f)
	if err != nil {
		return nil, fmt.Errorf("read usage: %w", err)
	}
	return usage, nil
}

// SaveUsage rewrites the usage file in full. The new content is written to a
// temp file in the same directory and renamed over the old file.
func (r *TextRepo) SaveUsage(_ context.Context, usage map[string]WordUsageData) error {
	if err := EnsureDir(r.usagePath); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.usagePath), ".word_usage-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp usage file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeUsage(tmp, usage); err != nil {
		tmp.Close()
		return fmt.Errorf("write usage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync usage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close usage: %w", err)
	}
	if err := os.Rename(tmpName, r.usagePath); err != nil {
		return fmt.Errorf("replace usage file: %w", err)
	}
	return nil
}

// readKnownWords returns trimmed, lowercased, non-empty lines with
// duplicates removed, in file order.
func readKnownWords(rd io.Reader) ([]string, error) {
	seen := make(map[string]bool)
	var words []string

	err := eachLine(rd, func(line string) {
		w := strings.ToLower(strings.TrimSpace(line))
		if w == "" || seen[w] {
			return
		}
		seen[w] = true
		words = append(words, w)
	})
	return words, err
}

// readUsage parses "word:seen:correct" lines. Lines that do not have exactly
// three fields, or whose counts are not non-negative integers, are skipped.
// A repeated word keeps its last line.
func readUsage(rd io.Reader) (map[string]WordUsageData, error) {
	usage := make(map[string]WordUsageData)

	err := eachLine(rd, func(line string) {
		if word, data, ok := parseUsageLine(line); ok {
			usage[word] = data
		}
	})
	return usage, err
}

// eachLine calls fn for every line of rd without its line ending. Lines
// longer than maxLineLen are skipped.
func eachLine(rd io.Reader, fn func(line string)) error {
	br := bufio.NewReaderSize(rd, maxLineLen)
	for {
		line, isPrefix, err := br.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !isPrefix {
			fn(string(line))
			continue
		}
		for isPrefix {
			_, isPrefix, err = br.ReadLine()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

func parseUsageLine(line string) (string, WordUsageData, bool) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) != 3 {
		return "", WordUsageData{}, false
	}

	word := strings.ToLower(strings.TrimSpace(parts[0]))
	if word == "" {
		return "", WordUsageData{}, false
	}

	seen, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || seen < 0 {
		return "", WordUsageData{}, false
	}
	correct, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || correct < 0 {
		return "", WordUsageData{}, false
	}

	return word, WordUsageData{Seen: seen, Correct: correct}, true
}

// writeUsage writes one line per word, sorted by word.
func writeUsage(w io.Writer, usage map[string]WordUsageData) error {
	words := make([]string, 0, len(usage))
	for word := range usage {
		words = append(words, word)
	}
	sort.Strings(words)

	bw := bufio.NewWriter(w)
	for _, word := range words {
		d := usage[word]
		if _, err := fmt.Fprintf(bw, "%s:%d:%d\n", word, d.Seen, d.Correct); err != nil {
			return err
		}
	}
	return bw.Flush()
}
