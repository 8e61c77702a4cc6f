package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// usageInsertChunk bounds the rows per INSERT so a statement stays under
// SQLite's bound-variable limit.
const usageInsertChunk = 300

// sqliteLedgerRepo implements LedgerRepo on the known_words and word_usage tables.
type sqliteLedgerRepo struct {
	db *sql.DB
}

func (r *sqliteLedgerRepo) LoadKnownWords(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("word").From("known_words").OrderBy("word ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query known words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan known word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (r *sqliteLedgerRepo) AppendKnownWord(ctx context.Context, word string) error {
	query, args, err := psql.Insert("known_words").
		Columns("word").
		Values(word).
		Suffix("ON CONFLICT(word) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert known word: %w", err)
	}
	return nil
}

func (r *sqliteLedgerRepo) LoadUsage(ctx context.Context) (map[string]WordUsageData, error) {
	query, args, err := psql.Select("word", "times_seen", "times_correct").From("word_usage").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[string]WordUsageData)
	for rows.Next() {
		var (
			word string
			d    WordUsageData
		)
		if err := rows.Scan(&word, &d.Seen, &d.Correct); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		usage[word] = d
	}
	return usage, rows.Err()
}

// SaveUsage rewrites the word_usage table inside one transaction.
func (r *sqliteLedgerRepo) SaveUsage(ctx context.Context, usage map[string]WordUsageData) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	del, args, err := psql.Delete("word_usage").ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("clear usage: %w", err)
	}

	words := make([]string, 0, len(usage))
	for w := range usage {
		words = append(words, w)
	}
	sort.Strings(words)

	for start := 0; start < len(words); start += usageInsertChunk {
		end := min(start+usageInsertChunk, len(words))

		ins := psql.Insert("word_usage").Columns("word", "times_seen", "times_correct")
		for _, w := range words[start:end] {
			d := usage[w]
			ins = ins.Values(w, d.Seen, d.Correct)
		}

		var query string
		query, args, err = ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert usage: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit usage: %w", err)
	}
	return nil
}
