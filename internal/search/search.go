// Package search is a SQLite FTS5 phrase index over verse text. It backs the
// phrase-search fallback of reference suggestions.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/versefinder/core/canon"
	apperrors "github.com/FocuswithJustin/versefinder/core/errors"
	"github.com/FocuswithJustin/versefinder/core/sqlite"
	"github.com/FocuswithJustin/versefinder/core/suggest"
	"github.com/FocuswithJustin/versefinder/internal/logging"
)

// DefaultLimit caps the number of hits returned by Search.
const DefaultLimit = 20

const schema = `
	CREATE VIRTUAL TABLE IF NOT EXISTS verses USING fts5(
		token UNINDEXED,
		book UNINDEXED,
		chapter UNINDEXED,
		verse UNINDEXED,
		text
	);
`

// Entry is one indexed verse. Book is the USFM book code.
type Entry struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// Token returns the entry's location token ("JHN.3.16").
func (e Entry) Token() string {
	return fmt.Sprintf("%s.%d.%d", e.Book, e.Chapter, e.Verse)
}

// Index is a phrase index backed by a SQLite database file.
type Index struct {
	db    *sql.DB
	path  string
	limit int
}

// Option configures an Index.
type Option func(*Index)

// WithLimit sets the maximum number of hits per search.
func WithLimit(n int) Option {
	return func(ix *Index) {
		if n > 0 {
			ix.limit = n
		}
	}
}

// Open opens or creates the index at path. It fails with an UnsupportedError
// when the linked SQLite lacks FTS5.
func Open(ctx context.Context, path string, opts ...Option) (*Index, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	return open(ctx, db, path, true, opts)
}

// OpenReadOnly opens an existing index for searching only.
func OpenReadOnly(ctx context.Context, path string, opts ...Option) (*Index, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	return open(ctx, db, path, false, opts)
}

func open(ctx context.Context, db *sql.DB, path string, create bool, opts []Option) (*Index, error) {
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	ix := &Index{db: db, path: path, limit: DefaultLimit}
	for _, opt := range opts {
		opt(ix)
	}

	ok, err := sqlite.HasFTS5(ctx, db)
	if err != nil {
		db.Close()
		return nil, apperrors.NewIO("open", path, err)
	}
	if !ok {
		db.Close()
		return nil, apperrors.NewUnsupported("sqlite build", sqlite.FTS5Hint())
	}

	if create {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	logging.IndexEvent("opened", path, 0, "driver", sqlite.DriverType(), "read_only", !create)
	return ix, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Add indexes entries in a single transaction. Entries naming an unknown
// book are rejected before anything is written.
func (ix *Index) Add(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if _, ok := canon.ByUSFM(e.Book); !ok {
			return apperrors.NewValidation("book", fmt.Sprintf("unknown book code %q", e.Book))
		}
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO verses (token, book, chapter, verse, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Token(), e.Book, e.Chapter, e.Verse, e.Text); err != nil {
			return fmt.Errorf("inserting %s: %w", e.Token(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	logging.IndexEvent("indexed", ix.path, len(entries))
	return nil
}

// Count returns the number of indexed verses.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := ix.db.QueryRowContext(ctx, "SELECT count(*) FROM verses").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting verses: %w", err)
	}
	return n, nil
}

// Search returns the verses containing phrase, best match first. A blank
// phrase has no hits.
func (ix *Index) Search(ctx context.Context, phrase string) ([]suggest.Hit, error) {
	q := matchExpr(phrase)
	if q == "" {
		return []suggest.Hit{}, nil
	}

	rows, err := ix.db.QueryContext(ctx,
		"SELECT book, chapter, verse FROM verses WHERE verses MATCH ? ORDER BY rank LIMIT ?",
		q, ix.limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", phrase, err)
	}
	defer rows.Close()

	hits := []suggest.Hit{}
	for rows.Next() {
		var h suggest.Hit
		if err := rows.Scan(&h.Book, &h.Chapter, &h.Verse); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("searching %q: %w", phrase, err)
	}
	return hits, nil
}

// matchExpr quotes phrase as a single FTS5 phrase query so user punctuation
// is never read as query syntax.
func matchExpr(phrase string) string {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return ""
	}
	return `"` + strings.ReplaceAll(strings.Join(words, " "), `"`, `""`) + `"`
}
