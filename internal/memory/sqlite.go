package memory

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS memory_entries (
    id INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    UNIQUE(kind, value)
);
`

const (
	kindTitle      = "title"
	kindSubheading = "subheading"
)

// SQLite keeps the store in a single table; Save replaces its contents in one
// transaction.
type SQLite struct {
	Path string
}

func (s *SQLite) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func (s *SQLite) Load(ctx context.Context) (*Store, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT kind, value FROM memory_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query memory: %w", err)
	}
	defer rows.Close()

	st := New()
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		switch kind {
		case kindTitle:
			st.Titles = append(st.Titles, value)
		case kindSubheading:
			st.Subheadings = append(st.Subheadings, value)
		}
	}
	return st, rows.Err()
}

func (s *SQLite) Save(ctx context.Context, st *Store) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memory_entries`); err != nil {
		return fmt.Errorf("clear memory: %w", err)
	}
	insert := func(kind string, values []string) error {
		for _, v := range values {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO memory_entries(kind, value) VALUES(?, ?)`, kind, v); err != nil {
				return fmt.Errorf("insert %s: %w", kind, err)
			}
		}
		return nil
	}
	if err := insert(kindTitle, st.Titles); err != nil {
		return err
	}
	if err := insert(kindSubheading, st.Subheadings); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
