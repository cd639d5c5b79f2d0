// Package store handles SQLite persistence of the reading history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/robco-termlink/wastelandhub/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for read records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "mkdir data dir")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, errors.Wrap(err, "migrate")
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reads (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			log_key TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			outcome TEXT NOT NULL,
			revealed INTEGER NOT NULL,
			total INTEGER NOT NULL,
			cps INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reads_ended_at ON reads(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_reads_log_key ON reads(log_key);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores one finished reveal.
func (s *Store) Record(ctx context.Context, r model.ReadRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reads (run_id, log_key, started_at, ended_at, outcome, revealed, total, cps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.LogKey,
		r.StartedAt.UTC().Format(timeLayout),
		r.EndedAt.UTC().Format(timeLayout),
		r.Outcome,
		r.Revealed,
		r.Total,
		r.CPS,
	)
	if err != nil {
		return errors.Wrap(err, "insert read")
	}
	return nil
}

// ListReads returns read records oldest first. With a positive Last only
// the most recent Last records are returned.
func (s *Store) ListReads(ctx context.Context, filter model.HistoryFilter) ([]model.ReadRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.LogKey != "" {
		clauses = append(clauses, "log_key = ?")
		args = append(args, filter.LogKey)
	}
	limit := -1
	if filter.Last > 0 {
		limit = filter.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT run_id, log_key, started_at, ended_at, outcome, revealed, total, cps FROM (
		SELECT * FROM reads
		WHERE %s
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	) ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query reads")
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ReadRecord
	for rows.Next() {
		var r model.ReadRecord
		var startedAt, endedAt string
		if err := rows.Scan(&r.RunID, &r.LogKey, &startedAt, &endedAt, &r.Outcome, &r.Revealed, &r.Total, &r.CPS); err != nil {
			return nil, errors.Wrap(err, "scan read")
		}
		if r.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, errors.Wrap(err, "parse started_at")
		}
		if r.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, errors.Wrap(err, "parse ended_at")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate reads")
	}
	return records, nil
}

// CountByKey returns how many reads each log key has.
func (s *Store) CountByKey(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT log_key, COUNT(*) FROM reads GROUP BY log_key`)
	if err != nil {
		return nil, errors.Wrap(err, "count reads")
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	counts := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, errors.Wrap(err, "scan count")
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate counts")
	}
	return counts, nil
}
