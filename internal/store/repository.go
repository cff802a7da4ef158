package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"gymclock/internal/timelog"

	_ "modernc.org/sqlite"
)

// MemoryPath keeps the archive in process memory.
const MemoryPath = ":memory:"

// Repository archives completed session records.
type Repository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func Open(ctx context.Context, path string, logger zerolog.Logger) (*Repository, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	repo := &Repository{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}
	if err := repo.init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	repo.logger.Debug().Str("path", path).Msg("Session store opened")
	return repo, nil
}

func (r *Repository) init(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS session_records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		started_at INTEGER NOT NULL,
		ended_at INTEGER NOT NULL
	)
	`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session_records table: %w", err)
	}
	return nil
}

func (r *Repository) CreateRecord(ctx context.Context, rec timelog.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO session_records (id, started_at, ended_at) VALUES (?, ?, ?)",
		rec.ID,
		rec.Start.UnixNano(),
		rec.End.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert record %s: %w", rec.ID, err)
	}
	return nil
}

// ListRecords returns archived records in insertion order, newest first.
func (r *Repository) ListRecords(ctx context.Context) ([]timelog.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, started_at, ended_at FROM session_records ORDER BY seq DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []timelog.Record
	for rows.Next() {
		var rec timelog.Record
		var startedAt, endedAt int64
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Start = time.Unix(0, startedAt)
		rec.End = time.Unix(0, endedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// LoadHistory rebuilds a History from the archive.
func (r *Repository) LoadHistory(ctx context.Context, dayOf timelog.DayFunc) (*timelog.History, error) {
	records, err := r.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	h := timelog.NewHistory(dayOf)
	for i := len(records) - 1; i >= 0; i-- {
		h.Append(records[i])
	}
	return h, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
