package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"opencanada-grants-parser/internal/checksum"
	"opencanada-grants-parser/internal/observability"
	"opencanada-grants-parser/internal/scraper"
	"opencanada-grants-parser/internal/storage"
)

// Repository appends harvested records to a local sqlite database. Each row
// carries a content hash in the format the downstream uploader uses, so a
// later load can compare rows without re-deriving anything.
type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

var _ storage.Sink = (*Repository)(nil)

func NewRepository(dsn string, commandTimeoutMS int, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	commandTimeout := time.Duration(commandTimeoutMS) * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create grants table: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

const createTable = `
	CREATE TABLE IF NOT EXISTS grants (
		agreement             TEXT NOT NULL,
		agreement_number      TEXT NOT NULL,
		date_agreement        TEXT NOT NULL,
		date_agreed           TEXT NOT NULL,
		description           TEXT NOT NULL,
		recipient             TEXT NOT NULL,
		recipient_public_name TEXT NOT NULL,
		price                 TEXT NOT NULL,
		location              TEXT NOT NULL,
		row_hash              TEXT NOT NULL,
		scraped_at            TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

const insertRecord = `
	INSERT INTO grants (
		agreement, agreement_number, date_agreement, date_agreed,
		description, recipient, recipient_public_name, price, location,
		row_hash
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *Repository) Append(rec *scraper.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.commandTimeout)
	defer cancel()

	fields := rec.Fields()
	rowHash := checksum.RecordHash(fields...)

	args := make([]any, 0, len(fields)+1)
	for _, field := range fields {
		args = append(args, field)
	}
	args = append(args, rowHash)

	if _, err := r.db.ExecContext(ctx, insertRecord, args...); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
