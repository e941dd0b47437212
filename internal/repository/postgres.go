package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"offplanbot/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_search_logs (
	id               BIGSERIAL PRIMARY KEY,
	session_id       TEXT        NOT NULL,
	request          JSONB       NOT NULL,
	result_count     INTEGER     NOT NULL DEFAULT 0,
	returned_ids     TEXT[]      NOT NULL DEFAULT '{}',
	response_time_ms INTEGER     NOT NULL DEFAULT 0,
	error            TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_chat_search_logs_session ON chat_search_logs (session_id, created_at DESC);

CREATE TABLE IF NOT EXISTS chat_feedback (
	id         BIGSERIAL PRIMARY KEY,
	session_id TEXT        NOT NULL,
	project_id TEXT        NOT NULL,
	action     TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresRepository stores the search audit log and property feedback
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return NewPostgresRepositoryFromDB(db), nil
}

// NewPostgresRepositoryFromDB wraps an existing connection pool
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// EnsureSchema creates the audit tables when they are missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LogSearch records one backend search
func (r *PostgresRepository) LogSearch(ctx context.Context, entry *model.SearchLogEntry) error {
	request, err := json.Marshal(entry.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal search request: %w", err)
	}

	returned := entry.ReturnedIDs
	if returned == nil {
		returned = []string{}
	}

	query := `
		INSERT INTO chat_search_logs (session_id, request, result_count, returned_ids, response_time_ms, error)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.SessionID,
		request,
		entry.ResultCount,
		pq.Array(returned),
		entry.ResponseTimeMs,
		sql.NullString{String: entry.Error, Valid: entry.Error != ""},
	)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// RecentSearches returns the latest audited searches of a session, newest first
func (r *PostgresRepository) RecentSearches(ctx context.Context, sessionID string, limit int) ([]model.SearchLogRecord, error) {
	query := `
		SELECT id, session_id, request, result_count, returned_ids, response_time_ms,
			COALESCE(error, '') AS error, created_at
		FROM chat_search_logs
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	records := []model.SearchLogRecord{}
	if err := r.db.SelectContext(ctx, &records, query, sessionID, limit); err != nil {
		return nil, fmt.Errorf("failed to load searches: %w", err)
	}
	return records, nil
}

// LogFeedback records what a visitor did with a property card
func (r *PostgresRepository) LogFeedback(ctx context.Context, sessionID, projectID, action string) error {
	query := `
		INSERT INTO chat_feedback (session_id, project_id, action)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, sessionID, projectID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
