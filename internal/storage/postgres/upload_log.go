// Package postgres persists upload events in PostgreSQL.
//
// Only upload metadata is stored. Retailer records stay in memory and are
// never written to the database.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUploadEvents = `
CREATE TABLE IF NOT EXISTS upload_events (
	id            UUID PRIMARY KEY,
	file_name     TEXT NOT NULL,
	row_count     INTEGER NOT NULL,
	status_counts JSONB NOT NULL DEFAULT '{}'::jsonb,
	ip_address    TEXT,
	user_agent    TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS upload_events_created_at_idx ON upload_events (created_at DESC);
`

const insertUploadEvent = `
INSERT INTO upload_events (id, file_name, row_count, status_counts, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const selectRecentUploadEvents = `
SELECT id, file_name, row_count, status_counts, ip_address, user_agent, created_at
FROM upload_events
ORDER BY created_at DESC
LIMIT $1`

// DBTX is the subset of *pgxpool.Pool used by UploadLog.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// UploadLog implements core.UploadLog on PostgreSQL.
type UploadLog struct {
	db DBTX
}

var _ core.UploadLog = (*UploadLog)(nil)

// NewUploadLog creates the upload_events table if needed.
func NewUploadLog(ctx context.Context, db DBTX) (*UploadLog, error) {
	if _, err := db.Exec(ctx, createUploadEvents); err != nil {
		return nil, fmt.Errorf("create upload_events: %w", err)
	}
	return &UploadLog{db: db}, nil
}

func (l *UploadLog) Append(ctx context.Context, ev core.UploadEvent) error {
	counts, err := json.Marshal(ev.StatusCounts)
	if err != nil {
		return fmt.Errorf("encode status counts: %w", err)
	}

	id := toPgUUID(ev.ID)
	if !id.Valid {
		id = pgtype.UUID{Bytes: uuid.New(), Valid: true}
	}

	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = l.db.Exec(ctx, insertUploadEvent,
		id,
		ev.FileName,
		int32(ev.Rows),
		counts,
		toPgText(ev.IPAddress),
		toPgText(ev.UserAgent),
		pgtype.Timestamptz{Time: createdAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert upload event: %w", err)
	}
	return nil
}

func (l *UploadLog) Recent(ctx context.Context, n int) ([]core.UploadEvent, error) {
	if n <= 0 {
		n = core.DefaultUploadLogSize
	}

	rows, err := l.db.Query(ctx, selectRecentUploadEvents, n)
	if err != nil {
		return nil, fmt.Errorf("query upload events: %w", err)
	}

	events, err := pgx.CollectRows(rows, scanUploadEvent)
	if err != nil {
		return nil, fmt.Errorf("scan upload events: %w", err)
	}
	return events, nil
}

func scanUploadEvent(row pgx.CollectableRow) (core.UploadEvent, error) {
	var (
		id        pgtype.UUID
		rowCount  int32
		counts    []byte
		ip, ua    pgtype.Text
		createdAt pgtype.Timestamptz
		ev        core.UploadEvent
	)
	if err := row.Scan(&id, &ev.FileName, &rowCount, &counts, &ip, &ua, &createdAt); err != nil {
		return core.UploadEvent{}, err
	}

	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &ev.StatusCounts); err != nil {
			return core.UploadEvent{}, fmt.Errorf("decode status counts: %w", err)
		}
	}
	ev.ID = pgUUIDToString(id)
	ev.Rows = int(rowCount)
	ev.IPAddress = ip.String
	ev.UserAgent = ua.String
	ev.CreatedAt = createdAt.Time
	return ev, nil
}

// toPgUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func toPgUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// pgUUIDToString returns "" for an invalid UUID.
func pgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// toPgText maps "" to NULL.
func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}
