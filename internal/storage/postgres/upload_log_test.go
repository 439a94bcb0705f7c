package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/JonMunkholm/fielddash/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDB captures Exec calls.
type recordingDB struct {
	sql  []string
	args [][]any
	err  error
}

func (d *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.sql = append(d.sql, sql)
	d.args = append(d.args, args)
	return pgconn.CommandTag{}, d.err
}

func (d *recordingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestNewUploadLog_CreatesTable(t *testing.T) {
	db := &recordingDB{}
	_, err := NewUploadLog(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, db.sql, 1)
	assert.Contains(t, db.sql[0], "CREATE TABLE IF NOT EXISTS upload_events")
}

func TestNewUploadLog_Error(t *testing.T) {
	db := &recordingDB{err: errors.New("connection refused")}
	_, err := NewUploadLog(context.Background(), db)
	require.Error(t, err)
	assert.Equal(t, "DB004", core.MapError(err).Code)
}

func TestUploadLog_AppendArgs(t *testing.T) {
	db := &recordingDB{}
	log := &UploadLog{db: db}

	id := uuid.New()
	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	err := log.Append(context.Background(), core.UploadEvent{
		ID:           id.String(),
		FileName:     "retailers.xlsx",
		Rows:         42,
		StatusCounts: map[core.Status]int{core.StatusOnBoarded: 40, core.StatusOthers: 2},
		IPAddress:    "10.0.0.1",
		CreatedAt:    created,
	})
	require.NoError(t, err)
	require.Len(t, db.args, 1)

	args := db.args[0]
	require.Len(t, args, 7)
	assert.Equal(t, pgtype.UUID{Bytes: id, Valid: true}, args[0])
	assert.Equal(t, "retailers.xlsx", args[1])
	assert.Equal(t, int32(42), args[2])

	var counts map[string]int
	require.NoError(t, json.Unmarshal(args[3].([]byte), &counts))
	assert.Equal(t, 40, counts["On-Boarded"])

	assert.Equal(t, pgtype.Text{String: "10.0.0.1", Valid: true}, args[4])
	assert.Equal(t, pgtype.Text{}, args[5], "empty user agent is stored as NULL")
	assert.Equal(t, pgtype.Timestamptz{Time: created, Valid: true}, args[6])
}

func TestUploadLog_AppendInvalidIDGetsFreshUUID(t *testing.T) {
	db := &recordingDB{}
	log := &UploadLog{db: db}

	require.NoError(t, log.Append(context.Background(), core.UploadEvent{ID: "not-a-uuid"}))
	got, ok := db.args[0][0].(pgtype.UUID)
	require.True(t, ok)
	assert.True(t, got.Valid)
}

func TestUUIDHelpers(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id.String(), pgUUIDToString(toPgUUID(id.String())))
	assert.False(t, toPgUUID("").Valid)
	assert.False(t, toPgUUID("garbage").Valid)
	assert.Equal(t, "", pgUUIDToString(pgtype.UUID{}))
}

// TestUploadLog_Postgres runs against a real database when
// FIELDDASH_TEST_DATABASE_URL is set.
func TestUploadLog_Postgres(t *testing.T) {
	dsn := os.Getenv("FIELDDASH_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("FIELDDASH_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	log, err := NewUploadLog(ctx, pool)
	require.NoError(t, err)

	older := core.UploadEvent{ID: uuid.NewString(), FileName: "a.csv", Rows: 1, CreatedAt: time.Now().Add(-time.Minute)}
	newer := core.UploadEvent{
		ID:           uuid.NewString(),
		FileName:     "b.xlsx",
		Rows:         2,
		StatusCounts: map[core.Status]int{core.StatusKYCPending: 2},
		UserAgent:    "test",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, log.Append(ctx, older))
	require.NoError(t, log.Append(ctx, newer))

	events, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, newer.ID, events[0].ID)
	assert.Equal(t, 2, events[0].StatusCounts[core.StatusKYCPending])
	assert.Equal(t, "test", events[0].UserAgent)
	assert.Equal(t, older.ID, events[1].ID)
}
