package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ParseFunc reads an uploaded file into a RawTable. Failures should be
// returned as *ParseError.
type ParseFunc func(fileName string, r io.Reader) (RawTable, error)

// Service is the entry point for every dashboard operation.
type Service struct {
	store   *RecordStore
	uploads UploadLog
	limiter *UploadLimiter
	parse   ParseFunc
	now     func() time.Time
}

// NewService wires a Service. A nil uploads log or limiter falls back to
// the in-memory log and default limits.
func NewService(store *RecordStore, uploads UploadLog, limiter *UploadLimiter, parse ParseFunc) *Service {
	if store == nil {
		store = NewRecordStore()
	}
	if uploads == nil {
		uploads = NewMemoryUploadLog(DefaultUploadLogSize)
	}
	if limiter == nil {
		limiter = NewUploadLimiter(DefaultMaxConcurrentUploads, DefaultMaxWaitTime)
	}
	return &Service{
		store:   store,
		uploads: uploads,
		limiter: limiter,
		parse:   parse,
		now:     time.Now,
	}
}

// Upload parses r and installs the result as the current table.
// On any error the current table is left as it was.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (*Table, error) {
	if s.parse == nil {
		return nil, errors.New("upload: no spreadsheet parser configured")
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	raw, err := s.parse(fileName, r)
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			err = NewParseError(fileName, err)
		}
		slog.Warn("upload rejected", "file", fileName, "error", err)
		return nil, err
	}

	return s.install(ctx, fileName, raw), nil
}

// Ingest normalizes an already parsed table and installs it.
func (s *Service) Ingest(ctx context.Context, fileName string, raw RawTable) *Table {
	return s.install(ctx, fileName, raw)
}

func (s *Service) install(ctx context.Context, fileName string, raw RawTable) *Table {
	if missing := MissingColumns(raw.Header); len(missing) > 0 {
		slog.Info("filling missing columns", "file", fileName, "columns", missing)
	}

	t := &Table{
		ID:       uuid.New().String(),
		FileName: fileName,
		LoadedAt: s.now(),
		Records:  Ingest(raw),
	}
	s.store.Replace(t)

	metrics := Aggregate(t.Records, Filter{})
	slog.Info("table replaced",
		"table_id", t.ID,
		"file", fileName,
		"rows", t.Len(),
		"unique_agents", metrics.UniqueAgents,
	)

	ev := UploadEvent{
		ID:           t.ID,
		FileName:     fileName,
		Rows:         t.Len(),
		StatusCounts: metrics.StatusCounts,
		IPAddress:    IPAddressFromContext(ctx),
		UserAgent:    UserAgentFromContext(ctx),
		CreatedAt:    t.LoadedAt,
	}
	if err := s.uploads.Append(ctx, ev); err != nil {
		// The table is already live; a lost log entry is not worth failing for.
		slog.Error("failed to record upload", "table_id", t.ID, "error", err)
	}

	return t
}

// Current returns the installed table, or ErrNoData.
func (s *Service) Current() (*Table, error) {
	t, ok := s.store.Current()
	if !ok {
		return nil, ErrNoData
	}
	return t, nil
}

// HasData reports whether a table has been uploaded.
func (s *Service) HasData() bool {
	_, ok := s.store.Current()
	return ok
}

// ComputeView returns counters, dropdown options and the filtered rows.
func (s *Service) ComputeView(f Filter) (View, error) {
	t, err := s.Current()
	if err != nil {
		return View{}, err
	}
	return View{
		TableID:  t.ID,
		FileName: t.FileName,
		Filter:   f,
		Metrics:  Aggregate(t.Records, f),
		Options:  BuildFilterOptions(t.Records),
		Records:  Select(t.Records, f),
	}, nil
}

// BuildExport returns the download filename and CSV body for a selection.
func (s *Service) BuildExport(f Filter, status string) (string, []byte, error) {
	t, err := s.Current()
	if err != nil {
		return "", nil, err
	}
	data, err := ExportCSV(t.Records, f, status)
	if err != nil {
		return "", nil, fmt.Errorf("export %q: %w", status, err)
	}
	return ExportFilename(status), data, nil
}

// RecentUploads returns up to n upload events, newest first.
func (s *Service) RecentUploads(ctx context.Context, n int) ([]UploadEvent, error) {
	return s.uploads.Recent(ctx, n)
}

// UploadLimiterStatus returns the upload slot usage.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
