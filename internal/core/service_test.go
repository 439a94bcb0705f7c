package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// stubParse returns raw for any input.
func stubParse(raw RawTable) ParseFunc {
	return func(string, io.Reader) (RawTable, error) {
		return raw, nil
	}
}

func failingParse(err error) ParseFunc {
	return func(string, io.Reader) (RawTable, error) {
		return RawTable{}, err
	}
}

// failingUploadLog rejects every append.
type failingUploadLog struct{}

func (failingUploadLog) Append(context.Context, UploadEvent) error {
	return errors.New("connection refused")
}

func (failingUploadLog) Recent(context.Context, int) ([]UploadEvent, error) {
	return nil, nil
}

var sampleRaw = RawTable{
	Header: []string{"Agent_ID", "State", "District", "Retailer_Type", "Status", "Active_YTD", "Active_MTD"},
	Rows: [][]string{
		{"A1", "Bihar", "Patna", "Retail", "onboarded", "10", "2"},
		{"A2", "Bihar", "Gaya", "Retail", "KYC pending", "5", "1"},
		{"A2", "Odisha", "Puri", "Wholesale", "", "x", ""},
	},
}

func TestService_NoDataBeforeUpload(t *testing.T) {
	svc := NewService(nil, nil, nil, stubParse(sampleRaw))

	if svc.HasData() {
		t.Error("HasData() = true before upload")
	}
	if _, err := svc.ComputeView(Filter{}); !errors.Is(err, ErrNoData) {
		t.Errorf("ComputeView() error = %v, want ErrNoData", err)
	}
	if _, _, err := svc.BuildExport(Filter{}, ""); !errors.Is(err, ErrNoData) {
		t.Errorf("BuildExport() error = %v, want ErrNoData", err)
	}
}

func TestService_Upload(t *testing.T) {
	ctx := ContextWithIPAddress(context.Background(), "10.0.0.1")
	ctx = ContextWithUserAgent(ctx, "test-agent")

	svc := NewService(nil, nil, nil, stubParse(sampleRaw))
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tbl, err := svc.Upload(ctx, "retailers.xlsx", strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if tbl.Len() != 3 || tbl.FileName != "retailers.xlsx" || tbl.ID == "" {
		t.Errorf("Upload() table = %+v", tbl)
	}

	view, err := svc.ComputeView(Filter{State: "Bihar"})
	if err != nil {
		t.Fatalf("ComputeView() error = %v", err)
	}
	if view.Metrics.TotalRecords != 2 || view.Metrics.ActiveYTD != 15 || view.Metrics.UniqueAgents != 2 {
		t.Errorf("ComputeView() metrics = %+v", view.Metrics)
	}
	if len(view.Records) != 2 {
		t.Errorf("ComputeView() records = %d, want 2", len(view.Records))
	}
	if len(view.Options.States) != 2 {
		t.Errorf("options should cover the whole table, got %v", view.Options.States)
	}

	events, err := svc.RecentUploads(ctx, 10)
	if err != nil {
		t.Fatalf("RecentUploads() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("RecentUploads() = %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.ID != tbl.ID || ev.Rows != 3 || ev.IPAddress != "10.0.0.1" || ev.UserAgent != "test-agent" || !ev.CreatedAt.Equal(fixed) {
		t.Errorf("upload event = %+v", ev)
	}
	if ev.StatusCounts[StatusOthers] != 1 {
		t.Errorf("event status counts = %v", ev.StatusCounts)
	}
}

func TestService_UploadParseErrorKeepsTable(t *testing.T) {
	store := NewRecordStore()
	good := NewService(store, nil, nil, stubParse(sampleRaw))
	first, err := good.Upload(context.Background(), "good.csv", strings.NewReader(""))
	if err != nil {
		t.Fatalf("first Upload() error = %v", err)
	}

	tests := []struct {
		name string
		err  error
	}{
		{name: "parse error passes through", err: NewParseError("bad.xlsx", errors.New("zip: not a valid zip file"))},
		{name: "plain error is wrapped", err: errors.New("unexpected EOF")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := NewService(store, nil, nil, failingParse(tt.err))
			_, err := bad.Upload(context.Background(), "bad.xlsx", strings.NewReader(""))
			if !IsParseError(err) {
				t.Fatalf("Upload() error = %v, want ParseError", err)
			}
			if got, _ := store.Current(); got != first {
				t.Error("failed upload replaced the current table")
			}
		})
	}
}

func TestService_UploadLogFailureIsNotFatal(t *testing.T) {
	svc := NewService(nil, failingUploadLog{}, nil, stubParse(sampleRaw))

	if _, err := svc.Upload(context.Background(), "a.csv", strings.NewReader("")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !svc.HasData() {
		t.Error("table should be installed even when the upload log fails")
	}
}

func TestService_UploadWithoutParser(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)
	if _, err := svc.Upload(context.Background(), "a.csv", strings.NewReader("")); err == nil {
		t.Error("Upload() without parser should fail")
	}
}

func TestService_UploadBusy(t *testing.T) {
	limiter := NewUploadLimiter(1, 20*time.Millisecond)
	if !limiter.TryAcquire() {
		t.Fatal("TryAcquire failed")
	}
	defer limiter.Release()

	svc := NewService(nil, nil, limiter, stubParse(sampleRaw))
	if _, err := svc.Upload(context.Background(), "a.csv", strings.NewReader("")); !errors.Is(err, ErrTooManyUploads) {
		t.Errorf("Upload() error = %v, want ErrTooManyUploads", err)
	}
}

func TestService_BuildExport(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)
	svc.Ingest(context.Background(), "direct.csv", sampleRaw)

	name, data, err := svc.BuildExport(Filter{State: "Bihar"}, string(StatusOnBoarded))
	if err != nil {
		t.Fatalf("BuildExport() error = %v", err)
	}
	if name != "On-Boarded_data.csv" {
		t.Errorf("filename = %q", name)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("export has %d lines, want 2", len(lines))
	}

	name, _, err = svc.BuildExport(Filter{}, "")
	if err != nil || name != "others_data.csv" {
		t.Errorf("BuildExport(\"\") = %q, %v", name, err)
	}
}
