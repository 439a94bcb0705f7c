package core

import (
	"context"
	"sync"
	"time"
)

// UploadEvent records one successful ingest. Only metadata is kept, never
// the records themselves.
type UploadEvent struct {
	ID           string         `json:"id"`
	FileName     string         `json:"fileName"`
	Rows         int            `json:"rows"`
	StatusCounts map[Status]int `json:"statusCounts"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// UploadLog stores upload events.
type UploadLog interface {
	Append(ctx context.Context, ev UploadEvent) error
	// Recent returns up to n events, newest first.
	Recent(ctx context.Context, n int) ([]UploadEvent, error)
}

// DefaultUploadLogSize is how many events MemoryUploadLog keeps.
const DefaultUploadLogSize = 100

// MemoryUploadLog keeps the most recent events in memory.
type MemoryUploadLog struct {
	mu     sync.RWMutex
	events []UploadEvent
	limit  int
}

// NewMemoryUploadLog returns a log that keeps at most limit events.
func NewMemoryUploadLog(limit int) *MemoryUploadLog {
	if limit <= 0 {
		limit = DefaultUploadLogSize
	}
	return &MemoryUploadLog{limit: limit}
}

func (l *MemoryUploadLog) Append(_ context.Context, ev UploadEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, ev)
	if over := len(l.events) - l.limit; over > 0 {
		l.events = append([]UploadEvent(nil), l.events[over:]...)
	}
	return nil
}

func (l *MemoryUploadLog) Recent(_ context.Context, n int) ([]UploadEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.events) {
		n = len(l.events)
	}
	out := make([]UploadEvent, 0, n)
	for i := len(l.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.events[i])
	}
	return out, nil
}
