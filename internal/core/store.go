package core

import "sync/atomic"

// RecordStore holds the current table in memory.
//
// Replace swaps the whole table; readers see either the previous table or
// the new one, never a mix. Concurrent uploads race and the last write wins.
// Nothing is kept across restarts.
type RecordStore struct {
	current atomic.Pointer[Table]
}

// NewRecordStore returns an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Replace discards the previous table and installs t.
func (s *RecordStore) Replace(t *Table) {
	s.current.Store(t)
}

// Current returns the installed table, or false if nothing has been
// uploaded yet.
func (s *RecordStore) Current() (*Table, bool) {
	t := s.current.Load()
	return t, t != nil
}
