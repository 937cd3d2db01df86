package reports

import (
	"sync"
	"time"
)

// LegacyReport is the minimal record the backward-compat endpoints track.
type LegacyReport struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LegacyStore keeps the old in-memory report map alive for clients still on
// the /api/report/:id endpoints. Not persisted; resets on restart.
type LegacyStore struct {
	mu      sync.RWMutex
	reports map[string]LegacyReport
	now     func() time.Time
}

// NewLegacyStore returns an empty legacy report store.
func NewLegacyStore() *LegacyStore {
	return &LegacyStore{
		reports: make(map[string]LegacyReport),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the stored record and whether it exists.
func (s *LegacyStore) Get(id string) (LegacyReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	return report, ok
}

// Upsert merges the provided fields into the record under id. Nil fields
// leave the existing values untouched; a record that still has no createdAt
// after the merge gets the current time.
func (s *LegacyStore) Upsert(id string, title, createdAt *string) LegacyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		report = LegacyReport{ID: id}
	}
	if title != nil {
		report.Title = *title
	}
	if createdAt != nil {
		report.CreatedAt = *createdAt
	}
	if report.CreatedAt == "" {
		report.CreatedAt = s.now().Format("2006-01-02T15:04:05.000Z")
	}

	s.reports[id] = report
	return report
}
