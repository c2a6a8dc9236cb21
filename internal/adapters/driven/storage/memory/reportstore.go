package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
// Used when report persistence is disabled and in tests.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.RunReport
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]domain.RunReport),
	}
}

// Save stores a run report, replacing any report with the same ID.
func (s *ReportStore) Save(_ context.Context, report *domain.RunReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = cloneReport(*report)
	return nil
}

// Get retrieves a run report by ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneReport(r)
	return &out, nil
}

// List returns the most recent reports, newest first.
func (s *ReportStore) List(_ context.Context, limit int) ([]domain.RunReportInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]domain.RunReportInfo, 0, len(s.reports))
	for _, r := range s.reports {
		infos = append(infos, domain.RunReportInfo{
			ID:        r.ID,
			Command:   r.Command,
			StartedAt: r.StartedAt,
			Warnings:  r.Summary.Total.Warnings,
			Errors:    r.Summary.Total.Errors,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].StartedAt.Equal(infos[j].StartedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].StartedAt.After(infos[j].StartedAt)
	})
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

func cloneReport(r domain.RunReport) domain.RunReport {
	r.MissingBios = append([]string(nil), r.MissingBios...)
	r.Summary.Files = append([]domain.FileIssueSummary(nil), r.Summary.Files...)
	r.Summary.Issues = append([]domain.Issue(nil), r.Summary.Issues...)
	return r
}
