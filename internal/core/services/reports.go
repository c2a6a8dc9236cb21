package services

import (
	"context"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// defaultReportLimit bounds report listings when no limit is given.
const defaultReportLimit = 20

// ReportService reads stored run diagnostics.
type ReportService struct {
	store driven.ReportStore
}

// NewReportService creates a new report service. store may be nil.
func NewReportService(store driven.ReportStore) *ReportService {
	return &ReportService{store: store}
}

// List returns recent run reports, newest first.
func (s *ReportService) List(ctx context.Context, limit int) ([]domain.RunReportInfo, error) {
	if s.store == nil {
		return nil, domain.ErrReportStoreUnavailable
	}
	if limit <= 0 {
		limit = defaultReportLimit
	}
	return s.store.List(ctx, limit)
}

// Get returns one run report.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.RunReport, error) {
	if s.store == nil {
		return nil, domain.ErrReportStoreUnavailable
	}
	return s.store.Get(ctx, id)
}
