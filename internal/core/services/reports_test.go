package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lineage-cli/internal/core/domain"
)

func TestReportService_NoStore(t *testing.T) {
	service := NewReportService(nil)

	_, err := service.List(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrReportStoreUnavailable)

	_, err = service.Get(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrReportStoreUnavailable)
}

func TestReportService_ListAppliesDefaultLimit(t *testing.T) {
	store := memory.NewReportStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < defaultReportLimit+5; i++ {
		require.NoError(t, store.Save(context.Background(), &domain.RunReport{
			ID:        fmt.Sprintf("run-%02d", i),
			Command:   domain.RunCommandCheck,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	service := NewReportService(store)

	all, err := service.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, defaultReportLimit)
	assert.Equal(t, "run-24", all[0].ID)

	two, err := service.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestReportService_Get(t *testing.T) {
	store := memory.NewReportStore()
	require.NoError(t, store.Save(context.Background(), &domain.RunReport{ID: "run-1", Command: domain.RunCommandBuild}))
	service := NewReportService(store)

	report, err := service.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCommandBuild, report.Command)

	_, err = service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
