package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lineage-cli/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService folds every raw file into one de-duplicated file.
// This is the only place duplicate lines are removed; the validator
// itself accepts duplicates.
type MergeService struct {
	store driven.RawFileStore
	now   func() time.Time
}

// NewMergeService creates a new merge service.
func NewMergeService(store driven.RawFileStore) *MergeService {
	return &MergeService{store: store, now: time.Now}
}

// Merge concatenates all raw files, keeps the first occurrence of each line
// and writes merged_<timestamp>.txt next to them.
func (s *MergeService) Merge(ctx context.Context, deleteOriginals bool) (*driving.MergeResult, error) {
	if s.store == nil {
		return nil, errors.New("raw file store not configured")
	}

	files, err := s.store.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("list raw files: %w", err)
	}

	result := &driving.MergeResult{Inputs: files}
	seen := make(map[string]struct{})
	var merged []string
	for _, f := range files {
		lines, err := s.store.Lines(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		result.LinesRead += len(lines)
		for _, line := range lines {
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			merged = append(merged, line)
		}
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", domain.ErrNoRecords)
	}

	name := fmt.Sprintf("merged_%s.txt", s.now().Format("20060102_150405"))
	out, err := s.store.Create(ctx, name, merged)
	if err != nil {
		return nil, fmt.Errorf("write merged file: %w", err)
	}
	result.OutputPath = out
	result.LinesWritten = len(merged)
	logger.Info("Merged %d lines into %d unique lines: %s", result.LinesRead, result.LinesWritten, out)

	if !deleteOriginals {
		return result, nil
	}

	var errs []error
	for _, f := range files {
		if err := s.store.Remove(ctx, f); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", f, err))
			continue
		}
		result.Removed = append(result.Removed, f)
	}
	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}
	return result, nil
}
