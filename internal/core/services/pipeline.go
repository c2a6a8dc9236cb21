package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lineage-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.LineagePipeline = (*Pipeline)(nil)

// watchDebounce collapses bursts of file events into one rebuild.
const watchDebounce = 300 * time.Millisecond

// PipelineDeps holds the adapters a Pipeline calls out to.
// Builder, Reports and Watcher are optional.
type PipelineDeps struct {
	Source   driven.RecordSource
	Bios     *BioService
	Renderer driven.DocumentRenderer
	Writer   driven.DocumentWriter
	Builder  *BuildOrchestrator
	Reports  driven.ReportStore
	Watcher  driven.Watcher
	Settings domain.AppSettings
}

// Pipeline runs ingestion → validation → aggregation → rendering → build.
// Record-level problems are accumulated in the run's issue log; only an
// unreadable source, a failed write or a toolchain failure ends a run early.
type Pipeline struct {
	deps      PipelineDeps
	validator *Validator
	now       func() time.Time
	newID     func() string
}

// NewPipeline creates a new pipeline service.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		deps:      deps,
		validator: NewValidator(WithTitleCase(deps.Settings.Normalise.TitleCase)),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// run is the state of one pipeline execution.
type run struct {
	report  *domain.RunReport
	log     *domain.IssueLog
	records []domain.ValidatedRecord
}

// Check ingests and validates input files without rendering.
func (p *Pipeline) Check(ctx context.Context, paths ...string) (*driving.CheckResult, error) {
	r, err := p.ingest(ctx, domain.RunCommandCheck, paths)
	if err != nil {
		return nil, err
	}
	r.report.Summary = r.log.Summary()
	p.saveReport(ctx, r.report)

	return &driving.CheckResult{Report: r.report, Records: r.records}, nil
}

// Generate runs the pipeline through writing the document source.
func (p *Pipeline) Generate(ctx context.Context) (*driving.GenerateResult, error) {
	return p.generate(ctx, domain.RunCommandGenerate)
}

// Build generates the document and compiles it.
func (p *Pipeline) Build(ctx context.Context) (*driving.BuildResult, error) {
	if p.deps.Builder == nil {
		return nil, fmt.Errorf("%w: build orchestrator not configured", domain.ErrToolchain)
	}

	gen, err := p.generate(ctx, domain.RunCommandBuild)
	if err != nil {
		return nil, err
	}

	logger.Section("Build")
	compiled, err := p.deps.Builder.Compile(ctx, gen.OutputPath)
	if err != nil {
		p.saveReport(ctx, gen.Report)
		return nil, fmt.Errorf("compile %s: %w", gen.OutputPath, err)
	}

	gen.Report.ArtifactPath = compiled.ArtifactPath
	p.saveReport(ctx, gen.Report)

	return &driving.BuildResult{
		GenerateResult: *gen,
		ArtifactPath:   compiled.ArtifactPath,
		Passes:         compiled.Passes,
	}, nil
}

// generate runs everything up to and including the document write. The
// report is saved here unless the caller goes on to build.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (p *Pipeline) generate(ctx context.Context, cmd domain.RunCommand) (*driving.GenerateResult, error) {
	r, err := p.ingest(ctx, cmd, nil)
	if err != nil {
		return nil, err
	}

	// 1. Bios are loaded once, before anything is rendered
	logger.Section("Bios")
	table := domain.BioTable{}
	bioSource := "bios"
	if p.deps.Bios != nil {
		table, err = p.deps.Bios.Load(ctx, r.log)
		if err != nil {
			return nil, err
		}
		bioSource = p.deps.Bios.SourceName()
	}

	// 2. Aggregate
	logger.Section("Aggregate")
	model := Aggregate(r.records)
	logger.Info("Aggregated %d students under %d teachers", model.StudentCount(), model.Len())
	if model.Len() == 0 {
		logger.Warn("No valid records; the document will have no chapters")
	}

	// 3. Resolve bios; the issue log is complete after this
	resolved := ResolveBios(model, table, bioSource, r.log)
	for _, name := range model.TeacherNames() {
		if resolved[name].Missing {
			r.report.MissingBios = append(r.report.MissingBios, name)
		}
	}
	r.report.Teachers = model.Len()
	r.report.Summary = r.log.Summary()

	// 4. Render
	logger.Section("Render")
	if p.deps.Renderer == nil {
		return nil, errors.New("document renderer not configured")
	}
	content, err := p.deps.Renderer.Render(ctx, driven.RenderInput{
		Model:    model,
		Bios:     resolved,
		Summary:  r.report.Summary,
		Settings: p.deps.Settings.Document,
	})
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	// 5. Write
	out := p.deps.Settings.Paths.Output
	if p.deps.Writer == nil {
		return nil, fmt.Errorf("%w: document writer not configured", domain.ErrDocumentWrite)
	}
	if err := p.deps.Writer.Write(ctx, out, content); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDocumentWrite, out, err)
	}
	r.report.OutputPath = out
	logger.Info("Document written to %s (%d bytes)", out, len(content))

	if cmd != domain.RunCommandBuild {
		p.saveReport(ctx, r.report)
	}

	return &driving.GenerateResult{Report: r.report, Model: model, OutputPath: out}, nil
}

// ingest reads and validates records. With no paths every source file is read.
func (p *Pipeline) ingest(ctx context.Context, cmd domain.RunCommand, paths []string) (*run, error) {
	if p.deps.Source == nil {
		return nil, fmt.Errorf("%w: record source not configured", domain.ErrSourceUnavailable)
	}

	logger.Section("Ingest")
	files := paths
	if len(files) == 0 {
		var err error
		files, err = p.deps.Source.Files(ctx)
		if err != nil {
			return nil, fmt.Errorf("list input files: %w", err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no input files in %s", domain.ErrNoRecords, p.deps.Settings.Paths.RawData)
	}

	r := &run{
		report: &domain.RunReport{
			ID:        p.newID(),
			Command:   cmd,
			StartedAt: p.now(),
		},
		log: domain.NewIssueLog(),
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.log.Touch(file)
		raws, err := p.deps.Source.ReadFile(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		accepted := p.validator.ValidateAll(raws, r.log)
		counts := r.log.Counts(file)
		logger.Debug("%s: %d rows, %d accepted, %d warnings, %d errors",
			file, len(raws), len(accepted), counts.Warnings, counts.Errors)

		r.report.Records += len(raws)
		r.records = append(r.records, accepted...)
	}
	r.report.Accepted = len(r.records)

	logger.Info("Read %d records from %d files, %d accepted", r.report.Records, len(files), r.report.Accepted)
	if n := r.log.Len(); n > 0 {
		logger.Warn("%d issues found while reading input", n)
	}
	return r, nil
}

// saveReport persists the report when a store is configured.
// A failure here never fails the run.
func (p *Pipeline) saveReport(ctx context.Context, report *domain.RunReport) {
	if p.deps.Reports == nil || !p.deps.Settings.Report.Persist {
		return
	}
	if err := p.deps.Reports.Save(ctx, report); err != nil {
		logger.Warn("Could not save run report %s: %v", report.ID, err)
	}
}

// Watch re-runs fn whenever input changes, until ctx is cancelled.
// fn runs once immediately. Its errors are logged, not returned, so a
// broken input file does not end the watch.
func (p *Pipeline) Watch(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.deps.Watcher == nil {
		return errors.New("watch not supported: no watcher configured")
	}

	events, errs, err := p.deps.Watcher.Watch(ctx, p.deps.Settings.Paths.RawData, p.deps.Settings.Paths.Bios)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	rerun := func() {
		if err := fn(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("Rebuild failed: %v", err)
		}
	}
	rerun()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Change detected: %s", ev.Path)
			timer.Reset(watchDebounce)
		case werr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("Watcher error: %v", werr)
		case <-timer.C:
			rerun()
		}
	}
}
