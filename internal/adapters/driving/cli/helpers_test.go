package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driving"
)

type mockPipeline struct {
	checkPaths []string
	checkErr   error
	genErr     error
	buildErr   error
	artifact   string
	watched    int
}

func testReport(cmd domain.RunCommand) *domain.RunReport {
	log := domain.NewIssueLog()
	log.Touch("raw/a.txt")
	log.Warn(domain.SourcePos{File: "raw/a.txt", Line: 2}, "Master Lee,,Jane Doe,,Brown Belt", "missing address")
	log.Error(domain.SourcePos{File: "raw/a.txt", Line: 3}, "Lee,,Jane Doe,,Brown Belt", "teacher name has no title")
	return &domain.RunReport{
		ID:          "run-1",
		Command:     cmd,
		StartedAt:   time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		Records:     3,
		Accepted:    2,
		Teachers:    1,
		MissingBios: []string{"Master Lee, Ann"},
		Summary:     log.Summary(),
	}
}

func testModel() *domain.LineageModel {
	return domain.NewLineageModel([]domain.TeacherLineage{{
		Name: "Master Lee, Ann",
		Addresses: []domain.AddressGroup{{
			Address: "456 Pine Avenue",
			Students: []domain.StudentEntry{
				{Name: "Jane Doe", Ranking: "Brown Belt", Number: "0", Ordinal: 1},
				{Name: "Bob Young", Ranking: "Black Belt", Number: "2", Ordinal: 2},
			},
		}},
	}})
}

func (m *mockPipeline) Check(_ context.Context, paths ...string) (*driving.CheckResult, error) {
	m.checkPaths = paths
	if m.checkErr != nil {
		return nil, m.checkErr
	}
	return &driving.CheckResult{Report: testReport(domain.RunCommandCheck)}, nil
}

func (m *mockPipeline) Generate(_ context.Context) (*driving.GenerateResult, error) {
	if m.genErr != nil {
		return nil, m.genErr
	}
	return &driving.GenerateResult{
		Report:     testReport(domain.RunCommandGenerate),
		Model:      testModel(),
		OutputPath: "lineage_document.tex",
	}, nil
}

func (m *mockPipeline) Build(ctx context.Context) (*driving.BuildResult, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	gen, err := m.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return &driving.BuildResult{
		GenerateResult: *gen,
		ArtifactPath:   m.artifact,
		Passes:         []string{"pdflatex", "makeindex", "pdflatex"},
	}, nil
}

func (m *mockPipeline) Watch(ctx context.Context, fn func(ctx context.Context) error) error {
	m.watched++
	return fn(ctx)
}

type mockSettings struct {
	settings domain.AppSettings
	set      map[string]string
	setErr   error
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"document.order", "paths.raw_data"}
}

type mockReports struct {
	reports []domain.RunReportInfo
	listErr error
}

func (m *mockReports) List(_ context.Context, limit int) ([]domain.RunReportInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit < len(m.reports) {
		return m.reports[:limit], nil
	}
	return m.reports, nil
}

func (m *mockReports) Get(_ context.Context, id string) (*domain.RunReport, error) {
	if id != "run-1" {
		return nil, domain.ErrNotFound
	}
	return testReport(domain.RunCommandBuild), nil
}

type mockBios struct {
	created map[string]domain.Bio
	table   domain.BioTable
}

func (m *mockBios) Create(_ context.Context, teacher string, bio domain.Bio) (string, error) {
	if m.created == nil {
		m.created = map[string]domain.Bio{}
	}
	m.created[teacher] = bio
	return "Bios/" + teacher + ".txt", nil
}

func (m *mockBios) List(_ context.Context) (domain.BioTable, domain.IssueSummary, error) {
	return m.table, domain.NewIssueLog().Summary(), nil
}

type mockMerge struct {
	deleted bool
}

func (m *mockMerge) Merge(_ context.Context, deleteOriginals bool) (*driving.MergeResult, error) {
	m.deleted = deleteOriginals
	res := &driving.MergeResult{
		OutputPath:   "RAW Data/merged_20250201_100000.txt",
		Inputs:       []string{"RAW Data/a.txt", "RAW Data/b.txt"},
		LinesRead:    5,
		LinesWritten: 4,
	}
	if deleteOriginals {
		res.Removed = res.Inputs
	}
	return res, nil
}

type testServices struct {
	pipeline *mockPipeline
	settings *mockSettings
	reports  *mockReports
	bios     *mockBios
	merge    *mockMerge
}

// setupTestServices installs mocks and returns them with a restore function.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		pipeline: &mockPipeline{},
		settings: newMockSettings(),
		reports:  &mockReports{},
		bios:     &mockBios{},
		merge:    &mockMerge{},
	}
	SetServices(&Services{
		Pipeline: ts.pipeline,
		Settings: ts.settings,
		Reports:  ts.reports,
		Bios:     ts.bios,
		Merge:    ts.merge,
	})
	return ts, func() { SetServices(nil) }
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeWithInput is execute with stdin content.
func executeWithInput(input string, args ...string) (string, error) {
	stdout := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stdout)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), err
}
