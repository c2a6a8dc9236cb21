package services

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"

	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// fakeRecordSource serves raw lines per file.
type fakeRecordSource struct {
	files   map[string][]string
	order   []string
	listErr error
	readErr map[string]error
}

func newFakeRecordSource() *fakeRecordSource {
	return &fakeRecordSource{files: map[string][]string{}, readErr: map[string]error{}}
}

func (f *fakeRecordSource) add(file string, lines ...string) {
	if _, ok := f.files[file]; !ok {
		f.order = append(f.order, file)
	}
	f.files[file] = append(f.files[file], lines...)
}

func (f *fakeRecordSource) Files(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.order...), nil
}

func (f *fakeRecordSource) ReadFile(_ context.Context, path string) ([]domain.RawRecord, error) {
	if err := f.readErr[path]; err != nil {
		return nil, err
	}
	lines, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	out := make([]domain.RawRecord, 0, len(lines))
	for i, line := range lines {
		out = append(out, rawLineIn(path, line, i+1))
	}
	return out, nil
}

// fakeBioSource returns a fixed table and optional warnings.
type fakeBioSource struct {
	name     string
	table    domain.BioTable
	warnings []string
	err      error
}

func (f *fakeBioSource) Name() string { return f.name }

func (f *fakeBioSource) Load(_ context.Context, log *domain.IssueLog) (domain.BioTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, w := range f.warnings {
		log.Warn(domain.SourcePos{File: f.name}, "", "%s", w)
	}
	out := make(domain.BioTable, len(f.table))
	for k, v := range f.table {
		out[k] = v
	}
	return out, nil
}

// fakeBioWriter records saved bios.
type fakeBioWriter struct {
	saved map[string]domain.Bio
	err   error
}

func (f *fakeBioWriter) Save(_ context.Context, teacher string, bio domain.Bio) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = map[string]domain.Bio{}
	}
	f.saved[teacher] = bio
	return "Bios/" + teacher + ".txt", nil
}

// fakeRenderer captures its input and returns fixed content.
type fakeRenderer struct {
	in  driven.RenderInput
	out []byte
	err error
}

func (f *fakeRenderer) Render(_ context.Context, in driven.RenderInput) ([]byte, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	if f.out == nil {
		return []byte("\\documentclass{book}"), nil
	}
	return f.out, nil
}

// fakeWriter keeps written documents in memory.
type fakeWriter struct {
	mu      sync.Mutex
	written map[string][]byte
	writes  int
	err     error
}

func (f *fakeWriter) Write(_ context.Context, path string, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.written == nil {
		f.written = map[string][]byte{}
	}
	f.written[path] = content
	f.writes++
	return nil
}

// fakeRunner records invocations and fails on a chosen tool call.
type fakeRunner struct {
	calls    []runnerCall
	failAt   int
	failErr  error
	output   string
	produced bool
}

type runnerCall struct {
	dir  string
	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, workDir string, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, runnerCall{dir: workDir, name: name, args: args})
	if f.failAt > 0 && len(f.calls) == f.failAt {
		err := f.failErr
		if err == nil {
			err = errors.New("exit status 1")
		}
		return []byte(f.output), err
	}
	return []byte("ok"), ctx.Err()
}

func (f *fakeRunner) Exists(_ context.Context, _ string) bool {
	return f.produced
}

// locatingRunner is a fakeRunner that also resolves tools.
type locatingRunner struct {
	fakeRunner
	missing string
	looked  []string
}

func (f *locatingRunner) LookPath(name string) (string, error) {
	f.looked = append(f.looked, name)
	if name == f.missing {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

// fakeExitError mimics *exec.ExitError.
type fakeExitError struct{ code int }

func (e fakeExitError) Error() string { return "exit status" }
func (e fakeExitError) ExitCode() int { return e.code }

// fakeReportStore keeps reports in memory.
type fakeReportStore struct {
	saved []*domain.RunReport
	err   error
}

func (f *fakeReportStore) Save(_ context.Context, r *domain.RunReport) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeReportStore) Get(_ context.Context, id string) (*domain.RunReport, error) {
	for _, r := range f.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReportStore) List(_ context.Context, limit int) ([]domain.RunReportInfo, error) {
	out := make([]domain.RunReportInfo, 0, len(f.saved))
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		r := f.saved[i]
		out = append(out, domain.RunReportInfo{ID: r.ID, Command: r.Command, StartedAt: r.StartedAt})
	}
	return out, nil
}

// fakeRawFileStore backs merges with in-memory files.
type fakeRawFileStore struct {
	files     map[string][]string
	created   map[string][]string
	removed   []string
	removeErr map[string]error
}

func (f *fakeRawFileStore) Files(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRawFileStore) Lines(_ context.Context, path string) ([]string, error) {
	return f.files[path], nil
}

func (f *fakeRawFileStore) Create(_ context.Context, name string, lines []string) (string, error) {
	if f.created == nil {
		f.created = map[string][]string{}
	}
	f.created[name] = lines
	return "raw/" + name, nil
}

func (f *fakeRawFileStore) Remove(_ context.Context, path string) error {
	if err := f.removeErr[path]; err != nil {
		return err
	}
	f.removed = append(f.removed, path)
	return nil
}

// fakeWatcher emits events pushed onto its channel.
type fakeWatcher struct {
	events chan driven.ChangeEvent
	errs   chan error
	dirs   []string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan driven.ChangeEvent, 4), errs: make(chan error, 1)}
}

func (f *fakeWatcher) Watch(_ context.Context, dirs ...string) (<-chan driven.ChangeEvent, <-chan error, error) {
	f.dirs = dirs
	return f.events, f.errs, nil
}
