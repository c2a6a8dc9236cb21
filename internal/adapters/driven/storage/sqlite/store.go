package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lineage-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lineage-cli/internal/core/domain"
	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "reports.db"

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// Store is a SQLite-based run report store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lineage/data/reports.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lineage", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_reports.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a run report with its file counters and issues.
// Saving an existing ID replaces the previous report.
func (s *Store) Save(ctx context.Context, report *domain.RunReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}

	missing := report.MissingBios
	if missing == nil {
		missing = []string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return fmt.Errorf("marshalling missing bios: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, report.ID); err != nil {
		return fmt.Errorf("clearing run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, command, started_at, records, accepted, teachers,
			missing_bios, output_path, artifact_path, warnings, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		string(report.Command),
		report.StartedAt.UnixNano(),
		report.Records,
		report.Accepted,
		report.Teachers,
		string(missingJSON),
		report.OutputPath,
		report.ArtifactPath,
		report.Summary.Total.Warnings,
		report.Summary.Total.Errors,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, f := range report.Summary.Files {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_files (run_id, position, file, warnings, errors)
			VALUES (?, ?, ?, ?, ?)
		`, report.ID, i, f.File, f.Warnings, f.Errors)
		if err != nil {
			return fmt.Errorf("inserting file summary: %w", err)
		}
	}

	for i, issue := range report.Summary.Issues {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_issues (run_id, seq, file, line, severity, message, text)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, report.ID, i, issue.File, issue.Line, string(issue.Severity), issue.Message, issue.Text)
		if err != nil {
			return fmt.Errorf("inserting issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Get retrieves a run report by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.RunReport, error) {
	var (
		report      domain.RunReport
		command     string
		startedAt   int64
		missingJSON string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, command, started_at, records, accepted, teachers,
			missing_bios, output_path, artifact_path, warnings, errors
		FROM runs WHERE id = ?
	`, id).Scan(
		&report.ID,
		&command,
		&startedAt,
		&report.Records,
		&report.Accepted,
		&report.Teachers,
		&missingJSON,
		&report.OutputPath,
		&report.ArtifactPath,
		&report.Summary.Total.Warnings,
		&report.Summary.Total.Errors,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}

	report.Command = domain.RunCommand(command)
	report.StartedAt = time.Unix(0, startedAt).UTC()
	if err := json.Unmarshal([]byte(missingJSON), &report.MissingBios); err != nil {
		return nil, fmt.Errorf("unmarshalling missing bios: %w", err)
	}
	if len(report.MissingBios) == 0 {
		report.MissingBios = nil
	}

	if report.Summary.Files, err = s.files(ctx, id); err != nil {
		return nil, err
	}
	if report.Summary.Issues, err = s.issues(ctx, id); err != nil {
		return nil, err
	}

	return &report, nil
}

// List returns the most recent reports, newest first.
// A non-positive limit returns every report.
func (s *Store) List(ctx context.Context, limit int) ([]domain.RunReportInfo, error) {
	query := `
		SELECT id, command, started_at, warnings, errors
		FROM runs
		ORDER BY started_at DESC, id ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var infos []domain.RunReportInfo
	for rows.Next() {
		var (
			info      domain.RunReportInfo
			command   string
			startedAt int64
		)
		if err := rows.Scan(&info.ID, &command, &startedAt, &info.Warnings, &info.Errors); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		info.Command = domain.RunCommand(command)
		info.StartedAt = time.Unix(0, startedAt).UTC()
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Store) files(ctx context.Context, id string) ([]domain.FileIssueSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file, warnings, errors FROM run_files
		WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run files: %w", err)
	}
	defer rows.Close()

	var files []domain.FileIssueSummary
	for rows.Next() {
		var f domain.FileIssueSummary
		if err := rows.Scan(&f.File, &f.Warnings, &f.Errors); err != nil {
			return nil, fmt.Errorf("scanning run file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *Store) issues(ctx context.Context, id string) ([]domain.Issue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file, line, severity, message, text FROM run_issues
		WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var (
			issue    domain.Issue
			severity string
		)
		if err := rows.Scan(&issue.File, &issue.Line, &severity, &issue.Message, &issue.Text); err != nil {
			return nil, fmt.Errorf("scanning run issue: %w", err)
		}
		issue.Severity = domain.Severity(severity)
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
