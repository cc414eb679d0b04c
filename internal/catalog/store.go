// File path: internal/catalog/store.go

// Package catalog persists assembled report records in a SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/dca-labs/reportbot/internal/grades"
	"github.com/dca-labs/reportbot/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_reports (
    id           TEXT PRIMARY KEY,
    primary_key  TEXT NOT NULL,
    report_date  TEXT NOT NULL,
    force_name   TEXT NOT NULL,
    scenario_1   TEXT NOT NULL,
    scenario_2   TEXT NOT NULL,
    grades       TEXT NOT NULL,
    youtube_link TEXT NOT NULL,
    poll_link    TEXT NOT NULL,
    created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_training_reports_key ON training_reports (primary_key);
`

// ErrNotFound is returned when no report matches a lookup key.
var ErrNotFound = errors.New("report not found")

// Store wraps a pooled sqlx.DB connection to the report catalog.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at cfg.Path,
// creating the schema on first use.
func Open(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("catalog path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout+time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type reportRow struct {
	ID          string `db:"id"`
	PrimaryKey  string `db:"primary_key"`
	ReportDate  string `db:"report_date"`
	ForceName   string `db:"force_name"`
	Scenario1   string `db:"scenario_1"`
	Scenario2   string `db:"scenario_2"`
	Grades      string `db:"grades"`
	YouTubeLink string `db:"youtube_link"`
	PollLink    string `db:"poll_link"`
	CreatedAt   string `db:"created_at"`
}

func (r reportRow) record() (report.Record, error) {
	var payload grades.Payload
	if strings.TrimSpace(r.Grades) != "" {
		if err := json.Unmarshal([]byte(r.Grades), &payload); err != nil {
			return report.Record{}, fmt.Errorf("decode grades: %w", err)
		}
	}
	return report.Record{
		PrimaryKey:  r.PrimaryKey,
		Date:        r.ReportDate,
		ForceName:   r.ForceName,
		Sections:    report.Sections{Scenario1: r.Scenario1, Scenario2: r.Scenario2},
		Grades:      payload,
		YouTubeLink: r.YouTubeLink,
		PollLink:    r.PollLink,
	}, nil
}

// InsertReport stores a record and returns its generated identifier.
// Duplicate primary keys are stored as additional rows; the catalog does not
// disambiguate same-day reports for the same force.
func (s *Store) InsertReport(ctx context.Context, rec report.Record) (string, error) {
	if s == nil || s.db == nil {
		return "", errors.New("catalog not initialised")
	}
	gradesJSON, err := json.Marshal(rec.Grades)
	if err != nil {
		return "", fmt.Errorf("encode grades: %w", err)
	}
	id := uuid.NewString()
	const insert = `
INSERT INTO training_reports
    (id, primary_key, report_date, force_name, scenario_1, scenario_2, grades, youtube_link, poll_link, created_at)
VALUES
    (:id, :primary_key, :report_date, :force_name, :scenario_1, :scenario_2, :grades, :youtube_link, :poll_link, :created_at)`
	_, err = s.db.NamedExecContext(ctx, insert, reportRow{
		ID:          id,
		PrimaryKey:  rec.PrimaryKey,
		ReportDate:  rec.Date,
		ForceName:   rec.ForceName,
		Scenario1:   rec.Sections.Scenario1,
		Scenario2:   rec.Sections.Scenario2,
		Grades:      string(gradesJSON),
		YouTubeLink: rec.YouTubeLink,
		PollLink:    rec.PollLink,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

// ReportSummary describes one stored report for listings.
type ReportSummary struct {
	ID         string `db:"id" json:"id"`
	PrimaryKey string `db:"primary_key" json:"primary_key"`
	ReportDate string `db:"report_date" json:"date"`
	ForceName  string `db:"force_name" json:"force_name"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}

// ListReports returns summaries of stored reports, newest first.
func (s *Store) ListReports(ctx context.Context) ([]ReportSummary, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("catalog not initialised")
	}
	var rows []ReportSummary
	const query = `
SELECT id, primary_key, report_date, force_name, created_at
FROM training_reports ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return rows, nil
}

// GetReport returns the most recently stored record for a primary key.
func (s *Store) GetReport(ctx context.Context, key string) (report.Record, error) {
	if s == nil || s.db == nil {
		return report.Record{}, errors.New("catalog not initialised")
	}
	var row reportRow
	const query = `
SELECT id, primary_key, report_date, force_name, scenario_1, scenario_2, grades, youtube_link, poll_link, created_at
FROM training_reports WHERE primary_key = ? ORDER BY created_at DESC LIMIT 1`
	if err := s.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report.Record{}, ErrNotFound
		}
		return report.Record{}, fmt.Errorf("get report: %w", err)
	}
	return row.record()
}
