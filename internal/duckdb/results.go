package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-orf/internal/orf"
)

// Run describes one translate invocation.
type Run struct {
	ID          string
	StartedAt   time.Time
	Input       FileFingerprint
	GeneticCode int
	Lenient     bool // invalid codons were translated to X
	RecordCount int
}

// NewRun creates a run with a fresh ID, started now.
func NewRun(input FileFingerprint, geneticCode, recordCount int) Run {
	return Run{
		ID:          uuid.NewString(),
		StartedAt:   time.Now().UTC().Truncate(time.Microsecond),
		Input:       input,
		GeneticCode: geneticCode,
		RecordCount: recordCount,
	}
}

// StoredResult is an ORF result together with the run that produced it.
type StoredResult struct {
	RunID string
	orf.Result
}

// RecordRun inserts a run row.
func (s *Store) RecordRun(r Run) error {
	_, err := s.db.Exec(`INSERT INTO runs
		(run_id, started_at, input_path, input_size, input_mod_time, genetic_code, lenient, record_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt, r.Input.Path, r.Input.Size, micro(r.Input.ModTime),
		int64(r.GeneticCode), r.Lenient, int64(r.RecordCount))
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

// WriteResults batch-inserts the results of a run using the Appender API.
func (s *Store) WriteResults(runID string, results []orf.Result) error {
	if len(results) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "orf_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range results {
		if err := appender.AppendRow(
			runID, int64(r.Index), r.ID, r.Description, r.Type,
			int64(r.Frame), r.ORF, int64(len(r.ORF)), int64(r.SourceLength),
		); err != nil {
			return fmt.Errorf("append result %s: %w", r.ID, err)
		}
	}

	return appender.Flush()
}

// ClearResults removes all runs and results.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM orf_results"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// Runs returns all recorded runs, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT
		run_id, started_at, input_path, input_size, input_mod_time, genetic_code, lenient, record_count
		FROM runs
		ORDER BY started_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var code, count int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Input.Path, &r.Input.Size,
			&r.Input.ModTime, &code, &r.Lenient, &count); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.GeneticCode = int(code)
		r.RecordCount = int(count)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// FindRun returns the most recent run over an unchanged input file with the
// same genetic code, or nil if there is none. Lenient runs only match when
// lenient is set.
func (s *Store) FindRun(input FileFingerprint, geneticCode int, lenient bool) (*Run, error) {
	if !input.Comparable() {
		return nil, nil
	}

	runs, err := s.Runs()
	if err != nil {
		return nil, err
	}

	want := micro(input.ModTime)
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if r.Input.Path == input.Path && r.Input.Size == input.Size &&
			r.GeneticCode == geneticCode && r.Input.ModTime.Equal(want) &&
			(lenient || !r.Lenient) {
			return &r, nil
		}
	}
	return nil, nil
}

// RunResults returns the results of a run in input order.
func (s *Store) RunResults(runID string) ([]orf.Result, error) {
	rows, err := s.db.Query(`SELECT
		run_id, seq_index, seq_id, description, result_type, frame, orf, source_length
		FROM orf_results
		WHERE run_id=?
		ORDER BY seq_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run results: %w", err)
	}
	defer rows.Close()

	stored, err := scanResults(rows)
	if err != nil {
		return nil, err
	}

	results := make([]orf.Result, len(stored))
	for i, sr := range stored {
		results[i] = sr.Result
	}
	return results, nil
}

// LookupSequence returns every stored result for a sequence ID across runs.
func (s *Store) LookupSequence(seqID string) ([]StoredResult, error) {
	rows, err := s.db.Query(`SELECT
		r.run_id, r.seq_index, r.seq_id, r.description, r.result_type, r.frame, r.orf, r.source_length
		FROM orf_results r
		JOIN runs USING (run_id)
		WHERE r.seq_id=?
		ORDER BY runs.started_at, r.run_id, r.seq_index`, seqID)
	if err != nil {
		return nil, fmt.Errorf("query sequence: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// scanResults scans rows into StoredResult slices.
func scanResults(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]StoredResult, error) {
	var results []StoredResult
	for rows.Next() {
		var sr StoredResult
		var index, frame, sourceLength int64

		if err := rows.Scan(
			&sr.RunID, &index, &sr.ID, &sr.Description, &sr.Type,
			&frame, &sr.ORF, &sourceLength,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}

		sr.Index = int(index)
		sr.Frame = int(frame)
		sr.SourceLength = int(sourceLength)
		results = append(results, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// micro normalizes a time to the precision DuckDB TIMESTAMP keeps.
func micro(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
