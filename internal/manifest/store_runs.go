package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const runColumns = "id, name, output_dir, subset, config_json, status, records, files, error, started_at, finished_at"

// BeginRun inserts a run in the running state. StartedAt defaults to now.
func (s *Store) BeginRun(ctx context.Context, run *Run) error {
	if run == nil || strings.TrimSpace(run.ID) == "" {
		return errors.New("begin run: id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.Subset == "" {
		run.Subset = "all"
	}
	run.Status = StatusRunning

	_, err := s.exec(ctx,
		`INSERT INTO runs (id, name, output_dir, subset, config_json, status, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.OutputDir, run.Subset, nullableString(run.ConfigJSON), string(run.Status), formatTime(run.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// AddOutput records a file written by a run.
func (s *Store) AddOutput(ctx context.Context, out Output) error {
	_, err := s.exec(ctx,
		`INSERT INTO outputs (run_id, record_index, label, source_path, output_path, shape) VALUES (?, ?, ?, ?, ?, ?)`,
		out.RunID, out.RecordIndex, out.Label, out.SourcePath, out.OutputPath, out.Shape,
	)
	if err != nil {
		return fmt.Errorf("insert output %s: %w", out.OutputPath, err)
	}
	return nil
}

// FinishRun stores the final status and counters of a run.
func (s *Store) FinishRun(ctx context.Context, id string, status Status, records, files int, runErr error) error {
	var message string
	if runErr != nil {
		message = runErr.Error()
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET status = ?, records = ?, files = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(status), records, files, nullableString(message), formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// GetRun fetches a run by ID. A unique ID prefix is also accepted.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("run %q: %w", id, ErrRunNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, ?) = ? ORDER BY id = ? DESC LIMIT 2`,
		len(id), id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", id, err)
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("run %q: %w", id, ErrRunNotFound)
	case found[0].ID == id, len(found) == 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("run prefix %q is ambiguous", id)
	}
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListOutputs returns the files written by a run in record order.
func (s *Store) ListOutputs(ctx context.Context, runID string) ([]Output, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, record_index, label, source_path, output_path, shape FROM outputs WHERE run_id = ? ORDER BY record_index, output_path`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	defer rows.Close()

	var outputs []Output
	for rows.Next() {
		var out Output
		if err := rows.Scan(&out.RunID, &out.RecordIndex, &out.Label, &out.SourcePath, &out.OutputPath, &out.Shape); err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		status      string
		configJSON  sql.NullString
		errMessage  sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Name,
		&run.OutputDir,
		&run.Subset,
		&configJSON,
		&status,
		&run.Records,
		&run.Files,
		&errMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	run.Status = Status(status)
	run.ConfigJSON = configJSON.String
	run.Error = errMessage.String
	if started, err := parseTime(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTime(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}
