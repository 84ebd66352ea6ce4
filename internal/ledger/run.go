package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/commodex/internal/canonical"
)

// Kind distinguishes ledger entries.
type Kind string

const (
	KindGenerate Kind = "generate"
	KindValidate Kind = "validate"
)

// Run is one ledger entry.
type Run struct {
	Seq          int64     `json:"seq"`
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	SpecPath     string    `json:"spec_path"`
	ContractHash string    `json:"contract_hash,omitempty"`
	DatasetPath  string    `json:"dataset_path"`
	Rows         int       `json:"rows"`
	Passed       bool      `json:"passed"`
	Violations   []string  `json:"violations,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Record appends run to the ledger and returns it with ID, Seq and
// RecordedAt filled in.
func (l *Ledger) Record(ctx context.Context, run Run) (Run, error) {
	if run.Kind != KindGenerate && run.Kind != KindValidate {
		return Run{}, fmt.Errorf("record run: invalid kind %q", run.Kind)
	}
	if run.ID == "" {
		run.ID = l.NewID()
	}
	run.RecordedAt = l.Now().UTC()

	violations := run.Violations
	if violations == nil {
		violations = []string{}
	}
	violationsJSON, err := canonical.Marshal(violations)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, kind, spec_path, contract_hash, dataset_path, rows, passed, violations, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		string(run.Kind),
		run.SpecPath,
		run.ContractHash,
		run.DatasetPath,
		run.Rows,
		run.Passed,
		string(violationsJSON),
		run.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	run.Seq, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// ListOptions filters List.
type ListOptions struct {
	Kind  Kind // empty for all kinds
	Limit int  // most recent N runs; zero for all
}

// List returns runs ordered by seq ascending. With a Limit, the most recent
// Limit runs are returned, still in ascending order.
//
// Returns an empty slice (not nil) if no runs match.
func (l *Ledger) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT seq, id, kind, spec_path, contract_hash, dataset_path, rows, passed, violations, recorded_at
		FROM (
			SELECT * FROM runs
			WHERE ? = '' OR kind = ?
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC
	`, string(opts.Kind), string(opts.Kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run            Run
		kind           string
		violationsJSON string
		recordedAt     string
	)
	err := rows.Scan(
		&run.Seq,
		&run.ID,
		&kind,
		&run.SpecPath,
		&run.ContractHash,
		&run.DatasetPath,
		&run.Rows,
		&run.Passed,
		&violationsJSON,
		&recordedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Kind = Kind(kind)

	if err := json.Unmarshal([]byte(violationsJSON), &run.Violations); err != nil {
		return Run{}, fmt.Errorf("decode violations of run %s: %w", run.ID, err)
	}
	if len(run.Violations) == 0 {
		run.Violations = nil
	}

	run.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Run{}, fmt.Errorf("decode recorded_at of run %s: %w", run.ID, err)
	}
	return run, nil
}
