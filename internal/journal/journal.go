// Package journal persists the terminal outcome of every scan event.
// It doubles as the dead-letter trail: unmatched, discarded, and failed
// events stay queryable instead of vanishing into the log.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scangate/internal/recorder"
)

// Entry is one journaled event outcome.
type Entry struct {
	ID         string    `json:"id"`
	EmployeeNo string    `json:"employee_no"`
	Subject    string    `json:"subject,omitempty"`
	SubjectID  string    `json:"subject_id,omitempty"`
	Stage      string    `json:"stage"`
	Date       string    `json:"date"`
	Summ       *float64  `json:"summ,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository persists journal entries in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the journal table when missing. The gateway runs
// this on startup; there is no separate migration step for one table.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scan_journal (
			id          UUID PRIMARY KEY,
			employee_no TEXT NOT NULL,
			subject     TEXT NOT NULL DEFAULT '',
			subject_id  TEXT NOT NULL DEFAULT '',
			stage       TEXT NOT NULL,
			scan_date   TEXT NOT NULL,
			summ        DOUBLE PRECISION,
			detail      TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// Record writes one outcome.
func (r *Repository) Record(ctx context.Context, out recorder.Outcome) (Entry, error) {
	entry := Entry{
		ID:         out.EventID,
		EmployeeNo: out.EmployeeNo,
		Subject:    out.Subject,
		SubjectID:  out.SubjectID,
		Stage:      string(out.Stage),
		Date:       out.Date,
		Summ:       out.Summ,
		Detail:     out.Detail,
		OccurredAt: out.OccurredAt,
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO scan_journal (id, employee_no, subject, subject_id, stage, scan_date, summ, detail, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, entry.ID, entry.EmployeeNo, entry.Subject, entry.SubjectID, entry.Stage, entry.Date, entry.Summ, entry.Detail, entry.OccurredAt)
	if err := row.Scan(&entry.CreatedAt); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns entries with basic filters, newest first.
func (r *Repository) List(ctx context.Context, stage, employeeNo string, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT id, employee_no, subject, subject_id, stage, scan_date, summ, detail, occurred_at, created_at FROM scan_journal`
	args := []any{}
	clauses := []string{}
	if stage != "" {
		clauses = append(clauses, fmt.Sprintf("stage = $%d", len(args)+1))
		args = append(args, stage)
	}
	if employeeNo != "" {
		clauses = append(clauses, fmt.Sprintf("employee_no = $%d", len(args)+1))
		args = append(args, employeeNo)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EmployeeNo, &e.Subject, &e.SubjectID, &e.Stage, &e.Date, &e.Summ, &e.Detail, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
