package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	DefaultRunLimit = 20
	MaxRunLimit     = 200
)

// RunSummary records one pipeline run. Postings themselves are never
// stored, only how many there were.
type RunSummary struct {
	ID        int64     `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Keyword   string    `json:"keyword"`
	Location  string    `json:"location"`
	Country   string    `json:"country"`
	Skills    []string  `json:"skills"`
	Postings  int       `json:"postings"`
	Matched   int       `json:"matched"`
	State     string    `json:"state"`
	Warnings  []string  `json:"warnings"`
}

// RecordRun inserts r and returns its id.
func (d *DB) RecordRun(ctx context.Context, r RunSummary) (int64, error) {
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	skillsB, err := json.Marshal(r.Skills)
	if err != nil {
		return 0, err
	}
	warnB, err := json.Marshal(r.Warnings)
	if err != nil {
		return 0, err
	}

	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO runs(started_at, keyword, location, country, skills, postings, matched, state, warnings)
VALUES(?,?,?,?,?,?,?,?,?);`,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.Keyword,
		r.Location,
		r.Country,
		string(skillsB),
		r.Postings,
		r.Matched,
		r.State,
		string(warnB),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the newest runs first. limit is clamped to
// 1..MaxRunLimit, with DefaultRunLimit for anything <= 0.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	if limit > MaxRunLimit {
		limit = MaxRunLimit
	}

	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, started_at, keyword, location, country, skills, postings, matched, state, warnings
FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RunSummary{}
	for rows.Next() {
		var (
			r                   RunSummary
			started, sk, warned string
		)
		if err := rows.Scan(&r.ID, &started, &r.Keyword, &r.Location, &r.Country, &sk, &r.Postings, &r.Matched, &r.State, &warned); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		_ = json.Unmarshal([]byte(sk), &r.Skills)
		_ = json.Unmarshal([]byte(warned), &r.Warnings)
		out = append(out, r)
	}
	return out, rows.Err()
}
