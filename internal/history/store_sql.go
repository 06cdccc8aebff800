package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/studykit/mockexam/internal/scoring"
)

// SQLStore keeps the history in the results table (see internal/db). The
// scalar columns exist for ordering and ad-hoc inspection; payload_json is
// the record of truth.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Name() string { return "sql" }

func (s *SQLStore) Load(ctx context.Context) ([]scoring.Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload_json FROM results ORDER BY taken_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scoring.Result
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var r scoring.Result
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			// malformed row: skip, don't abort the whole load
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Save(ctx context.Context, results []scoring.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return err
	}
	for _, r := range results {
		payload, err := json.Marshal(r)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO results (id, mode, module_id, score, total, percentage, taken_at, payload_json)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			r.ID, string(r.Mode), r.ModuleID, r.Score, r.Total, r.Percentage,
			r.TakenAt.UTC().Format(time.RFC3339Nano), string(payload))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM results`)
	return err
}
