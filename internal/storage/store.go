// Package storage persists runs and their sampled histories in SQLite.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/elverum/plasmalab/internal/experiment"
	"github.com/elverum/plasmalab/internal/physics"
)

// Store wraps a SQLite connection for run persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the run database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		created_at TEXT NOT NULL,
		ticks INTEGER NOT NULL,
		recomputes INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		final_json TEXT NOT NULL,
		metrics_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		results_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, tick);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// RunMeta is the stored summary of one run.
type RunMeta struct {
	ID         string    `db:"id"`
	Label      string    `db:"label"`
	CreatedAt  time.Time `db:"-"`
	Ticks      uint64    `db:"ticks"`
	Recomputes uint64    `db:"recomputes"`
	Params     physics.Parameters
	Final      physics.Results
	Metrics    map[string]float64
}

// SaveRun stores a completed run with its sampled history and returns
// the generated run ID.
func (s *Store) SaveRun(label string, res *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().UnixNano())

	paramsJSON, err := json.Marshal(res.Params)
	if err != nil {
		return "", err
	}
	finalJSON, err := json.Marshal(res.Final)
	if err != nil {
		return "", err
	}
	metricsJSON, err := json.Marshal(res.Metrics)
	if err != nil {
		return "", err
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, label, created_at, ticks, recomputes, params_json, final_json, metrics_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, label, time.Now().UTC().Format(time.RFC3339Nano),
		res.Ticks, res.Recomputes,
		string(paramsJSON), string(finalJSON), string(metricsJSON))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO samples (run_id, tick, results_json) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, sample := range res.Samples {
		resultsJSON, err := json.Marshal(sample.Results)
		if err != nil {
			return "", err
		}
		if _, err := stmt.Exec(runID, sample.Tick, string(resultsJSON)); err != nil {
			return "", fmt.Errorf("insert sample at tick %d: %w", sample.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run saved", "id", runID, "ticks", res.Ticks, "samples", len(res.Samples))
	return runID, nil
}

type runRow struct {
	ID          string `db:"id"`
	Label       string `db:"label"`
	CreatedAt   string `db:"created_at"`
	Ticks       uint64 `db:"ticks"`
	Recomputes  uint64 `db:"recomputes"`
	ParamsJSON  string `db:"params_json"`
	FinalJSON   string `db:"final_json"`
	MetricsJSON string `db:"metrics_json"`
}

func (r runRow) meta() (RunMeta, error) {
	meta := RunMeta{
		ID:         r.ID,
		Label:      r.Label,
		Ticks:      r.Ticks,
		Recomputes: r.Recomputes,
	}
	if t, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
		meta.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(r.ParamsJSON), &meta.Params); err != nil {
		return meta, err
	}
	if err := json.Unmarshal([]byte(r.FinalJSON), &meta.Final); err != nil {
		return meta, err
	}
	if err := json.Unmarshal([]byte(r.MetricsJSON), &meta.Metrics); err != nil {
		return meta, err
	}
	return meta, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns() ([]RunMeta, error) {
	var rows []runRow
	if err := s.conn.Select(&rows, `SELECT * FROM runs ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	metas := make([]RunMeta, 0, len(rows))
	for _, row := range rows {
		meta, err := row.meta()
		if err != nil {
			return nil, fmt.Errorf("decode run %s: %w", row.ID, err)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// LoadRun fetches one run's summary by ID.
func (s *Store) LoadRun(id string) (RunMeta, error) {
	var row runRow
	if err := s.conn.Get(&row, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return RunMeta{}, fmt.Errorf("load run %s: %w", id, err)
	}
	return row.meta()
}

// LoadSamples fetches one run's sampled history in tick order.
func (s *Store) LoadSamples(id string) ([]experiment.Sample, error) {
	var rows []struct {
		Tick        uint64 `db:"tick"`
		ResultsJSON string `db:"results_json"`
	}
	err := s.conn.Select(&rows, `SELECT tick, results_json FROM samples WHERE run_id = ? ORDER BY tick`, id)
	if err != nil {
		return nil, err
	}
	samples := make([]experiment.Sample, 0, len(rows))
	for _, row := range rows {
		var r physics.Results
		if err := json.Unmarshal([]byte(row.ResultsJSON), &r); err != nil {
			return nil, fmt.Errorf("decode sample at tick %d: %w", row.Tick, err)
		}
		samples = append(samples, experiment.Sample{Tick: row.Tick, Results: r})
	}
	return samples, nil
}
