// Package store persists experiment batches and their per-run best solutions
// in a SQLite database, so benchmark results survive across invocations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/XiaoConstantine/sco-go/pkg/core"
	"github.com/XiaoConstantine/sco-go/pkg/errors"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Experiment is one recorded batch of runs against a problem.
type Experiment struct {
	ID        string
	Problem   string
	CreatedAt time.Time
}

// RunRecord is the best solution of one run within an experiment.
type RunRecord struct {
	ID           string
	ExperimentID string
	Seed         int64
	Objective    float64
	Variables    []float64
	Violations   []float64
	Evaluations  int64
}

// Store is a SQLite-backed experiment archive.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	initialized sync.Once
}

// Open opens (and if needed creates) the archive at path. Use ":memory:"
// for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to open SQLite database"),
			errors.Fields{"path": path},
		)
	}

	s := &Store{
		db:   db,
		path: path,
	}
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureInitialized() error {
	var initErr error
	s.initialized.Do(func() {
		// WAL keeps concurrent readers cheap
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
			return
		}

		query := `
        CREATE TABLE IF NOT EXISTS experiments (
            id TEXT PRIMARY KEY,
            problem TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );

        CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            experiment_id TEXT NOT NULL REFERENCES experiments(id),
            seed INTEGER NOT NULL,
            objective REAL NOT NULL,
            variables TEXT NOT NULL,
            violations TEXT NOT NULL,
            evaluations INTEGER NOT NULL
        );

        CREATE INDEX IF NOT EXISTS idx_runs_experiment
        ON runs(experiment_id, objective);
        `

		if _, err := s.db.Exec(query); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to initialize schema")
			return
		}
	})
	return initErr
}

// CreateExperiment records a new experiment for the named problem.
func (s *Store) CreateExperiment(ctx context.Context, problem string) (Experiment, error) {
	exp := Experiment{
		ID:        uuid.NewString(),
		Problem:   problem,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO experiments (id, problem, created_at) VALUES (?, ?, ?)`,
		exp.ID, exp.Problem, exp.CreatedAt,
	)
	if err != nil {
		return Experiment{}, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to insert experiment"),
			errors.Fields{"problem": problem},
		)
	}
	return exp, nil
}

// SaveRun records the best solution of one run under an experiment.
func (s *Store) SaveRun(ctx context.Context, experimentID string, seed int64, best core.Individual, evaluations int64) (RunRecord, error) {
	variables, err := json.Marshal(best.Variables)
	if err != nil {
		return RunRecord{}, errors.Wrap(err, errors.StorageFailed, "failed to marshal variables")
	}
	violations, err := json.Marshal(best.ConstraintViolations)
	if err != nil {
		return RunRecord{}, errors.Wrap(err, errors.StorageFailed, "failed to marshal violations")
	}

	rec := RunRecord{
		ID:           uuid.NewString(),
		ExperimentID: experimentID,
		Seed:         seed,
		Objective:    best.ObjectiveValue,
		Variables:    append([]float64(nil), best.Variables...),
		Violations:   append([]float64(nil), best.ConstraintViolations...),
		Evaluations:  evaluations,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, experiment_id, seed, objective, variables, violations, evaluations)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ExperimentID, rec.Seed, rec.Objective, string(variables), string(violations), rec.Evaluations,
	)
	if err != nil {
		return RunRecord{}, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to insert run"),
			errors.Fields{"experiment": experimentID, "seed": seed},
		)
	}
	return rec, nil
}

// ListRuns returns every run of an experiment ordered by ascending objective.
func (s *Store) ListRuns(ctx context.Context, experimentID string) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, experiment_id, seed, objective, variables, violations, evaluations
         FROM runs WHERE experiment_id = ? ORDER BY objective ASC`,
		experimentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query runs")
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var variables, violations string
		if err := rows.Scan(&rec.ID, &rec.ExperimentID, &rec.Seed, &rec.Objective, &variables, &violations, &rec.Evaluations); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan run row")
		}
		if err := json.Unmarshal([]byte(variables), &rec.Variables); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "corrupt variables column")
		}
		if err := json.Unmarshal([]byte(violations), &rec.Violations); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "corrupt violations column")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// BestRun returns the minimal-objective run of an experiment.
func (s *Store) BestRun(ctx context.Context, experimentID string) (RunRecord, error) {
	runs, err := s.ListRuns(ctx, experimentID)
	if err != nil {
		return RunRecord{}, err
	}
	if len(runs) == 0 {
		return RunRecord{}, errors.WithFields(
			errors.New(errors.InvalidState, "experiment has no runs"),
			errors.Fields{"experiment": experimentID},
		)
	}
	return runs[0], nil
}

// ListExperiments returns all experiments, newest first.
func (s *Store) ListExperiments(ctx context.Context) ([]Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, problem, created_at FROM experiments ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query experiments")
	}
	defer rows.Close()

	var experiments []Experiment
	for rows.Next() {
		var exp Experiment
		if err := rows.Scan(&exp.ID, &exp.Problem, &exp.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan experiment row")
		}
		experiments = append(experiments, exp)
	}
	return experiments, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
