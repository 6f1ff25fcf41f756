package bench

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/victhorio/cachebench/bench/core"
)

// SQLiteStore persists run history. Run totals live in scalar columns so they
// can be queried directly; per-turn records are stored as JSON payload rows.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (and if necessary creates) the history database.
// The path parameter can be a file path or ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			mode TEXT NOT NULL,
			workload TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			latency_ns INTEGER NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			cache_read_tokens INTEGER NOT NULL DEFAULT 0,
			cache_write_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			cost INTEGER NOT NULL DEFAULT 0,
			conversations_per_day INTEGER NOT NULL DEFAULT 0,
			daily_cost INTEGER NOT NULL DEFAULT 0,
			monthly_cost INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started_at
			ON runs(started_at);

		CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			payload BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_turns_run_id_turn
			ON turns(run_id, turn);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(r *core.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			id, model, mode, workload, started_at, latency_ns,
			input_tokens, cache_read_tokens, cache_write_tokens,
			output_tokens, total_tokens, cost,
			conversations_per_day, daily_cost, monthly_cost
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.Model, string(r.Mode), r.Workload, r.StartedAt.UTC(), int64(r.Latency),
		r.Totals.Input, r.Totals.CacheRead, r.Totals.CacheWrite,
		r.Totals.Output, r.Totals.Total, r.Totals.Cost,
		r.Projection.ConversationsPerDay, r.Projection.DailyCost, r.Projection.MonthlyCost,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO turns (run_id, turn, payload) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, turn := range r.Turns {
		payload, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("failed to serialize turn: %w", err)
		}
		if _, err := stmt.Exec(r.ID, turn.Turn, payload); err != nil {
			return fmt.Errorf("failed to insert turn: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Runs(limit int) ([]*core.RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, model, mode, workload, started_at, latency_ns,
			input_tokens, cache_read_tokens, cache_write_tokens,
			output_tokens, total_tokens, cost,
			conversations_per_day, daily_cost, monthly_cost
		FROM runs
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*core.RunResult
	for rows.Next() {
		var r core.RunResult
		var mode string
		var startedAt time.Time
		var latencyNS int64

		err := rows.Scan(
			&r.ID, &r.Model, &mode, &r.Workload, &startedAt, &latencyNS,
			&r.Totals.Input, &r.Totals.CacheRead, &r.Totals.CacheWrite,
			&r.Totals.Output, &r.Totals.Total, &r.Totals.Cost,
			&r.Projection.ConversationsPerDay, &r.Projection.DailyCost, &r.Projection.MonthlyCost,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		r.Mode = core.Mode(mode)
		r.StartedAt = startedAt
		r.Latency = time.Duration(latencyNS)

		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for _, r := range runs {
		turns, err := s.loadTurns(r.ID)
		if err != nil {
			return nil, err
		}
		r.Turns = turns
	}

	return runs, nil
}

func (s *SQLiteStore) loadTurns(runID string) ([]core.TurnResult, error) {
	rows, err := s.db.Query(
		"SELECT payload FROM turns WHERE run_id = ? ORDER BY turn ASC",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.TurnResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}

		var turn core.TurnResult
		if err := json.Unmarshal(payload, &turn); err != nil {
			return nil, fmt.Errorf("failed to deserialize turn: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turns: %w", err)
	}

	return turns, nil
}
