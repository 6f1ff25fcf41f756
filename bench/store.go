package bench

import "github.com/victhorio/cachebench/bench/core"

// Store keeps finished benchmark runs so sessions can be compared over time.
type Store interface {
	Append(*core.RunResult) error
	// Runs returns stored runs, most recent first. limit <= 0 means all.
	Runs(limit int) ([]*core.RunResult, error)
}
