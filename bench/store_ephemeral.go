package bench

import "github.com/victhorio/cachebench/bench/core"

type EphemeralStore struct {
	runs []*core.RunResult
}

func NewEphemeralStore() EphemeralStore {
	return EphemeralStore{}
}

func (s *EphemeralStore) Append(r *core.RunResult) error {
	s.runs = append(s.runs, r)
	return nil
}

func (s *EphemeralStore) Runs(limit int) ([]*core.RunResult, error) {
	n := len(s.runs)
	if limit <= 0 || limit > n {
		limit = n
	}

	// most recent first
	out := make([]*core.RunResult, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}
