package protocol

import (
	"fmt"
	"runtime"
)

// Option alters the orchestrator's behavior in New.
type Option func(*config) error

type config struct {
	failFast       bool
	parallelRounds int
	commitWorkers  int
}

func newConfig(opts ...Option) (config, error) {
	cfg := config{
		failFast:       true,
		parallelRounds: 1,
		commitWorkers:  runtime.NumCPU(),
	}
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return config{}, fmt.Errorf("apply option: %w", err)
		}
	}
	return cfg, nil
}

// WithFailFast stops at the first failed round. This is the default policy:
// a single failed round already proves cheating, so the remaining rounds add
// no information.
func WithFailFast() Option {
	return func(cfg *config) error {
		cfg.failFast = true
		return nil
	}
}

// WithRunAllRounds runs every planned round even after a failure and
// aggregates at the end. Useful for diagnostics; the verdict can only get
// worse.
func WithRunAllRounds() Option {
	return func(cfg *config) error {
		cfg.failFast = false
		return nil
	}
}

// WithParallelRounds runs independent rounds on n goroutines, each with its
// own prover/verifier pair over the shared graph. Trades resource usage for
// latency; round independence makes the soundness bound indifferent to the
// ordering.
func WithParallelRounds(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("parallel rounds must be >= 1, got %d", n)
		}
		cfg.parallelRounds = n
		return nil
	}
}

// WithCommitWorkers sets how many goroutines generate a round's per-node
// commitments. Defaults to the CPU count.
func WithCommitWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("commit workers must be >= 1, got %d", n)
		}
		cfg.commitWorkers = n
		return nil
	}
}
