// Package protocol drives the interactive zero-knowledge proof: per-round
// color shuffles, the committing prover, the challenging verifier and the
// orchestrator that runs enough independent rounds to reach a target
// confidence against a cheating prover.
package protocol

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/SamBroomy/zk-sudoku-prover/graph"
	"github.com/SamBroomy/zk-sudoku-prover/logger"
	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
	"golang.org/x/sync/errgroup"
)

// Protocol collocates the prover and verifier roles over one reduced grid.
// The graph is built once at construction and shared read-only; everything
// else is per-round and discarded.
type Protocol struct {
	g        *graph.Graph
	coloring []sudoku.Value
	cfg      config
}

// New reduces the grid to its coloring graph and prepares an orchestrator.
// Fails if the reduction rejects the grid or an option is invalid.
func New(grid *sudoku.Grid, opts ...Option) (*Protocol, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(grid.Assignment())
	if err != nil {
		return nil, fmt.Errorf("building coloring graph: %w", err)
	}
	coloring, err := g.ExtendColoring(grid.Assignment())
	if err != nil {
		return nil, err
	}
	return &Protocol{g: g, coloring: coloring, cfg: cfg}, nil
}

// Graph returns the shared coloring graph.
func (p *Protocol) Graph() *graph.Graph {
	return p.g
}

// RoundsNeeded returns the smallest round count r such that a cheating
// prover survives all r uniform edge challenges with probability at most
// 1 - confidence/100, i.e. the smallest r with (1-1/nbEdges)^r below that
// bound.
func RoundsNeeded(nbEdges int, confidence float64) (int, error) {
	if nbEdges <= 0 {
		return 0, ErrNoEdges
	}
	if math.IsNaN(confidence) || confidence <= 0 || confidence >= 100 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfidence, confidence)
	}
	if nbEdges == 1 {
		// the single challenge is certain to hit the inconsistency
		return 1, nil
	}
	catchProb := 1.0 / float64(nbEdges)
	r := math.Ceil(math.Log(1-confidence/100) / math.Log(1-catchProb))
	if r < 1 {
		return 1, nil
	}
	return int(r), nil
}

// Confidence returns the nominal confidence percentage achieved by the given
// number of passed rounds, the inverse view of RoundsNeeded.
func Confidence(nbEdges, rounds int) float64 {
	if nbEdges <= 0 || rounds <= 0 {
		return 0
	}
	return (1 - math.Pow(1-1.0/float64(nbEdges), float64(rounds))) * 100
}

// ProveWithConfidence runs as many independent rounds as the confidence
// target requires and aggregates the verdicts. The default policy stops at
// the first failed round (see WithRunAllRounds); in either policy the run is
// accepted iff every executed round passed. Context cancellation surfaces as
// ErrTimeout.
func (p *Protocol) ProveWithConfidence(ctx context.Context, confidence float64) (*Result, error) {
	log := logger.Logger()

	rounds, err := RoundsNeeded(p.g.NbEdges(), confidence)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rounds", rounds).Float64("confidence", confidence).
		Int("nbEdges", p.g.NbEdges()).Msg("starting proof")

	var res *Result
	if p.cfg.parallelRounds > 1 {
		res, err = p.proveParallel(ctx, rounds, confidence)
	} else {
		res, err = p.proveSequential(ctx, rounds, confidence)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Bool("accepted", res.Accepted).Int("roundsRun", res.RoundsRun).Msg("proof finished")
	return res, nil
}

func (p *Protocol) proveSequential(ctx context.Context, rounds int, confidence float64) (*Result, error) {
	log := logger.Logger()
	prover := newProver(p.g, p.coloring, p.cfg.commitWorkers)
	verifier := NewVerifier(p.g)

	res := &Result{Accepted: true, RoundsPlanned: rounds, Confidence: confidence}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		verdict, err := runRound(prover, verifier)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		res.RoundsRun++
		if verdict != VerdictPass {
			res.Accepted = false
			log.Warn().Int("round", i+1).Stringer("verdict", verdict).Msg("round failed")
			if p.cfg.failFast {
				break
			}
		}
	}
	return res, nil
}

func (p *Protocol) proveParallel(ctx context.Context, rounds int, confidence float64) (*Result, error) {
	log := logger.Logger()
	var (
		roundsRun atomic.Int64
		failed    atomic.Bool
		stop      atomic.Bool
	)

	eg, ctx := errgroup.WithContext(ctx)
	workers := min(p.cfg.parallelRounds, rounds)
	for w := 0; w < workers; w++ {
		share := rounds / workers
		if w < rounds%workers {
			share++
		}
		eg.Go(func() error {
			prover := newProver(p.g, p.coloring, p.cfg.commitWorkers)
			verifier := NewVerifier(p.g)
			for i := 0; i < share; i++ {
				if stop.Load() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("%w: %w", ErrTimeout, err)
				}
				verdict, err := runRound(prover, verifier)
				if err != nil {
					return err
				}
				roundsRun.Add(1)
				if verdict != VerdictPass {
					failed.Store(true)
					log.Warn().Stringer("verdict", verdict).Msg("round failed")
					if p.cfg.failFast {
						stop.Store(true)
						return nil
					}
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &Result{
		Accepted:      !failed.Load(),
		RoundsPlanned: rounds,
		RoundsRun:     int(roundsRun.Load()),
		Confidence:    confidence,
	}, nil
}

// runRound executes one full commit-challenge-reveal-verify cycle. The
// ordering is load-bearing: the verifier sees every commitment before it
// commits to a challenge, and the prover sees the challenge before revealing
// anything.
func runRound(prover *Prover, verifier *Verifier) (Verdict, error) {
	rc, err := prover.StartRound()
	if err != nil {
		return VerdictInvalid, err
	}
	if err := verifier.ReceiveCommitments(rc); err != nil {
		return VerdictInvalid, err
	}
	challenge, err := verifier.ChooseChallenge()
	if err != nil {
		return VerdictInvalid, err
	}
	reveal, err := prover.Respond(challenge)
	if err != nil {
		return VerdictInvalid, err
	}
	return verifier.Check(reveal)
}
