package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SamBroomy/zk-sudoku-prover/logger"
	"github.com/SamBroomy/zk-sudoku-prover/protocol"
	"github.com/SamBroomy/zk-sudoku-prover/sudoku"
)

var proveCmd = &cobra.Command{
	Use:   "prove [grid]",
	Short: "prove knowledge of a Sudoku solution without revealing it",
	Long: `Runs the interactive commit/challenge/reveal protocol against the given
solved grid: an 81-character string of digits '1'..'9', row by row, passed as
an argument or read from a file with --input.`,
	RunE: cmdProve,
}

var (
	fConfidence float64
	fInputPath  string
	fParallel   int
	fRunAll     bool
	fTimeout    time.Duration
)

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().Float64Var(&fConfidence, "confidence", 99.0, "target confidence percentage, in (0, 100) exclusive")
	proveCmd.Flags().StringVar(&fInputPath, "input", "", "read the grid from a file instead of the argument")
	proveCmd.Flags().IntVar(&fParallel, "parallel", 1, "number of goroutines running rounds")
	proveCmd.Flags().BoolVar(&fRunAll, "all", false, "run every planned round even after a failure")
	proveCmd.Flags().DurationVar(&fTimeout, "timeout", 0, "abort the proof after this duration (0 = none)")
}

func cmdProve(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	var raw string
	switch {
	case fInputPath != "":
		data, err := os.ReadFile(fInputPath)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(string(data))
	case len(args) == 1:
		raw = args[0]
	default:
		return fmt.Errorf("missing grid -- zksudoku prove -h for help")
	}

	grid, err := sudoku.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing grid: %w", err)
	}
	log.Info().Msg("grid parsed:\n" + grid.String())

	opts := []protocol.Option{protocol.WithParallelRounds(fParallel)}
	if fRunAll {
		opts = append(opts, protocol.WithRunAllRounds())
	}
	p, err := protocol.New(grid, opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if fTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := p.ProveWithConfidence(ctx, fConfidence)
	if err != nil {
		return err
	}

	log.Info().Dur("took", time.Since(start)).
		Int("roundsRun", res.RoundsRun).
		Float64("confidence", res.Confidence).
		Msg("protocol complete")

	if !res.Accepted {
		fmt.Println("REJECTED: the claimed solution is inconsistent")
		os.Exit(1)
	}
	fmt.Printf("ACCEPTED: verifier is %.4g%% confident the prover knows a valid solution (%d rounds)\n",
		res.Confidence, res.RoundsRun)
	return nil
}
