package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SamBroomy/zk-sudoku-prover/protocol"
)

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "show how many rounds a confidence target costs",
	RunE:  cmdRounds,
}

var (
	fEdges       int
	fConfidences []float64
)

func init() {
	rootCmd.AddCommand(roundsCmd)
	roundsCmd.Flags().IntVar(&fEdges, "edges", 810, "edge count of the coloring graph (810 for a classic 9x9 grid)")
	roundsCmd.Flags().Float64SliceVar(&fConfidences, "confidence", []float64{50, 90, 99, 99.9, 99.99}, "confidence percentages to tabulate")
}

func cmdRounds(cmd *cobra.Command, args []string) error {
	fmt.Printf("%12s %10s\n", "confidence", "rounds")
	for _, c := range fConfidences {
		r, err := protocol.RoundsNeeded(fEdges, c)
		if err != nil {
			return err
		}
		fmt.Printf("%11.4g%% %10d\n", c, r)
	}
	return nil
}
