// Command zksudoku demonstrates the interactive zero-knowledge Sudoku proof
// with collocated prover and verifier roles.
package main

import (
	"os"

	"github.com/spf13/cobra"

	zksudoku "github.com/SamBroomy/zk-sudoku-prover"
)

var rootCmd = &cobra.Command{
	Use:     "zksudoku",
	Short:   "zero-knowledge proofs of Sudoku solutions",
	Version: zksudoku.Version.String(),
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
