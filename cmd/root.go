package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tablecheck",
	Short: "Dataset quality assessment tool",
	Long: `tablecheck profiles tabular datasets and decides whether they are
adequate for downstream model training, using structural and
statistical quality heuristics`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is tablecheck.yaml)")
}
