package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dataqa-labs/tablecheck/internal/config"
	"github.com/dataqa-labs/tablecheck/internal/parser"
	"github.com/dataqa-labs/tablecheck/internal/quality"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.csv]",
	Short: "Evaluate one CSV file against the quality heuristics",
	Long: `Evaluate a single CSV file and print the quality report: score,
accept/reject decision and the full set of quality flags.

Exits non-zero when the dataset is rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, nil)
		if err != nil {
			return err
		}

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
		defer f.Close()

		tbl, err := parser.ReadTable(f)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		eng := quality.NewEngine(cfg.Thresholds)
		rep, err := eng.EvaluateTable(tbl)
		if err != nil {
			return err
		}

		renderReport(os.Stdout, path, rep)

		if !rep.OKForModel {
			return fmt.Errorf("dataset rejected (score %.2f)", rep.QualityScore)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func renderReport(w io.Writer, path string, rep *quality.Report) {
	decision := "ACCEPT"
	if !rep.OKForModel {
		decision = "REJECT"
	}

	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Shape: %d rows x %d columns\n", rep.DatasetShape.NRows, rep.DatasetShape.NCols)
	fmt.Fprintf(w, "Quality score: %.2f  [%s]\n", rep.QualityScore, decision)
	fmt.Fprintf(w, "%s\n\n", rep.Message)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Flag", "Fired"})
	m := rep.Flags.Map()
	for _, name := range quality.FlagOrder {
		t.AppendRow(table.Row{name, m[name]})
	}
	t.Render()

	fmt.Fprintf(w, "\nEvaluated in %.2fms\n", rep.LatencyMS)
}
