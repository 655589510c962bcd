package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dataqa-labs/tablecheck/internal/config"
	"github.com/dataqa-labs/tablecheck/internal/connectors"
	"github.com/dataqa-labs/tablecheck/internal/parser"
	"github.com/dataqa-labs/tablecheck/internal/quality"
)

var (
	dirPath   string
	recursive bool
	verbose   bool
	minSize   int64
	maxSize   int64
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a directory and evaluate every CSV file in it",
	Long: `Scan a directory for CSV files and run the quality heuristics over
each one, printing a per-file accept/reject summary`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cfgFile, nil)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		options := connectors.DiscoveryOptions{
			Recursive: recursive,
			MinSize:   minSize,
			MaxSize:   maxSize,
		}
		files, err := connectors.DiscoverFiles(dirPath, "csv", options)
		if err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		if len(files) == 0 {
			fmt.Printf("No CSV files found in %s\n", dirPath)
			return
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription("[cyan][reset] Evaluating files..."),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		eng := quality.NewEngine(cfg.Thresholds)
		accepted, rejected, failed := 0, 0, 0

		for _, file := range files {
			bar.Add(1)

			rep, err := evaluateFile(eng, file.Path)
			if err != nil {
				log.Printf("Failed to evaluate %s: %v", file.Path, err)
				failed++
				continue
			}

			decision := "ACCEPT"
			if rep.OKForModel {
				accepted++
			} else {
				decision = "REJECT"
				rejected++
			}

			fmt.Printf("\nFile: %s (%s)\n", file.Path, humanize.Bytes(uint64(file.Size)))
			fmt.Printf("- Shape: %d rows x %d columns\n", rep.DatasetShape.NRows, rep.DatasetShape.NCols)
			fmt.Printf("- Score: %.2f [%s]\n", rep.QualityScore, decision)

			if verbose {
				for name, fired := range rep.Flags.Map() {
					if fired {
						fmt.Printf("  flag: %s\n", name)
					}
				}
			}
		}
		bar.Finish()

		fmt.Printf("\nScanned %d files: %d accepted, %d rejected, %d failed\n",
			len(files), accepted, rejected, failed)
	},
}

func evaluateFile(eng *quality.Engine, path string) (*quality.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := parser.ReadTable(f)
	if err != nil {
		return nil, err
	}
	return eng.EvaluateTable(tbl)
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&dirPath, "dir", "d", "",
		"Directory to scan (required)")
	scanCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Search directories recursively")
	scanCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"List the flags raised for each file")
	scanCmd.Flags().Int64Var(&minSize, "min-size", 0,
		"Minimum file size in bytes")
	scanCmd.Flags().Int64Var(&maxSize, "max-size", 0,
		"Maximum file size in bytes")

	scanCmd.MarkFlagRequired("dir")
}
