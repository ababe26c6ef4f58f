// file: cmd/dupes.go
// version: 1.0.0
// guid: 0f1a2b3c-4d5e-6f7a-8b9c-0d1e2f3a4b5c

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abtools/abtools/internal/dupes"
)

// dupesCmd represents the dupes command
var dupesCmd = &cobra.Command{
	Use:   "dupes <root>",
	Short: "Find duplicate audio files",
	Long: `Hash every audio file under root and report files with identical
content, plus pairs of files whose names are suspiciously similar.
Findings are written to duplicate_log.txt under root. Nothing is
deleted; removal stays a manual decision.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if err := requireDir("root", root); err != nil {
			return err
		}

		report, err := dupes.Scan(root, true)
		if err != nil {
			return err
		}
		if report.Empty() {
			fmt.Println("no duplicates found")
			return nil
		}

		for _, paths := range report.Exact {
			fmt.Println("\nidentical content:")
			for _, p := range paths {
				fmt.Printf("  %s\n", p)
			}
		}
		for _, p := range report.Near {
			fmt.Printf("\nsimilar names (%.2f):\n  %s\n  %s\n", p.Similarity, p.A, p.B)
		}

		logPath, err := report.WriteLog(root)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d exact groups, %d near pairs; report: %s\n",
			len(report.Exact), len(report.Near), logPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}
