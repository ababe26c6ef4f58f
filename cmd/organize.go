// file: cmd/organize.go
// version: 2.1.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abtools/abtools/internal/matcher"
	"github.com/abtools/abtools/internal/metadata"
	"github.com/abtools/abtools/internal/organizer"
	"github.com/abtools/abtools/internal/runlog"
	"github.com/abtools/abtools/internal/watcher"
)

var (
	organizeCommit  bool
	organizeCopy    bool
	organizeYes     bool
	organizeNo      bool
	organizeRecurse bool
	organizeWatch   bool
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize <source> <library>",
	Short: "Resolve metadata and move audiobooks into the library layout",
	Long: `Scan the source tree for book folders, resolve each book's metadata
(embedded tags, sidecars, folder name patterns, then online lookup),
flatten disc subfolders, and move the book to
library/Author/Series/Vol N - Year - Title.

Without --commit the plan is printed and nothing is touched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, library := args[0], args[1]
		if err := requireDir("source", source); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		resolver := newResolver(cfg, organizeYes, organizeNo)
		resolver.OnRanked = printRanking

		lg := runlog.New(source)
		org := &organizer.Organizer{
			Library: library,
			DryRun:  !organizeCommit,
			Copy:    organizeCopy,
			Limits: organizer.Limits{
				MaxAuthorLen: cfg.Limits.MaxAuthorLen,
				MaxSeriesLen: cfg.Limits.MaxSeriesLen,
				MaxTitleLen:  cfg.Limits.MaxTitleLen,
			},
			Lookup:   resolver,
			Reporter: organizer.MultiReporter(consoleReporter(), runlogReporter(lg)),
		}

		run := func() {
			stats, err := runOrganize(org, source, organizeRecurse)
			if err != nil {
				fmt.Fprintf(os.Stderr, "organize: %v\n", err)
				return
			}
			printStats(stats, !organizeCommit)
		}
		run()

		if !organizeWatch {
			return nil
		}

		fmt.Printf("\nWatching %s for new books (Ctrl-C to stop)...\n", source)
		w, err := watcher.New(source, 0, run)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	},
}

// runOrganize processes either the whole tree or just the top level of it.
func runOrganize(org *organizer.Organizer, source string, recurse bool) (organizer.Stats, error) {
	if recurse {
		return org.Run(source)
	}
	for _, unit := range topLevelUnits(source) {
		org.ProcessBook(unit)
	}
	return org.Stats(), nil
}

// topLevelUnits returns the book units among the direct children of root,
// or root itself when it directly holds audio.
func topLevelUnits(root string) []string {
	if organizer.HasAudio(root) {
		return []string{root}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var units []string
	for _, e := range entries {
		if e.IsDir() {
			units = append(units, filepath.Join(root, e.Name()))
		}
	}
	return units
}

// printRanking shows the per-provider best scores before the gate decides.
func printRanking(guess metadata.Book, ranking matcher.Ranking) {
	if len(ranking.BySource) == 0 {
		return
	}
	fmt.Printf("   candidates for %q:\n", guess.Title)
	for name, scored := range ranking.BySource {
		fmt.Printf("     %-9s %3d  %s - %s\n", name, scored.Score, scored.Author, scored.Title)
	}
}

func printStats(s organizer.Stats, dry bool) {
	fmt.Printf("\n%d books: ", s.Total)
	if dry {
		fmt.Printf("%d would move", s.WouldMove)
	} else {
		fmt.Printf("%d moved", s.Moved)
	}
	fmt.Printf(", %d exist, %d skipped, %d without audio\n", s.Exists, s.Skip, s.NoAudio)
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().BoolVar(&organizeCommit, "commit", false, "perform the moves (default is a dry-run preview)")
	organizeCmd.Flags().BoolVar(&organizeCopy, "copy", false, "copy instead of move (source is kept)")
	organizeCmd.Flags().BoolVar(&organizeYes, "yes", false, "accept every sub-threshold match without prompting")
	organizeCmd.Flags().BoolVar(&organizeNo, "no", false, "reject every sub-threshold match without prompting")
	organizeCmd.Flags().BoolVar(&organizeRecurse, "recurse", false, "descend beyond the top level when discovering books")
	organizeCmd.Flags().BoolVar(&organizeWatch, "watch", false, "stay running and rescan when new files settle")
	organizeCmd.MarkFlagsMutuallyExclusive("yes", "no")
}
