// file: cmd/tag.go
// version: 2.0.0
// guid: 8d9e0f1a-2b3c-4d5e-6f7a-8b9c0d1e2f3a

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abtools/abtools/internal/metadata"
	"github.com/abtools/abtools/internal/organizer"
	"github.com/abtools/abtools/internal/runlog"
)

var (
	tagCommit    bool
	tagYes       bool
	tagNo        bool
	tagStripTags bool
	tagRecurse   bool
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag <root>",
	Short: "Resolve metadata and write it into the audio files in place",
	Long: `Guess each book's identity from its folder path, reconcile the guess
against the online catalogs, and write the accepted metadata into the
audio files without moving them. Sidecar files (metadata.json, book.nfo)
are exported next to fully tagged books.

Actions are recorded in tag_log.txt; unresolved books land in
review_log.txt for manual follow-up. With --striptags all existing tags
are removed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if err := requireDir("root", root); err != nil {
			return err
		}

		if tagStripTags {
			return stripTree(root, !tagCommit)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		resolver := newResolver(cfg, tagYes, tagNo)
		resolver.OnRanked = printRanking

		units := topLevelUnits(root)
		if tagRecurse {
			units, err = organizer.LeafDirs(root)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", root, err)
			}
		}

		lg := runlog.New(root)
		tagged, skipped := 0, 0
		for _, dir := range units {
			fmt.Printf("\n== %s\n", dir)
			audio := organizer.AudioFiles(dir)
			if len(audio) == 0 {
				skipped++
				fmt.Println("   skipped (no_audio)")
				lg.Log("SKIP", dir)
				continue
			}

			guess := metadata.Guess(dir)
			if guess.Author == metadata.UnknownAuthor && guess.Title == "" {
				// Nothing to search with; flag for manual cleanup.
				skipped++
				fmt.Println("   skipped (unknown)")
				lg.Review(dir, "unknown")
				continue
			}

			book, reason := resolver.Resolve(guess)
			if book == nil {
				skipped++
				fmt.Printf("   skipped (%s)\n", reason)
				lg.Log("SKIP", dir)
				lg.Review(dir, reason)
				continue
			}

			fmt.Printf("   %s\n", describeBook(book))
			if !tagCommit {
				tagged++
				fmt.Printf("   would tag %d files\n", len(audio))
				lg.Log("DRY", dir)
				continue
			}

			ok := 0
			for i, f := range audio {
				if err := metadata.WriteTags(f, book, i+1, len(audio)); err != nil {
					fmt.Fprintf(os.Stderr, "   tag %s: %v\n", f, err)
					continue
				}
				ok++
			}
			fmt.Printf("   tagged %d/%d files\n", ok, len(audio))
			lg.Log("TAGGED", fmt.Sprintf("%s (%d/%d files)", dir, ok, len(audio)))
			if ok == len(audio) {
				if err := metadata.ExportSidecar(dir, book); err != nil {
					fmt.Fprintf(os.Stderr, "   sidecar: %v\n", err)
				}
			}
			tagged++
		}

		fmt.Printf("\n%d books: %d tagged, %d skipped\n", len(units), tagged, skipped)
		fmt.Printf("log: %s\nreview: %s\n", lg.ActionPath(), lg.ReviewPath())
		return nil
	},
}

// stripTree removes every tag from every audio file under root.
func stripTree(root string, dry bool) error {
	units, err := organizer.LeafDirs(root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}
	ok, failed := 0, 0
	for _, dir := range units {
		for _, f := range organizer.AudioFiles(dir) {
			if dry {
				fmt.Printf("would strip %s\n", f)
				ok++
				continue
			}
			if err := metadata.StripTags(f); err != nil {
				fmt.Fprintf(os.Stderr, "strip %s: %v\n", f, err)
				failed++
				continue
			}
			ok++
		}
	}
	verb := "stripped"
	if dry {
		verb = "would strip"
	}
	fmt.Printf("%s %d files, %d failed\n", verb, ok, failed)
	return nil
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.Flags().BoolVar(&tagCommit, "commit", false, "write the tags (default is a dry-run preview)")
	tagCmd.Flags().BoolVar(&tagYes, "yes", false, "accept every sub-threshold match without prompting")
	tagCmd.Flags().BoolVar(&tagNo, "no", false, "reject every sub-threshold match without prompting")
	tagCmd.Flags().BoolVar(&tagStripTags, "striptags", false, "remove all tags instead of writing them")
	tagCmd.Flags().BoolVar(&tagRecurse, "recurse", false, "descend beyond the top level when discovering books")
	tagCmd.MarkFlagsMutuallyExclusive("yes", "no")
}
