// file: cmd/flatten.go
// version: 1.0.0
// guid: 9e0f1a2b-3c4d-5e6f-7a8b-9c0d1e2f3a4b

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abtools/abtools/internal/organizer"
)

var (
	flattenCommit bool
	flattenYes    bool
)

// flattenCmd represents the flatten command
var flattenCmd = &cobra.Command{
	Use:   "flatten <root>",
	Short: "Merge sibling disc folders into single book folders",
	Long: `Group directories like "Book (Disc 1)", "Book (Disc 2)" under a common
base name and merge each group's tracks into one "Book" folder with a
single Track NNN sequence. Each group is confirmed before merging unless
--yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if err := requireDir("root", root); err != nil {
			return err
		}

		sets := organizer.DiscSets(root)
		if len(sets) == 0 {
			fmt.Println("no disc sets found")
			return nil
		}

		reader := bufio.NewReader(os.Stdin)
		merged := 0
		for _, set := range sets {
			fmt.Printf("\n%s  (%d discs)\n", set.Base, len(set.Discs))
			if !flattenYes {
				fmt.Print("merge? [y/N] ")
				line, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(line)) != "y" {
					fmt.Println("  skipped")
					continue
				}
			}
			n, err := organizer.FlattenSet(root, set, !flattenCommit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  merge failed: %v\n", err)
				continue
			}
			if flattenCommit {
				fmt.Printf("  merged %d tracks\n", n)
			} else {
				fmt.Printf("  would merge %d tracks\n", n)
			}
			merged++
		}
		fmt.Printf("\n%d of %d disc sets merged\n", merged, len(sets))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flattenCmd)
	flattenCmd.Flags().BoolVar(&flattenCommit, "commit", false, "perform the merges (default is a dry-run preview)")
	flattenCmd.Flags().BoolVar(&flattenYes, "yes", false, "merge every disc set without prompting")
}
