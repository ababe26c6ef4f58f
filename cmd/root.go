// file: cmd/root.go
// version: 2.0.0
// guid: 5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abtools/abtools/internal/config"
	"github.com/abtools/abtools/internal/lookup"
	"github.com/abtools/abtools/internal/matcher"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "abtools",
	Short: "Reconcile audiobook metadata and organize files into a library",
	Long: `abtools guesses book metadata from folder structure and embedded tags,
reconciles it against online catalogs, writes the result back into the
audio files, and moves each book into a consistent
Author/Series/Vol N - Year - Title layout.

Every command previews by default; pass --commit to touch the filesystem.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.abtools.yaml)")
}

// loadConfig reads the persisted configuration for a command run.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// requireDir rejects a positional path argument that is missing or not a
// directory. Every subcommand takes directory roots, never files.
func requireDir(label, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %s is not a directory", label, path)
	}
	return nil
}

// newResolver assembles the lookup pipeline from the configuration. The
// high-trust provider is flag-gated, as is the scraped one; the catalog
// APIs are always on.
func newResolver(cfg *config.Config, autoYes, autoNo bool) *matcher.Resolver {
	var primary lookup.Source
	if cfg.Flags.IsOn("audible_first", true) {
		primary = lookup.NewAudibleClient()
	}
	others := []lookup.Source{
		lookup.NewOpenLibraryClient(),
		lookup.NewGoogleBooksClient(),
	}
	if cfg.Flags.IsOn("use_goodreads", false) {
		others = append(others, lookup.NewGoodreadsClient())
	}
	gate := matcher.NewGate(autoYes, autoNo)
	gate.AcceptScore = cfg.Lookup.AcceptScore
	gate.SuggestScore = cfg.Lookup.SuggestScore
	return &matcher.Resolver{
		Ranker: matcher.NewRanker(primary, others, cfg.Lookup.ShortCircuitScore),
		Gate:   gate,
	}
}
