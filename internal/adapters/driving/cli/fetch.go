package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var fetchForce bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the corpus into the local cache",
	Long: `Reads the configured corpus source and stores every post in the local
cache. Later runs read from the cache. Use --force to re-download.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVarP(&fetchForce, "force", "f", false, "re-download even when cached")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	corpus, err := corpusService.Fetch(cmd.Context(), fetchForce)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	cmd.Printf("Corpus %s: %d documents in %d categories\n",
		corpus.Name, corpus.Len(), len(corpus.Categories))
	if !corpus.FetchedAt.IsZero() {
		cmd.Printf("Fetched at %s\n", corpus.FetchedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
