package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the corpus categories",
	Long:  `Lists every category of the cached corpus with its document count.`,
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output categories as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	counts, err := corpusService.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if categoriesJSON {
		data, err := json.MarshalIndent(counts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal categories: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputCategories(cmd, counts)
	return nil
}

func outputCategories(cmd *cobra.Command, counts []domain.CategoryCount) {
	if len(counts) == 0 {
		cmd.Println("No categories found.")
		return
	}

	width := 0
	total := 0
	for _, c := range counts {
		width = max(width, len(c.Name))
		total += c.Documents
	}
	for i, c := range counts {
		cmd.Printf("%2d  %-*s  %5d\n", i, width, c.Name, c.Documents)
	}
	cmd.Printf("\n%d categories, %d documents\n", len(counts), total)
}
