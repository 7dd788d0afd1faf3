package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

var (
	predictTop  int
	predictJSON bool
)

var predictCmd = &cobra.Command{
	Use:   "predict [text...]",
	Short: "Classify free text",
	Long: `Trains on the whole configured corpus and prints the most likely
categories for each argument.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().IntVarP(&predictTop, "top", "n", 3, "number of categories to show per text")
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "output predictions as JSON")
	predictCmd.Flags().Float64Var(&runAlpha, "alpha", 0, "additive smoothing constant (default from settings)")
	rootCmd.AddCommand(predictCmd)
}

type predictionOutput struct {
	Text     string          `json:"text"`
	Category string          `json:"category"`
	Label    int             `json:"label"`
	Top      []categoryScore `json:"top"`
}

type categoryScore struct {
	Category    string  `json:"category"`
	Probability float64 `json:"probability"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	var opts domain.RunOptions
	if cmd.Flags().Changed("alpha") {
		alpha := runAlpha
		opts.Alpha = &alpha
	}

	predictions, err := pipelineService.Predict(cmd.Context(), args, opts)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	categories := categoryNames(cmd, predictions)
	outputs := make([]predictionOutput, len(predictions))
	for i, p := range predictions {
		outputs[i] = predictionOutput{
			Text:     args[i],
			Category: p.Category,
			Label:    p.Label,
			Top:      topCategories(p.Probabilities, categories, predictTop),
		}
	}

	if predictJSON {
		data, err := json.MarshalIndent(outputs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal predictions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for i, out := range outputs {
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("%q\n", truncate(out.Text, 60))
		cmd.Printf("  → %s\n", out.Category)
		for _, s := range out.Top {
			cmd.Printf("    %-28s %.4f\n", s.Category, s.Probability)
		}
	}
	return nil
}

// categoryNames resolves label names from the corpus. Labels fall back to
// their index when the corpus is unavailable.
func categoryNames(cmd *cobra.Command, predictions []domain.Prediction) []string {
	if corpusService != nil {
		if counts, err := corpusService.Categories(cmd.Context()); err == nil {
			names := make([]string, len(counts))
			for i, c := range counts {
				names[i] = c.Name
			}
			return names
		}
	}
	var names []string
	for _, p := range predictions {
		for len(names) < len(p.Probabilities) {
			names = append(names, fmt.Sprintf("#%d", len(names)))
		}
		if p.Label < len(names) {
			names[p.Label] = p.Category
		}
	}
	return names
}

// topCategories returns the n most probable categories, most probable first.
func topCategories(proba []float64, names []string, n int) []categoryScore {
	scores := make([]categoryScore, len(proba))
	for i, p := range proba {
		name := fmt.Sprintf("#%d", i)
		if i < len(names) {
			name = names[i]
		}
		scores[i] = categoryScore{Category: name, Probability: p}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Probability > scores[j].Probability
	})
	if n >= 0 && n < len(scores) {
		scores = scores[:n]
	}
	return scores
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
