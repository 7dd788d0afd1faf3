// Package cli provides the newsbayes command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driving"
	"github.com/custodia-labs/newsbayes/internal/logger"
	"github.com/custodia-labs/newsbayes/internal/metrics"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services holds the core services the commands drive.
type Services struct {
	Pipeline driving.PipelineService
	Corpus   driving.CorpusService
	Settings driving.SettingsService
}

var (
	pipelineService driving.PipelineService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
)

var (
	verbose bool

	runTestSize  float64
	runSeed      int64
	runAlpha     float64
	runJSON      bool
	runPlain     bool
	runFullVocab bool
	runDigits    int
)

var rootCmd = &cobra.Command{
	Use:   "newsbayes",
	Short: "Naive Bayes text classification over 20 Newsgroups",
	Long: `newsbayes trains a multinomial Naive Bayes classifier on TF-IDF features
of the 20 Newsgroups corpus and evaluates it on a held-out split.

Run without a subcommand to fetch the corpus (cached after the first run),
split it, train, and print the vocabulary, the test-set predictions, the
accuracy and a per-category classification report.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runPipeline,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")

	flags := rootCmd.Flags()
	flags.Float64Var(&runTestSize, "test-size", 0, "test share of the split, in (0,1) (default from settings)")
	flags.Int64Var(&runSeed, "seed", 0, "seed the split for a reproducible run")
	flags.Float64Var(&runAlpha, "alpha", 0, "additive smoothing constant (default from settings)")
	flags.BoolVar(&runJSON, "json", false, "output the run result as JSON")
	flags.BoolVar(&runPlain, "plain", false, "print the report as plain text even on a terminal")
	flags.BoolVar(&runFullVocab, "full-vocabulary", false, "print every vocabulary term")
	flags.IntVar(&runDigits, "digits", metrics.DefaultDigits, "decimals in the classification report")
}

// SetServices sets the services used by the commands.
func SetServices(s Services) {
	pipelineService = s.Pipeline
	corpusService = s.Corpus
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	opts := runOptions(cmd)
	result, err := pipelineService.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if runJSON {
		return outputRunJSON(cmd, result)
	}

	out := cmd.OutOrStdout()
	vocabulary := result.Vocabulary
	if runFullVocab {
		fmt.Fprintln(out, FormatStrings(vocabulary, 0))
	} else {
		fmt.Fprintln(out, FormatStrings(vocabulary, SummaryThreshold))
	}
	fmt.Fprintln(out, FormatInts(result.Predictions, SummaryThreshold))
	fmt.Fprintln(out, FormatFloat(result.Accuracy))
	fmt.Fprint(out, renderReport(out, result.Report, runDigits, runPlain))

	logger.Info("run %s finished in %s: %d terms, %d train, %d test",
		result.RunID, result.Duration, len(vocabulary), result.TrainSize, result.TestSize)
	return nil
}

// runOptions converts the flags the user set into per-run overrides.
func runOptions(cmd *cobra.Command) domain.RunOptions {
	var opts domain.RunOptions
	flags := cmd.Flags()
	if flags.Changed("test-size") {
		testSize := runTestSize
		opts.TestSize = &testSize
	}
	if flags.Changed("seed") {
		seed := runSeed
		opts.Seed = &seed
	}
	if flags.Changed("alpha") {
		alpha := runAlpha
		opts.Alpha = &alpha
	}
	return opts
}

func outputRunJSON(cmd *cobra.Command, result *domain.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
