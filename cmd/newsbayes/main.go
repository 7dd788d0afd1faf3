// Command newsbayes trains and evaluates a Naive Bayes classifier on the
// 20 Newsgroups corpus.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/newsbayes/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsbayes/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/newsbayes/internal/adapters/driving/cli"
	"github.com/custodia-labs/newsbayes/internal/connectors"
	"github.com/custodia-labs/newsbayes/internal/core/services"
	"github.com/custodia-labs/newsbayes/internal/models"
	"github.com/custodia-labs/newsbayes/internal/normalisers"
	"github.com/custodia-labs/newsbayes/internal/normalisers/eml"
	"github.com/custodia-labs/newsbayes/internal/normalisers/plaintext"
	"github.com/custodia-labs/newsbayes/internal/postprocessors"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open corpus cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)

	corpusService := services.NewCorpusService(
		connectors.NewDefaultFactory(nil),
		normalisers.NewRegistry(eml.New(), plaintext.New()),
		processors,
		store.CorpusStore(),
		settings.Corpus,
	)
	pipelineService := services.NewPipelineService(corpusService, models.NewFactory(), *settings)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Pipeline: pipelineService,
		Corpus:   corpusService,
		Settings: settingsService,
	})
	return cli.Execute()
}
