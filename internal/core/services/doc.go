// Package services implements the driving port interfaces.
// Services contain the pipeline logic and orchestrate
// calls to driven ports (adapters).
//
//   - CorpusService: fetch, cache and select the labelled corpus
//   - PipelineService: split, vectorise, train, predict and evaluate
//   - SettingsService: typed access to the TOML settings
package services
