package driving

import (
	"context"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// PipelineService runs the train/evaluate pipeline.
type PipelineService interface {
	// Run loads the corpus, splits it, fits the vectoriser and classifier on
	// the training partition and evaluates on the test partition.
	Run(ctx context.Context, opts domain.RunOptions) (*domain.RunResult, error)

	// Predict fits on the whole corpus and classifies each text.
	Predict(ctx context.Context, texts []string, opts domain.RunOptions) ([]domain.Prediction, error)
}
