package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driving"
	"github.com/custodia-labs/newsbayes/internal/logger"
	"github.com/custodia-labs/newsbayes/internal/metrics"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService runs load, split, vectorise, train and evaluate.
type PipelineService struct {
	corpus   driving.CorpusService
	models   driven.ModelFactory
	settings domain.Settings
	now      func() time.Time
}

// NewPipelineService creates a pipeline service.
func NewPipelineService(
	corpus driving.CorpusService,
	models driven.ModelFactory,
	settings domain.Settings,
) *PipelineService {
	return &PipelineService{
		corpus:   corpus,
		models:   models,
		settings: settings,
		now:      time.Now,
	}
}

// Run trains on a random split of the corpus and evaluates on the held-out part.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (s *PipelineService) Run(ctx context.Context, opts domain.RunOptions) (*domain.RunResult, error) {
	start := s.now()

	settings, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger.Info("run %s: test_size=%v alpha=%v", runID, settings.Split.TestSize, settings.Classifier.Alpha)

	// 1. LOAD
	corpus, err := s.corpus.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	// 2. SPLIT
	done := logger.Stage("Split")
	train, test, err := Split(corpus.Documents, settings.Split.TestSize, NewRand(settings.Split.Seed))
	done()
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	logger.Info("train %d documents, test %d documents", len(train), len(test))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. VECTORISE
	done = logger.Stage("Vectorise")
	vectorizer, release, err := s.models.NewVectorizer(settings.Vectorizer)
	if err != nil {
		done()
		return nil, fmt.Errorf("create vectorizer: %w", err)
	}
	defer release()

	xTrain, err := vectorizer.FitTransform(domain.Texts(train))
	if err != nil {
		done()
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	xTest, err := vectorizer.Transform(domain.Texts(test))
	done()
	if err != nil {
		return nil, fmt.Errorf("transform test set: %w", err)
	}
	vocabulary := vectorizer.Vocabulary()
	logger.Info("vocabulary has %d terms", vocabulary.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. TRAIN
	done = logger.Stage("Train")
	classifier, err := s.models.NewClassifier(settings.Classifier)
	if err != nil {
		done()
		return nil, fmt.Errorf("create classifier: %w", err)
	}
	err = classifier.Fit(xTrain, domain.Labels(train))
	done()
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	// 5. PREDICT
	done = logger.Stage("Predict")
	predictions, err := classifier.Predict(xTest)
	done()
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	// 6. EVALUATE
	done = logger.Stage("Evaluate")
	defer done()
	actual := domain.Labels(test)
	accuracy, err := metrics.Accuracy(actual, predictions)
	if err != nil {
		return nil, fmt.Errorf("accuracy: %w", err)
	}
	report, err := metrics.Evaluate(actual, predictions, corpus.Categories)
	if err != nil {
		return nil, fmt.Errorf("classification report: %w", err)
	}
	logger.Info("accuracy %.4f", accuracy)

	return &domain.RunResult{
		RunID:       runID,
		Categories:  corpus.Categories,
		TrainSize:   len(train),
		TestSize:    len(test),
		Vocabulary:  vocabulary.Terms(),
		Predictions: predictions,
		Actual:      actual,
		Accuracy:    accuracy,
		Report:      report,
		Duration:    s.now().Sub(start),
	}, nil
}

// Predict trains on the whole corpus and classifies each text.
func (s *PipelineService) Predict(ctx context.Context, texts []string, opts domain.RunOptions) ([]domain.Prediction, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to classify", domain.ErrInvalidInput)
	}

	settings, err := s.resolve(opts)
	if err != nil {
		return nil, err
	}

	corpus, err := s.corpus.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	done := logger.Stage("Train on full corpus")
	vectorizer, release, err := s.models.NewVectorizer(settings.Vectorizer)
	if err != nil {
		done()
		return nil, fmt.Errorf("create vectorizer: %w", err)
	}
	defer release()

	x, err := vectorizer.FitTransform(corpus.Texts())
	if err != nil {
		done()
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	classifier, err := s.models.NewClassifier(settings.Classifier)
	if err != nil {
		done()
		return nil, fmt.Errorf("create classifier: %w", err)
	}
	err = classifier.Fit(x, corpus.Labels())
	done()
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	xNew, err := vectorizer.Transform(texts)
	if err != nil {
		return nil, fmt.Errorf("transform texts: %w", err)
	}
	labels, err := classifier.Predict(xNew)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	proba, err := classifier.PredictProba(xNew)
	if err != nil {
		return nil, fmt.Errorf("predict probabilities: %w", err)
	}

	classes := classifier.Classes()
	predictions := make([]domain.Prediction, len(texts))
	for i, label := range labels {
		probabilities := make([]float64, len(corpus.Categories))
		for j, class := range classes {
			probabilities[class] = proba[i][j]
		}
		predictions[i] = domain.Prediction{
			Label:         label,
			Category:      corpus.Categories[label],
			Probabilities: probabilities,
		}
	}
	return predictions, nil
}

// resolve applies per-run overrides to the configured settings.
func (s *PipelineService) resolve(opts domain.RunOptions) (domain.Settings, error) {
	settings := s.settings
	if opts.TestSize != nil {
		settings.Split.TestSize = *opts.TestSize
	}
	if opts.Seed != nil {
		seed := *opts.Seed
		settings.Split.Seed = &seed
	}
	if opts.Alpha != nil {
		settings.Classifier.Alpha = *opts.Alpha
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
