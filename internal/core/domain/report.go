package domain

import "time"

// ClassMetrics holds the evaluation scores of one class or summary row.
type ClassMetrics struct {
	Name      string  `json:"name"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// ClassificationReport holds per-class metrics plus summary rows.
type ClassificationReport struct {
	// Classes has one row per category, in category order.
	Classes []ClassMetrics `json:"classes"`

	// Accuracy is correct predictions over total predictions.
	Accuracy float64 `json:"accuracy"`

	// MacroAvg is the unweighted mean over classes.
	MacroAvg ClassMetrics `json:"macro_avg"`

	// WeightedAvg is the support-weighted mean over classes.
	WeightedAvg ClassMetrics `json:"weighted_avg"`

	// Total is the number of evaluated samples.
	Total int `json:"total"`
}

// RunOptions overrides settings for a single pipeline run.
// Nil fields fall back to the stored settings.
type RunOptions struct {
	TestSize *float64
	Seed     *int64
	Alpha    *float64
}

// RunResult is the output of one pipeline run.
type RunResult struct {
	RunID       string                `json:"run_id"`
	Categories  []string              `json:"categories"`
	TrainSize   int                   `json:"train_size"`
	TestSize    int                   `json:"test_size"`
	Vocabulary  []string              `json:"vocabulary"`
	Predictions []int                 `json:"predictions"`
	Actual      []int                 `json:"actual"`
	Accuracy    float64               `json:"accuracy"`
	Report      *ClassificationReport `json:"report"`
	Duration    time.Duration         `json:"duration"`
}
