package training

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/config"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/pipeline"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
	mllog "github.com/santiagoprado12/ML-e2e-challenge/pkg/log"
)

// Result describes the outcome of a training run.
type Result struct {
	Model      string
	Params     map[string]interface{}
	Accuracy   float64
	Registered bool
	Artifact   string
}

// Trainer fits every requested candidate pipeline, scores it on held-out
// data and persists the winner.
type Trainer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewTrainer creates a trainer using the default slog logger.
func NewTrainer(cfg *config.Config) *Trainer {
	return &Trainer{cfg: cfg, logger: slog.Default()}
}

// Run trains the named models. threshold, when non-nil, is the minimum
// held-out accuracy the winner must reach to be registered; a winner
// below it is discarded. All grid assignments of each model are tried and
// the overall best pipeline by accuracy wins.
func (t *Trainer) Run(models []string, threshold *float64) (*Result, error) {
	for _, name := range models {
		if _, ok := t.cfg.ModelByName(name); !ok {
			return nil, errors.Wrap(errors.ErrUnknownModel, name)
		}
	}
	if len(models) == 0 {
		return nil, errors.NewValidationError("models", "at least one model is required", models)
	}

	X, y, err := dataset.LoadTitanic(t.cfg.Paths.TrainData, t.cfg.Target)
	if err != nil {
		return nil, err
	}
	t.logger.Info("training data loaded",
		slog.String(mllog.PhaseKey, "training"),
		slog.Int(mllog.SamplesKey, X.NumRows()),
		slog.Int(mllog.FeaturesKey, X.NumColumns()))

	trainX, testX, trainY, testY, err := TrainTestSplit(X, y, t.cfg.Split.TestSize, t.cfg.Split.Seed)
	if err != nil {
		return nil, err
	}

	builder := pipeline.NewBuilder(
		t.cfg.Features.Numeric,
		t.cfg.Features.Ordinal,
		t.cfg.Features.Categorical,
	)

	var best *Result
	var bestPipeline *pipeline.Pipeline

	for _, name := range models {
		spec, _ := t.cfg.ModelByName(name)
		for _, assignment := range pipeline.Grid(spec.Params) {
			estimator, err := pipeline.NewEstimator(name, assignment)
			if err != nil {
				return nil, err
			}
			candidate := pipeline.NewPipeline(builder.BuildColumnTransformer(), estimator)

			start := time.Now()
			if err := candidate.Fit(trainX, trainY); err != nil {
				return nil, errors.Wrapf(err, "fitting %s", name)
			}
			accuracy, err := candidate.Score(testX, testY)
			if err != nil {
				return nil, errors.Wrapf(err, "scoring %s", name)
			}

			t.logger.Info("candidate scored",
				slog.String(mllog.ModelNameKey, name),
				slog.String(mllog.OperationKey, "fit"),
				slog.Any("params", assignment),
				slog.Float64(mllog.AccuracyKey, accuracy),
				slog.Duration(mllog.DurationKey, time.Since(start)))

			if best == nil || accuracy > best.Accuracy {
				best = &Result{Model: name, Params: assignment, Accuracy: accuracy}
				bestPipeline = candidate
			}
		}
	}

	if threshold != nil && best.Accuracy < *threshold {
		t.logger.Warn("best model below accuracy threshold, not registered",
			slog.String(mllog.ModelNameKey, best.Model),
			slog.Float64(mllog.AccuracyKey, best.Accuracy),
			slog.Float64("threshold", *threshold))
		return best, nil
	}

	if dir := filepath.Dir(t.cfg.Paths.Model); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating artifact directory %s", dir)
		}
	}
	if err := bestPipeline.Save(t.cfg.Paths.Model); err != nil {
		return nil, err
	}
	best.Registered = true
	best.Artifact = t.cfg.Paths.Model

	t.logger.Info("model registered",
		slog.String(mllog.ModelNameKey, best.Model),
		slog.Float64(mllog.AccuracyKey, best.Accuracy),
		slog.String("artifact", best.Artifact))
	return best, nil
}
