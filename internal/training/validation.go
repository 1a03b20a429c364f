package training

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/config"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/metrics"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/pipeline"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
	mllog "github.com/santiagoprado12/ML-e2e-challenge/pkg/log"
)

// Validation holds the scores of a persisted pipeline on held-back data.
type Validation struct {
	Accuracy  float64
	Confusion *mat.Dense
	Report    string
}

// Validator scores the registered pipeline against the validation set and
// writes the validation report.
type Validator struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewValidator creates a validator using the default slog logger.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg, logger: slog.Default()}
}

// Run loads the persisted pipeline, predicts the validation set and writes
// a markdown report with the confusion matrix alongside its heatmap.
func (v *Validator) Run() (*Validation, error) {
	p, err := pipeline.Load(v.cfg.Paths.Model)
	if err != nil {
		return nil, err
	}

	X, y, err := dataset.LoadTitanic(v.cfg.Paths.ValidationData, v.cfg.Target)
	if err != nil {
		return nil, err
	}
	v.logger.Info("validation data loaded",
		slog.String(mllog.PhaseKey, "validation"),
		slog.Int(mllog.SamplesKey, X.NumRows()))

	pred, err := p.Predict(X)
	if err != nil {
		return nil, err
	}
	truth := mat.NewVecDense(len(y), y)

	accuracy, err := metrics.Accuracy(truth, pred)
	if err != nil {
		return nil, err
	}
	confusion, err := metrics.ConfusionMatrix(truth, pred)
	if err != nil {
		return nil, err
	}
	report, err := metrics.Report(truth, pred, [2]string{"Dead", "Survive"})
	if err != nil {
		return nil, err
	}

	if v.cfg.Paths.Report != "" {
		if err := WriteReport(v.cfg.Paths.Report, accuracy, confusion, report); err != nil {
			return nil, errors.Wrap(err, "writing validation report")
		}
	}

	v.logger.Info("validation finished",
		slog.String(mllog.PhaseKey, "validation"),
		slog.Float64(mllog.AccuracyKey, accuracy))
	return &Validation{Accuracy: accuracy, Confusion: confusion, Report: report}, nil
}
