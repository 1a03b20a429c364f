package pipeline

import (
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/ensemble"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/linearmodel"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/metrics"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/preprocessing"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

func init() {
	// Concrete classifier types stored behind the Classifier interface
	// must be known to gob for artifact round-trips.
	gob.Register(&linearmodel.LogisticRegression{})
	gob.Register(&ensemble.RandomForest{})
	gob.Register(&ensemble.DecisionTree{})
}

// Pipeline chains the shared preprocessing transformer with a candidate
// classifier. Once fitted it is treated as immutable and is the unit that
// gets serialized.
type Pipeline struct {
	State       *mlcore.StateManager
	Transformer *preprocessing.ColumnTransformer
	Estimator   mlcore.Classifier
}

// NewPipeline creates an unfitted pipeline.
func NewPipeline(transformer *preprocessing.ColumnTransformer, estimator mlcore.Classifier) *Pipeline {
	return &Pipeline{
		State:       mlcore.NewStateManager(),
		Transformer: transformer,
		Estimator:   estimator,
	}
}

func labelVector(y []float64) *mat.Dense {
	out := mat.NewDense(len(y), 1, nil)
	for i, v := range y {
		out.Set(i, 0, v)
	}
	return out
}

// Fit fits the transformer on the frame and then the classifier on the
// transformed matrix.
func (p *Pipeline) Fit(f *dataset.Frame, y []float64) error {
	if f.NumRows() != len(y) {
		return errors.NewDimensionError("Pipeline.Fit", f.NumRows(), len(y), 0)
	}

	X, err := p.Transformer.FitTransform(f)
	if err != nil {
		return err
	}
	if err := p.Estimator.Fit(X, labelVector(y)); err != nil {
		return err
	}

	r, c := X.Dims()
	p.State.SetFitted()
	p.State.SetDimensions(c, r)
	return nil
}

// Predict transforms the frame and returns the classifier's predictions.
func (p *Pipeline) Predict(f *dataset.Frame) (*mat.VecDense, error) {
	if !p.State.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	X, err := p.Transformer.Transform(f)
	if err != nil {
		return nil, err
	}
	return p.Estimator.Predict(X)
}

// PredictProba transforms the frame and returns per-class probabilities.
func (p *Pipeline) PredictProba(f *dataset.Frame) (mat.Matrix, error) {
	if !p.State.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "PredictProba")
	}
	X, err := p.Transformer.Transform(f)
	if err != nil {
		return nil, err
	}
	return p.Estimator.PredictProba(X)
}

// Score returns the mean accuracy of the pipeline on the given frame and
// labels.
func (p *Pipeline) Score(f *dataset.Frame, y []float64) (float64, error) {
	preds, err := p.Predict(f)
	if err != nil {
		return 0, err
	}
	yVec := mat.NewVecDense(len(y), append([]float64(nil), y...))
	return metrics.Accuracy(yVec, preds)
}

// Save writes the fitted pipeline to a binary artifact.
func (p *Pipeline) Save(path string) error {
	if !p.State.IsFitted() {
		return errors.NewNotFittedError("Pipeline", "Save")
	}
	return mlcore.SaveModel(p, path)
}

// Load reads a pipeline artifact previously written by Save.
func Load(path string) (*Pipeline, error) {
	var p Pipeline
	if err := mlcore.LoadModel(&p, path); err != nil {
		return nil, err
	}
	return &p, nil
}
