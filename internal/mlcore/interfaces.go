// Package mlcore defines the estimator and transformer contracts shared by
// all preprocessing and model components, plus fitted-state tracking and
// model persistence.
package mlcore

import (
	"gonum.org/v1/gonum/mat"
)

// Classifier is the interface implemented by all candidate models.
type Classifier interface {
	// Fit trains the classifier on X (n_samples x n_features) and the
	// label column vector y (n_samples x 1).
	Fit(X, y mat.Matrix) error

	// Predict returns the predicted class label for each row of X.
	Predict(X mat.Matrix) (*mat.VecDense, error)

	// PredictProba returns per-class probability estimates
	// (n_samples x n_classes).
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Score returns the mean accuracy on the given data and labels.
	Score(X, y mat.Matrix) (float64, error)
}

// ParameterGetter is implemented by estimators that expose their
// hyperparameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// Persistable is implemented by components that can be saved to and loaded
// from a file.
type Persistable interface {
	Save(path string) error
	Load(path string) error
}
