// Package linearmodel implements the logistic regression candidate
// classifier.
package linearmodel

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/metrics"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// LogisticRegression is a binary classifier trained with gradient descent
// and L2 regularization. Learned parameters are exported for gob encoding.
type LogisticRegression struct {
	State *mlcore.StateManager

	// Hyperparameters
	C            float64 // inverse regularization strength
	MaxIter      int
	Tol          float64
	FitIntercept bool
	Seed         int64

	// Learned parameters
	Coef      []float64
	Intercept float64
	Classes   []int
	NFeatures int
	NIter     int

	rng *rand.Rand
}

// Option configures a LogisticRegression.
type Option func(*LogisticRegression)

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(lr *LogisticRegression) { lr.C = c }
}

// WithMaxIter sets the maximum number of gradient descent iterations.
func WithMaxIter(n int) Option {
	return func(lr *LogisticRegression) { lr.MaxIter = n }
}

// WithTol sets the gradient-norm stopping tolerance.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) { lr.Tol = tol }
}

// WithFitIntercept controls whether an intercept term is fitted.
func WithFitIntercept(fit bool) Option {
	return func(lr *LogisticRegression) { lr.FitIntercept = fit }
}

// WithSeed sets the random seed used for weight initialization.
func WithSeed(seed int64) Option {
	return func(lr *LogisticRegression) { lr.Seed = seed }
}

// NewLogisticRegression creates a classifier with scikit-learn style
// defaults.
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		State:        mlcore.NewStateManager(),
		C:            1.0,
		MaxIter:      100,
		Tol:          1e-4,
		FitIntercept: true,
		Seed:         -1,
	}
	for _, opt := range opts {
		opt(lr)
	}
	if lr.Seed >= 0 {
		lr.rng = rand.New(rand.NewSource(lr.Seed))
	} else {
		lr.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return lr
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Fit trains the classifier on X and the binary label column vector y.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}

	lr.extractClasses(y)
	if len(lr.Classes) != 2 {
		return errors.NewValueError("LogisticRegression.Fit", "expected exactly 2 classes")
	}
	lr.NFeatures = nFeatures

	if lr.rng == nil {
		lr.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	// Small random init keeps the first iterations off the saddle point.
	lr.Coef = make([]float64, nFeatures)
	for j := range lr.Coef {
		lr.Coef[j] = lr.rng.NormFloat64() * 0.01
	}
	lr.Intercept = 0

	// Labels as 0/1 relative to the positive class.
	yBinary := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if int(y.At(i, 0)) == lr.Classes[1] {
			yBinary[i] = 1.0
		}
	}

	baseLearningRate := 1.0
	converged := false

	for iter := 0; iter < lr.MaxIter; iter++ {
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.Intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.Coef[j]
			}
			residual := sigmoid(z) - yBinary[i]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		// L2 regularization gradient.
		lambda := 1.0 / lr.C
		for j := range lr.Coef {
			gradWeights[j] += lambda * lr.Coef[j] / float64(nSamples)
		}

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		for j := range lr.Coef {
			lr.Coef[j] -= learningRate * gradWeights[j]
		}
		if lr.FitIntercept {
			lr.Intercept -= learningRate * gradIntercept
		}

		lr.NIter = iter + 1

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.Tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.NIter, ""))
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(nFeatures, nSamples)
	return nil
}

func (lr *LogisticRegression) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	seen := make(map[int]bool)
	lr.Classes = nil
	for i := 0; i < rows; i++ {
		label := int(y.At(i, 0))
		if !seen[label] {
			seen[label] = true
			lr.Classes = append(lr.Classes, label)
		}
	}
	for i := 0; i < len(lr.Classes)-1; i++ {
		for j := i + 1; j < len(lr.Classes); j++ {
			if lr.Classes[i] > lr.Classes[j] {
				lr.Classes[i], lr.Classes[j] = lr.Classes[j], lr.Classes[i]
			}
		}
	}
}

// DecisionFunction returns the linear score of each sample.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (*mat.VecDense, error) {
	if !lr.State.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "DecisionFunction")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.NFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.DecisionFunction", lr.NFeatures, nFeatures, 1)
	}

	scores := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		z := lr.Intercept
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * lr.Coef[j]
		}
		scores.SetVec(i, z)
	}
	return scores, nil
}

// PredictProba returns class membership probabilities
// (n_samples x 2, columns ordered by Classes).
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	scores, err := lr.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	n := scores.Len()
	probs := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		p := sigmoid(scores.AtVec(i))
		probs.Set(i, 0, 1-p)
		probs.Set(i, 1, p)
	}
	return probs, nil
}

// Predict returns the predicted class label of each sample.
func (lr *LogisticRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	scores, err := lr.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	n := scores.Len()
	preds := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if sigmoid(scores.AtVec(i)) >= 0.5 {
			preds.SetVec(i, float64(lr.Classes[1]))
		} else {
			preds.SetVec(i, float64(lr.Classes[0]))
		}
	}
	return preds, nil
}

// Score returns the mean accuracy on the given data and labels.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	preds, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	rows, _ := y.Dims()
	yVec := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}
	return metrics.Accuracy(yVec, preds)
}

// GetParams returns the classifier's hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"C":             lr.C,
		"max_iter":      lr.MaxIter,
		"tol":           lr.Tol,
		"fit_intercept": lr.FitIntercept,
	}
}
