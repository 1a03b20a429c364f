package ensemble

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/metrics"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// RandomForest is a bootstrap aggregation of decision trees. Trees are
// fitted concurrently, each with its own seeded RNG, and predictions
// average the per-tree class distributions.
type RandomForest struct {
	State *mlcore.StateManager

	// Hyperparameters
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 means all features per split
	Bootstrap       bool
	Seed            int64

	// Learned state
	Trees     []*DecisionTree
	Classes   []int
	NFeatures int
}

// ForestOption configures a RandomForest.
type ForestOption func(*RandomForest)

// WithNEstimators sets the number of trees.
func WithNEstimators(n int) ForestOption {
	return func(rf *RandomForest) { rf.NEstimators = n }
}

// WithForestMaxDepth limits the depth of each tree; 0 disables the limit.
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}

// WithForestMinSamplesSplit sets the per-tree minimum samples to split.
func WithForestMinSamplesSplit(n int) ForestOption {
	return func(rf *RandomForest) { rf.MinSamplesSplit = n }
}

// WithForestMaxFeatures limits features considered per split; 0 considers
// all.
func WithForestMaxFeatures(k int) ForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}

// WithBootstrap toggles bootstrap sampling of training rows.
func WithBootstrap(b bool) ForestOption {
	return func(rf *RandomForest) { rf.Bootstrap = b }
}

// WithForestSeed sets the base seed; tree i uses Seed+i.
func WithForestSeed(seed int64) ForestOption {
	return func(rf *RandomForest) { rf.Seed = seed }
}

// NewRandomForest creates a forest with scikit-learn style defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		State:           mlcore.NewStateManager(),
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
		Seed:            -1,
	}
	for _, opt := range opts {
		opt(rf)
	}
	if rf.Seed < 0 {
		rf.Seed = rand.Int63()
	}
	return rf
}

// Fit trains the forest on X and the label column vector y.
func (rf *RandomForest) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("RandomForest.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("RandomForest.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("RandomForest.Fit", "y must be a column vector")
	}
	if rf.NEstimators <= 0 {
		return errors.NewValidationError("n_estimators", "must be positive", rf.NEstimators)
	}

	rf.NFeatures = nFeatures
	rf.Trees = make([]*DecisionTree, rf.NEstimators)

	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Each tree owns its RNG to avoid contention across goroutines.
			treeRand := rand.New(rand.NewSource(rf.Seed + int64(idx)))

			rowIdx := make([]int, nSamples)
			for j := 0; j < nSamples; j++ {
				if rf.Bootstrap {
					rowIdx[j] = treeRand.Intn(nSamples)
				} else {
					rowIdx[j] = j
				}
			}

			XSample := mat.NewDense(nSamples, nFeatures, nil)
			ySample := mat.NewDense(nSamples, 1, nil)
			for r, src := range rowIdx {
				for c := 0; c < nFeatures; c++ {
					XSample.Set(r, c, X.At(src, c))
				}
				ySample.Set(r, 0, y.At(src, 0))
			}

			tree := NewDecisionTree(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(rf.MaxFeatures),
				WithTreeSeed(rf.Seed+int64(idx)),
			)
			if err := tree.Fit(XSample, ySample); err != nil {
				errCh <- errors.Wrapf(err, "tree %d", idx)
				return
			}
			rf.Trees[idx] = tree
		}(i)
	}

	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return err
	}

	// All trees see bootstrap samples of the same rows, so the class set
	// of the full label vector is authoritative.
	seen := make(map[int]bool)
	rf.Classes = nil
	for i := 0; i < nSamples; i++ {
		label := int(y.At(i, 0))
		if !seen[label] {
			seen[label] = true
			rf.Classes = append(rf.Classes, label)
		}
	}
	sortInts(rf.Classes)

	rf.State.SetFitted()
	rf.State.SetDimensions(nFeatures, nSamples)
	return nil
}

func sortInts(xs []int) {
	for i := 0; i < len(xs)-1; i++ {
		for j := i + 1; j < len(xs); j++ {
			if xs[i] > xs[j] {
				xs[i], xs[j] = xs[j], xs[i]
			}
		}
	}
}

// PredictProba averages the class distributions of all trees. Tree class
// vocabularies are mapped onto the forest's class order.
func (rf *RandomForest) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !rf.State.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForest", "PredictProba")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != rf.NFeatures {
		return nil, errors.NewDimensionError("RandomForest.PredictProba", rf.NFeatures, nFeatures, 1)
	}

	classPos := make(map[int]int, len(rf.Classes))
	for k, c := range rf.Classes {
		classPos[c] = k
	}

	sum := mat.NewDense(nSamples, len(rf.Classes), nil)
	for _, tree := range rf.Trees {
		probs, err := tree.PredictProba(X)
		if err != nil {
			return nil, err
		}
		for i := 0; i < nSamples; i++ {
			for k, c := range tree.Classes {
				pos := classPos[c]
				sum.Set(i, pos, sum.At(i, pos)+probs.At(i, k))
			}
		}
	}

	scale := 1.0 / float64(len(rf.Trees))
	sum.Scale(scale, sum)
	return sum, nil
}

// Predict returns the class with the highest averaged probability.
func (rf *RandomForest) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := rf.PredictProba(X)
	if err != nil {
		return nil, err
	}
	nSamples, nClasses := probs.Dims()
	preds := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		best := 0
		for k := 1; k < nClasses; k++ {
			if probs.At(i, k) > probs.At(i, best) {
				best = k
			}
		}
		preds.SetVec(i, float64(rf.Classes[best]))
	}
	return preds, nil
}

// Score returns the mean accuracy on the given data and labels.
func (rf *RandomForest) Score(X, y mat.Matrix) (float64, error) {
	preds, err := rf.Predict(X)
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

// GetParams returns the forest's hyperparameters.
func (rf *RandomForest) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      rf.NEstimators,
		"max_depth":         rf.MaxDepth,
		"min_samples_split": rf.MinSamplesSplit,
		"max_features":      rf.MaxFeatures,
		"bootstrap":         rf.Bootstrap,
	}
}
