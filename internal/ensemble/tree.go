// Package ensemble implements the tree-based candidate classifiers: a
// CART decision tree and a bootstrap-aggregated random forest.
package ensemble

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/metrics"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Split criteria.
const (
	CriterionGini    = "gini"
	CriterionEntropy = "entropy"
)

// TreeNode is a node of a fitted decision tree. Fields are exported for
// gob encoding.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64 // x <= Threshold goes left
	Left      *TreeNode
	Right     *TreeNode

	// Leaf payload
	Probas []float64 // class distribution aligned with DecisionTree.Classes
	Pred   int       // index into Classes of the majority class
}

// DecisionTree is a CART-style classifier with axis-aligned threshold
// splits.
type DecisionTree struct {
	State *mlcore.StateManager

	// Hyperparameters
	MaxDepth        int    // 0 means no depth limit
	MinSamplesSplit int    // minimum samples to attempt a split
	MinSamplesLeaf  int    // minimum samples required in each leaf
	Criterion       string // "gini" or "entropy"
	MaxFeatures     int    // 0 means consider all features per split
	Seed            int64

	// Learned state
	Root      *TreeNode
	Classes   []int
	NFeatures int

	rng *rand.Rand
}

// TreeOption configures a DecisionTree.
type TreeOption func(*DecisionTree)

// WithMaxDepth limits the tree depth; 0 disables the limit.
func WithMaxDepth(d int) TreeOption {
	return func(t *DecisionTree) { t.MaxDepth = d }
}

// WithMinSamplesSplit sets the minimum samples required to split a node.
func WithMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesSplit = n }
}

// WithMinSamplesLeaf sets the minimum samples required in each leaf.
func WithMinSamplesLeaf(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesLeaf = n }
}

// WithCriterion selects the impurity criterion, "gini" or "entropy".
func WithCriterion(c string) TreeOption {
	return func(t *DecisionTree) { t.Criterion = c }
}

// WithMaxFeatures limits how many features are considered per split; 0
// considers all.
func WithMaxFeatures(k int) TreeOption {
	return func(t *DecisionTree) { t.MaxFeatures = k }
}

// WithTreeSeed sets the seed used for feature subsampling.
func WithTreeSeed(seed int64) TreeOption {
	return func(t *DecisionTree) { t.Seed = seed }
}

// NewDecisionTree creates a tree with scikit-learn style defaults.
func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		State:           mlcore.NewStateManager(),
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       CriterionGini,
		Seed:            -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.Seed >= 0 {
		t.rng = rand.New(rand.NewSource(t.Seed))
	} else {
		t.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return t
}

// Fit builds the tree from X and the label column vector y.
func (t *DecisionTree) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("DecisionTree.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("DecisionTree.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("DecisionTree.Fit", "y must be a column vector")
	}
	if t.Criterion != CriterionGini && t.Criterion != CriterionEntropy {
		return errors.NewValidationError("criterion", "must be gini or entropy", t.Criterion)
	}

	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	// Materialize the data once; the recursion works on index slices.
	data := make([][]float64, nSamples)
	labels := make([]int, nSamples)
	for i := 0; i < nSamples; i++ {
		row := make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			row[j] = X.At(i, j)
		}
		data[i] = row
		labels[i] = int(y.At(i, 0))
	}

	classIndex := make(map[int]int)
	t.Classes = nil
	for _, lab := range labels {
		if _, ok := classIndex[lab]; !ok {
			classIndex[lab] = len(t.Classes)
			t.Classes = append(t.Classes, lab)
		}
	}
	sort.Ints(t.Classes)
	for i, c := range t.Classes {
		classIndex[c] = i
	}

	t.NFeatures = nFeatures

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	t.Root = t.build(data, labels, classIndex, indices, 0)

	t.State.SetFitted()
	t.State.SetDimensions(nFeatures, nSamples)
	return nil
}

func (t *DecisionTree) build(data [][]float64, labels []int, classIndex map[int]int, indices []int, depth int) *TreeNode {
	counts := make([]float64, len(t.Classes))
	for _, idx := range indices {
		counts[classIndex[labels[idx]]]++
	}

	leaf := t.makeLeaf(counts, len(indices))

	if len(indices) < t.MinSamplesSplit {
		return leaf
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return leaf
	}
	if isPure(counts) {
		return leaf
	}

	feature, threshold, gain := t.bestSplit(data, labels, classIndex, indices)
	if gain <= 0 {
		return leaf
	}

	var left, right []int
	for _, idx := range indices {
		if data[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) < t.MinSamplesLeaf || len(right) < t.MinSamplesLeaf {
		return leaf
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.build(data, labels, classIndex, left, depth+1),
		Right:     t.build(data, labels, classIndex, right, depth+1),
	}
}

func (t *DecisionTree) makeLeaf(counts []float64, n int) *TreeNode {
	probas := make([]float64, len(counts))
	pred := 0
	for i, c := range counts {
		probas[i] = c / float64(n)
		if c > counts[pred] {
			pred = i
		}
	}
	return &TreeNode{Leaf: true, Probas: probas, Pred: pred}
}

func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// bestSplit finds the feature/threshold pair with the largest impurity
// decrease over the given rows. NaN cells are routed right by the <=
// comparison and never produce candidate thresholds.
func (t *DecisionTree) bestSplit(data [][]float64, labels []int, classIndex map[int]int, indices []int) (int, float64, float64) {
	features := t.candidateFeatures()

	parentCounts := make([]float64, len(t.Classes))
	for _, idx := range indices {
		parentCounts[classIndex[labels[idx]]]++
	}
	parentImpurity := t.impurity(parentCounts, len(indices))

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0

	for _, j := range features {
		values := make([]float64, 0, len(indices))
		for _, idx := range indices {
			if v := data[idx][j]; !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if len(values) < 2 {
			continue
		}
		sort.Float64s(values)

		for k := 0; k < len(values)-1; k++ {
			if values[k] == values[k+1] {
				continue
			}
			threshold := (values[k] + values[k+1]) / 2

			leftCounts := make([]float64, len(t.Classes))
			rightCounts := make([]float64, len(t.Classes))
			nLeft, nRight := 0, 0
			for _, idx := range indices {
				if data[idx][j] <= threshold {
					leftCounts[classIndex[labels[idx]]]++
					nLeft++
				} else {
					rightCounts[classIndex[labels[idx]]]++
					nRight++
				}
			}
			if nLeft == 0 || nRight == 0 {
				continue
			}

			n := float64(len(indices))
			childImpurity := float64(nLeft)/n*t.impurity(leftCounts, nLeft) +
				float64(nRight)/n*t.impurity(rightCounts, nRight)
			gain := parentImpurity - childImpurity
			if gain > bestGain {
				bestFeature, bestThreshold, bestGain = j, threshold, gain
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

func (t *DecisionTree) candidateFeatures() []int {
	all := make([]int, t.NFeatures)
	for i := range all {
		all[i] = i
	}
	if t.MaxFeatures <= 0 || t.MaxFeatures >= t.NFeatures {
		return all
	}
	t.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	subset := all[:t.MaxFeatures]
	sort.Ints(subset)
	return subset
}

func (t *DecisionTree) impurity(counts []float64, n int) float64 {
	total := float64(n)
	switch t.Criterion {
	case CriterionEntropy:
		entropy := 0.0
		for _, c := range counts {
			if c == 0 {
				continue
			}
			p := c / total
			entropy -= p * math.Log2(p)
		}
		return entropy
	default: // gini
		gini := 1.0
		for _, c := range counts {
			p := c / total
			gini -= p * p
		}
		return gini
	}
}

// PredictProba returns the class distribution of the leaf each sample
// falls into (n_samples x n_classes, columns ordered by Classes).
func (t *DecisionTree) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !t.State.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTree", "PredictProba")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != t.NFeatures {
		return nil, errors.NewDimensionError("DecisionTree.PredictProba", t.NFeatures, nFeatures, 1)
	}

	probs := mat.NewDense(nSamples, len(t.Classes), nil)
	for i := 0; i < nSamples; i++ {
		node := t.Root
		for !node.Leaf {
			if X.At(i, node.Feature) <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		for k, p := range node.Probas {
			probs.Set(i, k, p)
		}
	}
	return probs, nil
}

// Predict returns the majority class label of the leaf each sample falls
// into.
func (t *DecisionTree) Predict(X mat.Matrix) (*mat.VecDense, error) {
	probs, err := t.PredictProba(X)
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
		preds.SetVec(i, float64(t.Classes[best]))
	}
	return preds, nil
}

// Score returns the mean accuracy on the given data and labels.
func (t *DecisionTree) Score(X, y mat.Matrix) (float64, error) {
	preds, err := t.Predict(X)
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

// GetParams returns the tree's hyperparameters.
func (t *DecisionTree) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"max_depth":         t.MaxDepth,
		"min_samples_split": t.MinSamplesSplit,
		"min_samples_leaf":  t.MinSamplesLeaf,
		"criterion":         t.Criterion,
		"max_features":      t.MaxFeatures,
	}
}
