// Package preprocessing provides the column-wise transformation stage:
// imputation, standard scaling and one-hot encoding, composed by
// ColumnTransformer.
package preprocessing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Imputation strategies.
const (
	StrategyMean         = "mean"
	StrategyMedian       = "median"
	StrategyMostFrequent = "most_frequent"
)

// Imputer fills missing values (NaN) in numeric columns with a statistic
// learned per column during Fit.
type Imputer struct {
	State *mlcore.StateManager

	// Strategy is one of "mean", "median" or "most_frequent".
	Strategy string

	// Statistics holds the learned fill value per column.
	Statistics []float64
}

// NewImputer creates an Imputer with the given strategy.
func NewImputer(strategy string) *Imputer {
	return &Imputer{State: mlcore.NewStateManager(), Strategy: strategy}
}

// Fit learns the per-column fill statistic from X. NaN cells are ignored;
// a column with no observed values learns 0.
func (im *Imputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("Imputer.Fit", "empty data", errors.ErrEmptyData)
	}

	switch im.Strategy {
	case StrategyMean, StrategyMedian, StrategyMostFrequent:
	default:
		return errors.NewValidationError("strategy", "must be mean, median or most_frequent", im.Strategy)
	}

	im.Statistics = make([]float64, c)
	for j := 0; j < c; j++ {
		observed := make([]float64, 0, r)
		for i := 0; i < r; i++ {
			if v := X.At(i, j); !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			im.Statistics[j] = 0
			continue
		}
		switch im.Strategy {
		case StrategyMean:
			im.Statistics[j] = mean(observed)
		case StrategyMedian:
			im.Statistics[j] = median(observed)
		case StrategyMostFrequent:
			im.Statistics[j] = mostFrequent(observed)
		}
	}

	im.State.SetFitted()
	im.State.SetDimensions(c, r)
	return nil
}

// Transform replaces NaN cells with the learned statistics.
func (im *Imputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !im.State.IsFitted() {
		return nil, errors.NewNotFittedError("Imputer", "Transform")
	}

	r, c := X.Dims()
	if c != len(im.Statistics) {
		return nil, errors.NewDimensionError("Imputer.Transform", len(im.Statistics), c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				v = im.Statistics[j]
			}
			result.Set(i, j, v)
		}
	}
	return result, nil
}

// FitTransform fits the imputer and transforms the same data.
func (im *Imputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := im.Fit(X); err != nil {
		return nil, err
	}
	return im.Transform(X)
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mostFrequent(xs []float64) float64 {
	counts := make(map[float64]int)
	for _, x := range xs {
		counts[x]++
	}
	best := xs[0]
	bestCount := 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best = v
			bestCount = n
		}
	}
	return best
}

// CategoryImputer fills missing cells in string columns with the most
// frequent value observed per column during Fit.
type CategoryImputer struct {
	State *mlcore.StateManager

	// Fill holds the learned replacement per column.
	Fill []string
}

// NewCategoryImputer creates a most-frequent imputer for string columns.
func NewCategoryImputer() *CategoryImputer {
	return &CategoryImputer{State: mlcore.NewStateManager()}
}

// Fit learns the most frequent value of each column. Ties break towards the
// lexicographically smaller value; a fully missing column learns "".
func (ci *CategoryImputer) Fit(columns [][]string) error {
	if len(columns) == 0 {
		return errors.NewModelError("CategoryImputer.Fit", "empty data", errors.ErrEmptyData)
	}

	ci.Fill = make([]string, len(columns))
	for j, col := range columns {
		counts := make(map[string]int)
		for _, v := range col {
			if v != "" {
				counts[v]++
			}
		}
		best := ""
		bestCount := 0
		for v, n := range counts {
			if n > bestCount || (n == bestCount && v < best) {
				best = v
				bestCount = n
			}
		}
		ci.Fill[j] = best
	}

	ci.State.SetFitted()
	return nil
}

// Transform replaces missing cells with the learned values.
func (ci *CategoryImputer) Transform(columns [][]string) ([][]string, error) {
	if !ci.State.IsFitted() {
		return nil, errors.NewNotFittedError("CategoryImputer", "Transform")
	}
	if len(columns) != len(ci.Fill) {
		return nil, errors.NewDimensionError("CategoryImputer.Transform", len(ci.Fill), len(columns), 1)
	}

	out := make([][]string, len(columns))
	for j, col := range columns {
		filled := make([]string, len(col))
		for i, v := range col {
			if v == "" {
				v = ci.Fill[j]
			}
			filled[i] = v
		}
		out[j] = filled
	}
	return out, nil
}
