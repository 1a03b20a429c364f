package preprocessing

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// OneHotEncoder expands string-valued columns into binary indicator
// columns, one per category observed during Fit.
//
// Output naming contract: a column named c with k observed categories
// (sorted lexicographically) expands into k columns named c0 .. c(k-1),
// where the index is the position of the category in the sorted
// vocabulary. Categories unseen during Fit transform to an all-zero block.
type OneHotEncoder struct {
	State *mlcore.StateManager

	// Columns holds the input column names in order.
	Columns []string

	// Categories holds, per input column, the sorted category vocabulary.
	Categories [][]string
}

// NewOneHotEncoder creates an encoder for the named columns.
func NewOneHotEncoder(columns []string) *OneHotEncoder {
	return &OneHotEncoder{
		State:   mlcore.NewStateManager(),
		Columns: append([]string(nil), columns...),
	}
}

// Fit learns the category vocabulary of each column. values[i] must hold
// the cells of Columns[i].
func (e *OneHotEncoder) Fit(values [][]string) error {
	if len(values) != len(e.Columns) {
		return errors.NewDimensionError("OneHotEncoder.Fit", len(e.Columns), len(values), 1)
	}

	e.Categories = make([][]string, len(values))
	for j, col := range values {
		seen := make(map[string]bool)
		for _, v := range col {
			if v != "" {
				seen[v] = true
			}
		}
		if len(seen) == 0 {
			return errors.NewModelError("OneHotEncoder.Fit", "no categories observed in column "+e.Columns[j], errors.ErrEmptyData)
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.Categories[j] = cats
	}

	e.State.SetFitted()
	return nil
}

// Transform expands the given columns into indicator columns.
func (e *OneHotEncoder) Transform(values [][]string) (*mat.Dense, error) {
	if !e.State.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(values) != len(e.Columns) {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", len(e.Columns), len(values), 1)
	}

	nRows := 0
	if len(values) > 0 {
		nRows = len(values[0])
	}
	nOut := 0
	for _, cats := range e.Categories {
		nOut += len(cats)
	}

	result := mat.NewDense(nRows, nOut, nil)
	offset := 0
	for j, col := range values {
		if len(col) != nRows {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", nRows, len(col), 0)
		}
		index := make(map[string]int, len(e.Categories[j]))
		for k, cat := range e.Categories[j] {
			index[cat] = k
		}
		for i, v := range col {
			if k, ok := index[v]; ok {
				result.Set(i, offset+k, 1)
			}
		}
		offset += len(e.Categories[j])
	}
	return result, nil
}

// FitTransform fits the encoder and transforms the same data.
func (e *OneHotEncoder) FitTransform(values [][]string) (*mat.Dense, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// FeatureNames returns the expanded output column names following the
// <column><category-index> contract.
func (e *OneHotEncoder) FeatureNames() ([]string, error) {
	if !e.State.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "FeatureNames")
	}
	var names []string
	for j, cats := range e.Categories {
		for k := range cats {
			names = append(names, e.Columns[j]+strconv.Itoa(k))
		}
	}
	return names, nil
}
