package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// ColumnTransformer applies a distinct transformation strategy to each of
// three disjoint column groups and concatenates the results:
//
//   - numeric: mean imputation followed by standard scaling
//   - ordinal: most-frequent imputation, passed through unscaled
//   - categorical: most-frequent imputation followed by one-hot encoding
//
// Output column order is numeric, ordinal, then the one-hot expansion.
type ColumnTransformer struct {
	State *mlcore.StateManager

	Numeric     []string
	Ordinal     []string
	Categorical []string

	NumImputer *Imputer
	Scaler     *StandardScaler
	OrdImputer *Imputer
	CatImputer *CategoryImputer
	Encoder    *OneHotEncoder
}

// NewColumnTransformer creates a transformer for the given column groups.
func NewColumnTransformer(numeric, ordinal, categorical []string) *ColumnTransformer {
	return &ColumnTransformer{
		State:       mlcore.NewStateManager(),
		Numeric:     append([]string(nil), numeric...),
		Ordinal:     append([]string(nil), ordinal...),
		Categorical: append([]string(nil), categorical...),
		NumImputer:  NewImputer(StrategyMean),
		Scaler:      NewStandardScalerDefault(),
		OrdImputer:  NewImputer(StrategyMostFrequent),
		CatImputer:  NewCategoryImputer(),
		Encoder:     NewOneHotEncoder(categorical),
	}
}

// Fit learns the imputation statistics, scaling parameters and category
// vocabularies from the frame. All configured columns must be present.
func (ct *ColumnTransformer) Fit(f *dataset.Frame) error {
	if err := ct.checkColumns(f); err != nil {
		return err
	}

	if len(ct.Numeric) > 0 {
		X, err := numericGroup(f, ct.Numeric)
		if err != nil {
			return err
		}
		imputed, err := ct.NumImputer.FitTransform(X)
		if err != nil {
			return err
		}
		if err := ct.Scaler.Fit(imputed); err != nil {
			return err
		}
	}

	if len(ct.Ordinal) > 0 {
		X, err := numericGroup(f, ct.Ordinal)
		if err != nil {
			return err
		}
		if err := ct.OrdImputer.Fit(X); err != nil {
			return err
		}
	}

	if len(ct.Categorical) > 0 {
		cols, err := stringGroup(f, ct.Categorical)
		if err != nil {
			return err
		}
		if err := ct.CatImputer.Fit(cols); err != nil {
			return err
		}
		filled, err := ct.CatImputer.Transform(cols)
		if err != nil {
			return err
		}
		if err := ct.Encoder.Fit(filled); err != nil {
			return err
		}
	}

	ct.State.SetFitted()
	ct.State.SetDimensions(len(ct.Numeric)+len(ct.Ordinal)+len(ct.Categorical), f.NumRows())
	return nil
}

// Transform applies the learned transformations and concatenates the
// groups into a single dense matrix. The row count is preserved.
func (ct *ColumnTransformer) Transform(f *dataset.Frame) (*mat.Dense, error) {
	if !ct.State.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "Transform")
	}
	if err := ct.checkColumns(f); err != nil {
		return nil, err
	}

	nRows := f.NumRows()
	var blocks []mat.Matrix

	if len(ct.Numeric) > 0 {
		X, err := numericGroup(f, ct.Numeric)
		if err != nil {
			return nil, err
		}
		imputed, err := ct.NumImputer.Transform(X)
		if err != nil {
			return nil, err
		}
		scaled, err := ct.Scaler.Transform(imputed)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, scaled)
	}

	if len(ct.Ordinal) > 0 {
		X, err := numericGroup(f, ct.Ordinal)
		if err != nil {
			return nil, err
		}
		imputed, err := ct.OrdImputer.Transform(X)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, imputed)
	}

	if len(ct.Categorical) > 0 {
		cols, err := stringGroup(f, ct.Categorical)
		if err != nil {
			return nil, err
		}
		filled, err := ct.CatImputer.Transform(cols)
		if err != nil {
			return nil, err
		}
		encoded, err := ct.Encoder.Transform(filled)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, encoded)
	}

	if len(blocks) == 0 {
		return nil, errors.NewModelError("ColumnTransformer.Transform", "no column groups configured", errors.ErrEmptyData)
	}

	nOut := 0
	for _, b := range blocks {
		_, c := b.Dims()
		nOut += c
	}

	result := mat.NewDense(nRows, nOut, nil)
	offset := 0
	for _, b := range blocks {
		r, c := b.Dims()
		if r != nRows {
			return nil, errors.NewDimensionError("ColumnTransformer.Transform", nRows, r, 0)
		}
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, offset+j, b.At(i, j))
			}
		}
		offset += c
	}
	return result, nil
}

// FitTransform fits the transformer and transforms the same frame.
func (ct *ColumnTransformer) FitTransform(f *dataset.Frame) (*mat.Dense, error) {
	if err := ct.Fit(f); err != nil {
		return nil, err
	}
	return ct.Transform(f)
}

// FeatureNames returns the output column names: numeric and ordinal
// columns keep their names, categorical columns follow the one-hot naming
// contract.
func (ct *ColumnTransformer) FeatureNames() ([]string, error) {
	if !ct.State.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "FeatureNames")
	}
	names := make([]string, 0, len(ct.Numeric)+len(ct.Ordinal))
	names = append(names, ct.Numeric...)
	names = append(names, ct.Ordinal...)
	if len(ct.Categorical) > 0 {
		expanded, err := ct.Encoder.FeatureNames()
		if err != nil {
			return nil, err
		}
		names = append(names, expanded...)
	}
	return names, nil
}

func (ct *ColumnTransformer) checkColumns(f *dataset.Frame) error {
	for _, group := range [][]string{ct.Numeric, ct.Ordinal, ct.Categorical} {
		for _, name := range group {
			if !f.Has(name) {
				return errors.NewMissingColumnError("ColumnTransformer", name)
			}
		}
	}
	return nil
}

// numericGroup extracts the named columns as a dense matrix with NaN
// marking missing cells.
func numericGroup(f *dataset.Frame, cols []string) (*mat.Dense, error) {
	X := mat.NewDense(f.NumRows(), len(cols), nil)
	for j, name := range cols {
		vals, err := f.Float(name)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			X.Set(i, j, v)
		}
	}
	return X, nil
}

// stringGroup extracts the named columns as raw string slices, normalizing
// missing tokens to "".
func stringGroup(f *dataset.Frame, cols []string) ([][]string, error) {
	out := make([][]string, len(cols))
	for j, name := range cols {
		vals, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		normalized := make([]string, len(vals))
		for i, v := range vals {
			if v == "NA" || v == "NaN" {
				v = ""
			}
			normalized[i] = v
		}
		out[j] = normalized
	}
	return out, nil
}
