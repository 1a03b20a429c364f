package pipeline

import (
	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/preprocessing"
)

// Entry is a model registry entry handed to the builder: a registry name
// and a hyperparameter grid.
type Entry struct {
	Name   string
	Params map[string][]interface{}
}

// Builder constructs preprocessing transformers and model pipelines from
// the configured feature groups.
type Builder struct {
	Numeric     []string
	Ordinal     []string
	Categorical []string
}

// NewBuilder creates a builder for the given column groups.
func NewBuilder(numeric, ordinal, categorical []string) *Builder {
	return &Builder{
		Numeric:     append([]string(nil), numeric...),
		Ordinal:     append([]string(nil), ordinal...),
		Categorical: append([]string(nil), categorical...),
	}
}

// BuildColumnTransformer returns a fresh, unfitted column transformer for
// the builder's groups.
func (b *Builder) BuildColumnTransformer() *preprocessing.ColumnTransformer {
	return preprocessing.NewColumnTransformer(b.Numeric, b.Ordinal, b.Categorical)
}

// ColumnsAfterProcessing returns the column names the given categorical
// columns expand into after one-hot encoding, following the
// <column><category-index> contract. The frame supplies the observed
// categories.
func (b *Builder) ColumnsAfterProcessing(f *dataset.Frame, categorical []string) ([]string, error) {
	values := make([][]string, len(categorical))
	for i, name := range categorical {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		values[i] = col
	}

	encoder := preprocessing.NewOneHotEncoder(categorical)
	if err := encoder.Fit(values); err != nil {
		return nil, err
	}
	return encoder.FeatureNames()
}

// BuildModelPipelines returns one end-to-end pipeline per registry entry,
// keyed by model name. Each pipeline owns its transformer and estimator;
// no state is shared between entries. Estimators are instantiated with
// the first candidate of each grid parameter.
func (b *Builder) BuildModelPipelines(entries []Entry) (map[string]*Pipeline, error) {
	pipelines := make(map[string]*Pipeline, len(entries))
	for _, entry := range entries {
		estimator, err := NewEstimator(entry.Name, DefaultAssignment(entry.Params))
		if err != nil {
			return nil, err
		}
		pipelines[entry.Name] = NewPipeline(b.BuildColumnTransformer(), estimator)
	}
	return pipelines, nil
}
