// Package pipeline composes the column transformer with a candidate
// classifier into an end-to-end pipeline, provides the estimator registry
// and hyperparameter grid expansion, and handles artifact persistence.
package pipeline

import (
	"sort"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/ensemble"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/linearmodel"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/mlcore"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Registered model names.
const (
	ModelLogisticRegression = "logistic_regression"
	ModelRandomForest       = "random_forest"
	ModelDecisionTree       = "decision_tree"
)

// NewEstimator builds a classifier from its registry name and a single
// hyperparameter assignment. Unknown names return ErrUnknownModel;
// unknown parameters are a validation error.
func NewEstimator(name string, params map[string]interface{}) (mlcore.Classifier, error) {
	switch name {
	case ModelLogisticRegression:
		return newLogisticRegression(params)
	case ModelRandomForest:
		return newRandomForest(params)
	case ModelDecisionTree:
		return newDecisionTree(params)
	default:
		return nil, errors.Wrap(errors.ErrUnknownModel, name)
	}
}

func newLogisticRegression(params map[string]interface{}) (mlcore.Classifier, error) {
	opts := []linearmodel.Option{linearmodel.WithSeed(0)}
	for key, value := range params {
		switch key {
		case "C":
			v, err := floatParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, linearmodel.WithC(v))
		case "max_iter":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, linearmodel.WithMaxIter(v))
		case "tol":
			v, err := floatParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, linearmodel.WithTol(v))
		case "fit_intercept":
			v, ok := value.(bool)
			if !ok {
				return nil, errors.NewValidationError(key, "must be a bool", value)
			}
			opts = append(opts, linearmodel.WithFitIntercept(v))
		default:
			return nil, errors.NewValidationError(key, "unknown logistic_regression parameter", value)
		}
	}
	return linearmodel.NewLogisticRegression(opts...), nil
}

func newRandomForest(params map[string]interface{}) (mlcore.Classifier, error) {
	opts := []ensemble.ForestOption{ensemble.WithForestSeed(0)}
	for key, value := range params {
		switch key {
		case "n_estimators":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithNEstimators(v))
		case "max_depth":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithForestMaxDepth(v))
		case "min_samples_split":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithForestMinSamplesSplit(v))
		case "max_features":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithForestMaxFeatures(v))
		case "bootstrap":
			v, ok := value.(bool)
			if !ok {
				return nil, errors.NewValidationError(key, "must be a bool", value)
			}
			opts = append(opts, ensemble.WithBootstrap(v))
		default:
			return nil, errors.NewValidationError(key, "unknown random_forest parameter", value)
		}
	}
	return ensemble.NewRandomForest(opts...), nil
}

func newDecisionTree(params map[string]interface{}) (mlcore.Classifier, error) {
	opts := []ensemble.TreeOption{ensemble.WithTreeSeed(0)}
	for key, value := range params {
		switch key {
		case "max_depth":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithMaxDepth(v))
		case "min_samples_split":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithMinSamplesSplit(v))
		case "min_samples_leaf":
			v, err := intParam(key, value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ensemble.WithMinSamplesLeaf(v))
		case "criterion":
			v, ok := value.(string)
			if !ok {
				return nil, errors.NewValidationError(key, "must be a string", value)
			}
			opts = append(opts, ensemble.WithCriterion(v))
		default:
			return nil, errors.NewValidationError(key, "unknown decision_tree parameter", value)
		}
	}
	return ensemble.NewDecisionTree(opts...), nil
}

// floatParam coerces YAML-decoded numbers to float64.
func floatParam(key string, value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, errors.NewValidationError(key, "must be a number", value)
	}
}

// intParam coerces YAML-decoded numbers to int.
func intParam(key string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.NewValidationError(key, "must be an integer", value)
	}
}

// Grid expands a hyperparameter grid into the cartesian product of all
// candidate values. Keys are iterated in sorted order so the expansion is
// deterministic. An empty grid yields a single empty assignment.
func Grid(params map[string][]interface{}) []map[string]interface{} {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	assignments := []map[string]interface{}{{}}
	for _, key := range keys {
		values := params[key]
		if len(values) == 0 {
			continue
		}
		next := make([]map[string]interface{}, 0, len(assignments)*len(values))
		for _, base := range assignments {
			for _, v := range values {
				assignment := make(map[string]interface{}, len(base)+1)
				for bk, bv := range base {
					assignment[bk] = bv
				}
				assignment[key] = v
				next = append(next, assignment)
			}
		}
		assignments = next
	}
	return assignments
}

// DefaultAssignment picks the first candidate of every grid parameter.
func DefaultAssignment(params map[string][]interface{}) map[string]interface{} {
	assignment := make(map[string]interface{}, len(params))
	for key, values := range params {
		if len(values) > 0 {
			assignment[key] = values[0]
		}
	}
	return assignment
}
