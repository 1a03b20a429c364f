package pipeline

import (
	"reflect"
	"testing"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

func TestNewEstimator(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name:   "Logistic regression",
			model:  ModelLogisticRegression,
			params: map[string]interface{}{"C": 1.0, "max_iter": 200},
		},
		{
			name:   "Random forest",
			model:  ModelRandomForest,
			params: map[string]interface{}{"n_estimators": 50, "max_depth": 4},
		},
		{
			name:   "Decision tree",
			model:  ModelDecisionTree,
			params: map[string]interface{}{"max_depth": 3, "criterion": "entropy"},
		},
		{
			name:   "YAML numbers coerce",
			model:  ModelLogisticRegression,
			params: map[string]interface{}{"C": 1, "max_iter": float64(200)},
		},
		{
			name:    "Unknown model",
			model:   "svm",
			wantErr: true,
		},
		{
			name:    "Unknown parameter",
			model:   ModelLogisticRegression,
			params:  map[string]interface{}{"gamma": 0.1},
			wantErr: true,
		},
		{
			name:    "Wrong parameter type",
			model:   ModelRandomForest,
			params:  map[string]interface{}{"bootstrap": "yes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := NewEstimator(tt.model, tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEstimator() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && est == nil {
				t.Error("NewEstimator() returned nil classifier")
			}
		})
	}
}

func TestNewEstimatorUnknownModelSentinel(t *testing.T) {
	_, err := NewEstimator("svm", nil)
	if !errors.Is(err, errors.ErrUnknownModel) {
		t.Errorf("error = %v, want ErrUnknownModel", err)
	}
}

func TestGrid(t *testing.T) {
	got := Grid(map[string][]interface{}{
		"C":        {0.1, 1.0},
		"max_iter": {100, 200},
	})
	want := []map[string]interface{}{
		{"C": 0.1, "max_iter": 100},
		{"C": 0.1, "max_iter": 200},
		{"C": 1.0, "max_iter": 100},
		{"C": 1.0, "max_iter": 200},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Grid() = %v, want %v", got, want)
	}
}

func TestGridEmpty(t *testing.T) {
	got := Grid(nil)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("Grid(nil) = %v, want one empty assignment", got)
	}
}

func TestDefaultAssignment(t *testing.T) {
	got := DefaultAssignment(map[string][]interface{}{
		"n_estimators": {100, 200},
		"max_depth":    {4},
	})
	want := map[string]interface{}{"n_estimators": 100, "max_depth": 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultAssignment() = %v, want %v", got, want)
	}
}
