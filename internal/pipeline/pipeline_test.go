package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/preprocessing"
)

// trainingFrame returns a tiny frame where low fares predict class 0.
func trainingFrame(t *testing.T) (*dataset.Frame, []float64) {
	t.Helper()
	f, err := dataset.FromRows(
		[]string{"Age", "Fare", "Pclass", "Sex"},
		[][]string{
			{"22", "7", "3", "male"},
			{"30", "8", "3", "male"},
			{"25", "6", "3", "male"},
			{"40", "9", "3", "male"},
			{"35", "70", "1", "female"},
			{"28", "80", "1", "female"},
			{"45", "75", "1", "female"},
			{"50", "90", "1", "female"},
		},
	)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	return f, []float64{0, 0, 0, 0, 1, 1, 1, 1}
}

func newTestPipeline(t *testing.T, model string, params map[string]interface{}) *Pipeline {
	t.Helper()
	est, err := NewEstimator(model, params)
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}
	ct := preprocessing.NewColumnTransformer(
		[]string{"Age", "Fare"},
		[]string{"Pclass"},
		[]string{"Sex"},
	)
	return NewPipeline(ct, est)
}

func TestPipelineFitPredictScore(t *testing.T) {
	f, y := trainingFrame(t)
	p := newTestPipeline(t, ModelLogisticRegression, map[string]interface{}{"max_iter": 500})

	if err := p.Fit(f, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := p.Predict(f)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if pred.Len() != f.NumRows() {
		t.Errorf("prediction length = %d, want %d", pred.Len(), f.NumRows())
	}

	score, err := p.Score(f, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 1.0 {
		t.Errorf("Score() = %v, want 1.0 on separable data", score)
	}
}

func TestPipelineNotFitted(t *testing.T) {
	f, _ := trainingFrame(t)
	p := newTestPipeline(t, ModelLogisticRegression, nil)

	if _, err := p.Predict(f); err == nil {
		t.Error("Predict() expected error before Fit")
	}
	if err := p.Save(filepath.Join(t.TempDir(), "model.gob")); err == nil {
		t.Error("Save() expected error before Fit")
	}
}

func TestPipelineSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		params map[string]interface{}
	}{
		{
			name:   "Logistic regression",
			model:  ModelLogisticRegression,
			params: map[string]interface{}{"max_iter": 500},
		},
		{
			name:   "Random forest",
			model:  ModelRandomForest,
			params: map[string]interface{}{"n_estimators": 10, "max_depth": 3},
		},
		{
			name:   "Decision tree",
			model:  ModelDecisionTree,
			params: map[string]interface{}{"max_depth": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, y := trainingFrame(t)
			p := newTestPipeline(t, tt.model, tt.params)
			if err := p.Fit(f, y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}

			wantPred, err := p.Predict(f)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}

			path := filepath.Join(t.TempDir(), "model.gob")
			if err := p.Save(path); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			gotPred, err := loaded.Predict(f)
			if err != nil {
				t.Fatalf("loaded Predict() error = %v", err)
			}
			for i := 0; i < wantPred.Len(); i++ {
				if gotPred.AtVec(i) != wantPred.AtVec(i) {
					t.Errorf("loaded prediction[%d] = %v, want %v", i, gotPred.AtVec(i), wantPred.AtVec(i))
				}
			}
		})
	}
}

func TestPipelineLabelMismatch(t *testing.T) {
	f, _ := trainingFrame(t)
	p := newTestPipeline(t, ModelLogisticRegression, nil)
	if err := p.Fit(f, []float64{0, 1}); err == nil {
		t.Error("Fit() expected error for label count mismatch")
	}
}
