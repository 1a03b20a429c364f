package metrics

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect predictions",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 1, 0},
			want:  1.0,
		},
		{
			name:  "Half correct",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 0, 1},
			want:  0.5,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(
				mat.NewVecDense(len(tt.yTrue), tt.yTrue),
				mat.NewVecDense(len(tt.yPred), tt.yPred),
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{0, 0, 0, 1, 1, 1})
	yPred := mat.NewVecDense(6, []float64{0, 0, 1, 1, 1, 0})

	cm, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("ConfusionMatrix() error = %v", err)
	}

	want := [2][2]float64{{2, 1}, {1, 2}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if cm.At(i, j) != want[i][j] {
				t.Errorf("cm[%d][%d] = %v, want %v", i, j, cm.At(i, j), want[i][j])
			}
		}
	}
}

func TestConfusionMatrixNonBinary(t *testing.T) {
	yTrue := mat.NewVecDense(2, []float64{0, 2})
	yPred := mat.NewVecDense(2, []float64{0, 1})
	if _, err := ConfusionMatrix(yTrue, yPred); err == nil {
		t.Error("ConfusionMatrix() expected error for non-binary labels")
	}
}

func TestPrecisionRecallF1(t *testing.T) {
	// For class 1: tp=2, fp=1, fn=1.
	yTrue := mat.NewVecDense(6, []float64{0, 0, 0, 1, 1, 1})
	yPred := mat.NewVecDense(6, []float64{0, 0, 1, 1, 1, 0})

	s, err := PrecisionRecallF1(yTrue, yPred, 1)
	if err != nil {
		t.Fatalf("PrecisionRecallF1() error = %v", err)
	}

	wantPrecision := 2.0 / 3.0
	wantRecall := 2.0 / 3.0
	wantF1 := 2 * wantPrecision * wantRecall / (wantPrecision + wantRecall)

	if math.Abs(s.Precision-wantPrecision) > 1e-9 {
		t.Errorf("Precision = %v, want %v", s.Precision, wantPrecision)
	}
	if math.Abs(s.Recall-wantRecall) > 1e-9 {
		t.Errorf("Recall = %v, want %v", s.Recall, wantRecall)
	}
	if math.Abs(s.F1-wantF1) > 1e-9 {
		t.Errorf("F1 = %v, want %v", s.F1, wantF1)
	}
	if s.Support != 3 {
		t.Errorf("Support = %d, want 3", s.Support)
	}
}

func TestPrecisionRecallF1Undefined(t *testing.T) {
	// Class 1 is never predicted: precision is ill-defined and falls back
	// to zero.
	yTrue := mat.NewVecDense(3, []float64{1, 0, 0})
	yPred := mat.NewVecDense(3, []float64{0, 0, 0})

	s, err := PrecisionRecallF1(yTrue, yPred, 1)
	if err != nil {
		t.Fatalf("PrecisionRecallF1() error = %v", err)
	}
	if s.Precision != 0 || s.Recall != 0 || s.F1 != 0 {
		t.Errorf("scores = %+v, want zeros", s)
	}
}

func TestReport(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	yPred := mat.NewVecDense(4, []float64{0, 1, 1, 1})

	report, err := Report(yTrue, yPred, [2]string{"Dead", "Survive"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	for _, want := range []string{"precision", "recall", "f1-score", "Dead", "Survive", "accuracy"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
