package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "titanic: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "titanic: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 5, 1)

	want := "titanic: Predict: dimension mismatch on axis 1 (features). Expected 10, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Pipeline", "Predict")

	want := "titanic: Pipeline: this estimator is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewMissingColumnError(t *testing.T) {
	err := NewMissingColumnError("PreprocessFeatures", "SibSp")

	want := "titanic: PreprocessFeatures: required column 'SibSp' is missing"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var missing *MissingColumnError
	if !As(err, &missing) {
		t.Error("Error should be castable to *MissingColumnError")
	}
}

func TestSentinelErrors(t *testing.T) {
	wrapped := Wrap(ErrUnknownModel, "svm")
	if !Is(wrapped, ErrUnknownModel) {
		t.Error("wrapped sentinel should match with Is")
	}
	if Is(wrapped, ErrEmptyData) {
		t.Error("wrapped sentinel should not match an unrelated sentinel")
	}
}

func TestWarnHandlers(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	t.Cleanup(func() { SetWarningHandler(nil) })

	warning := NewConvergenceWarning("GradientDescent", 100, "")
	Warn(warning)
	if captured != warning {
		t.Errorf("handler received %v, want %v", captured, warning)
	}

	var sunk error
	SetZerologWarnFunc(func(w error) { sunk = w })
	t.Cleanup(func() { SetZerologWarnFunc(nil) })

	captured = nil
	Warn(warning)
	if sunk != warning {
		t.Error("zerolog sink should take precedence once installed")
	}
	if captured != nil {
		t.Error("plain handler should not fire when a zerolog sink is installed")
	}
}

func TestUndefinedMetricWarningMessage(t *testing.T) {
	w := NewUndefinedMetricWarning("precision", "no predicted samples", 0)
	msg := w.Error()
	if !strings.Contains(msg, "precision") || !strings.Contains(msg, "ill-defined") {
		t.Errorf("unexpected warning message: %s", msg)
	}
}
