// Package metrics implements binary classification metrics: accuracy,
// confusion matrix, precision/recall/F1 and a text classification report.
package metrics

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Accuracy returns the fraction of matching labels in yTrue and yPred.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix computes the 2x2 confusion matrix for binary labels 0/1.
// Rows are actual classes, columns are predicted classes.
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (*mat.Dense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty vector")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("ConfusionMatrix", n, yPred.Len(), 0)
	}

	cm := mat.NewDense(2, 2, nil)
	for i := 0; i < n; i++ {
		actual := int(yTrue.AtVec(i))
		predicted := int(yPred.AtVec(i))
		if actual != 0 && actual != 1 {
			return nil, errors.NewValueError("ConfusionMatrix", fmt.Sprintf("labels must be binary, got %v", yTrue.AtVec(i)))
		}
		if predicted != 0 && predicted != 1 {
			return nil, errors.NewValueError("ConfusionMatrix", fmt.Sprintf("predictions must be binary, got %v", yPred.AtVec(i)))
		}
		cm.Set(actual, predicted, cm.At(actual, predicted)+1)
	}
	return cm, nil
}

// ClassScores holds per-class precision, recall, F1 and support.
type ClassScores struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// PrecisionRecallF1 computes per-class scores for the binary class given
// by label (0 or 1). Ill-defined ratios fall back to 0 and emit an
// UndefinedMetricWarning.
func PrecisionRecallF1(yTrue, yPred *mat.VecDense, label int) (ClassScores, error) {
	n := yTrue.Len()
	if n == 0 {
		return ClassScores{}, errors.NewValueError("PrecisionRecallF1", "empty vector")
	}
	if yPred.Len() != n {
		return ClassScores{}, errors.NewDimensionError("PrecisionRecallF1", n, yPred.Len(), 0)
	}

	var tp, fp, fn, support int
	for i := 0; i < n; i++ {
		actual := int(yTrue.AtVec(i)) == label
		predicted := int(yPred.AtVec(i)) == label
		if actual {
			support++
		}
		switch {
		case actual && predicted:
			tp++
		case !actual && predicted:
			fp++
		case actual && !predicted:
			fn++
		}
	}

	scores := ClassScores{Support: support}

	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted samples", 0))
	} else {
		scores.Precision = float64(tp) / float64(tp+fp)
	}

	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true samples", 0))
	} else {
		scores.Recall = float64(tp) / float64(tp+fn)
	}

	if scores.Precision+scores.Recall > 0 {
		scores.F1 = 2 * scores.Precision * scores.Recall / (scores.Precision + scores.Recall)
	}

	return scores, nil
}

// Report renders an sklearn-style classification report for binary labels.
// classNames maps class 0 and class 1 to display names.
func Report(yTrue, yPred *mat.VecDense, classNames [2]string) (string, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%16s  %9s  %9s  %9s  %9s\n", "", "precision", "recall", "f1-score", "support")
	b.WriteString("\n")

	total := 0
	for label := 0; label < 2; label++ {
		s, err := PrecisionRecallF1(yTrue, yPred, label)
		if err != nil {
			return "", err
		}
		total += s.Support
		fmt.Fprintf(&b, "%16s  %9.2f  %9.2f  %9.2f  %9d\n", classNames[label], s.Precision, s.Recall, s.F1, s.Support)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%16s  %9s  %9s  %9.2f  %9d\n", "accuracy", "", "", acc, total)
	return b.String(), nil
}
