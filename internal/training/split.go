// Package training implements the train/test split, the grid-search
// trainer that selects and persists the winning pipeline, and the
// validator that scores a persisted pipeline and writes the validation
// report.
package training

import (
	"math"
	"math/rand"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// TrainTestSplit shuffles the rows with a seeded RNG and splits them into
// train and held-out sets. testSize is the held-out fraction in (0, 1).
func TrainTestSplit(f *dataset.Frame, y []float64, testSize float64, seed int64) (trainX, testX *dataset.Frame, trainY, testY []float64, err error) {
	n := f.NumRows()
	if n != len(y) {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, len(y), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	if n < 2 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "need at least 2 rows to split")
	}

	nTest := int(math.Round(float64(n) * testSize))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	trainX, err = f.Subset(trainIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	testX, err = f.Subset(testIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	trainY = make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainY[i] = y[idx]
	}
	testY = make([]float64, len(testIdx))
	for i, idx := range testIdx {
		testY[i] = y[idx]
	}
	return trainX, testX, trainY, testY, nil
}
