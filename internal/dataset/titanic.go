package dataset

import (
	"math"
	"strconv"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// Identifier and free-text columns removed before modeling.
var dropColumns = []string{"Cabin", "PassengerId", "Name", "Ticket"}

// Derived feature columns.
const (
	ColFamilySize = "FamilySize"
	ColIsAlone    = "IsAlone"

	colSibSp = "SibSp"
	colParch = "Parch"
)

// PreprocessFeatures applies the Titanic feature engineering: drops the
// identifier/free-text columns, adds FamilySize as the sum of SibSp and
// Parch, and adds IsAlone set to 1 when FamilySize is zero.
//
// The input must contain the columns Cabin, PassengerId, Name, Ticket,
// SibSp and Parch; a missing column fails fast.
func PreprocessFeatures(f *Frame) (*Frame, error) {
	for _, required := range append(append([]string(nil), dropColumns...), colSibSp, colParch) {
		if !f.Has(required) {
			return nil, errors.NewMissingColumnError("PreprocessFeatures", required)
		}
	}

	out, err := f.Drop(dropColumns...)
	if err != nil {
		return nil, err
	}

	sibSp, err := out.Float(colSibSp)
	if err != nil {
		return nil, err
	}
	parch, err := out.Float(colParch)
	if err != nil {
		return nil, err
	}

	family := make([]string, len(sibSp))
	alone := make([]string, len(sibSp))
	for i := range sibSp {
		size := sibSp[i] + parch[i]
		if math.IsNaN(size) {
			size = 0
		}
		family[i] = strconv.FormatFloat(size, 'f', -1, 64)
		if size == 0 {
			alone[i] = "1"
		} else {
			alone[i] = "0"
		}
	}

	out, err = out.WithColumn(ColFamilySize, family)
	if err != nil {
		return nil, err
	}
	return out.WithColumn(ColIsAlone, alone)
}

// SplitTarget removes the target column from the frame and returns it as a
// float label vector.
func SplitTarget(f *Frame, target string) (*Frame, []float64, error) {
	y, err := f.Float(target)
	if err != nil {
		return nil, nil, err
	}
	X, err := f.Drop(target)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// LoadTitanic loads a labeled CSV, applies the feature preprocessing and
// splits off the target column.
func LoadTitanic(path, target string) (*Frame, []float64, error) {
	raw, err := LoadCSV(path)
	if err != nil {
		return nil, nil, err
	}
	processed, err := PreprocessFeatures(raw)
	if err != nil {
		return nil, nil, err
	}
	return SplitTarget(processed, target)
}
