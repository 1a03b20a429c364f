package preprocessing

import (
	"math"
	"reflect"
	"testing"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

func transformerFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	f, err := dataset.FromRows(
		[]string{"Age", "Fare", "Pclass", "Sex", "Embarked"},
		[][]string{
			{"22", "7.25", "3", "male", "S"},
			{"38", "", "1", "female", "C"},
			{"NA", "7.9", "3", "female", "S"},
			{"35", "53.1", "1", "male", ""},
		},
	)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	return f
}

func TestColumnTransformer(t *testing.T) {
	f := transformerFrame(t)
	ct := NewColumnTransformer(
		[]string{"Age", "Fare"},
		[]string{"Pclass"},
		[]string{"Sex", "Embarked"},
	)

	out, err := ct.FitTransform(f)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// 2 numeric + 1 ordinal + 2 sex categories + 2 embarked categories.
	r, c := out.Dims()
	if r != 4 {
		t.Errorf("rows = %d, want 4", r)
	}
	if c != 7 {
		t.Errorf("columns = %d, want 7", c)
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(out.At(i, j)) {
				t.Errorf("NaN survived preprocessing at (%d, %d)", i, j)
			}
		}
	}

	names, err := ct.FeatureNames()
	if err != nil {
		t.Fatalf("FeatureNames() error = %v", err)
	}
	want := []string{"Age", "Fare", "Pclass", "Sex0", "Sex1", "Embarked0", "Embarked1"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("FeatureNames() = %v, want %v", names, want)
	}
}

func TestColumnTransformerMissingColumn(t *testing.T) {
	f := transformerFrame(t)
	ct := NewColumnTransformer([]string{"Age", "Height"}, nil, nil)

	err := ct.Fit(f)
	if err == nil {
		t.Fatal("Fit() expected error for missing column")
	}
	var missing *errors.MissingColumnError
	if !errors.As(err, &missing) {
		t.Errorf("error = %v, want MissingColumnError", err)
	}
}

func TestColumnTransformerNotFitted(t *testing.T) {
	ct := NewColumnTransformer([]string{"Age"}, nil, nil)
	if _, err := ct.Transform(transformerFrame(t)); err == nil {
		t.Error("Transform() expected error before Fit")
	}
}
