package preprocessing

import (
	"reflect"
	"testing"
)

func TestOneHotEncoder(t *testing.T) {
	e := NewOneHotEncoder([]string{"Sex", "Embarked"})
	values := [][]string{
		{"male", "female", "male", "female"},
		{"S", "C", "Q", "S"},
	}

	out, err := e.FitTransform(values)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := out.Dims()
	if r != 4 || c != 5 {
		t.Fatalf("dims = (%d, %d), want (4, 5)", r, c)
	}

	names, err := e.FeatureNames()
	if err != nil {
		t.Fatalf("FeatureNames() error = %v", err)
	}
	want := []string{"Sex0", "Sex1", "Embarked0", "Embarked1", "Embarked2"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("FeatureNames() = %v, want %v", names, want)
	}

	// Vocabularies sort lexicographically: female < male, C < Q < S.
	// Row 0 is male with embarkation S.
	wantRow := []float64{0, 1, 0, 0, 1}
	for j, v := range wantRow {
		if out.At(0, j) != v {
			t.Errorf("row 0 col %d = %v, want %v", j, out.At(0, j), v)
		}
	}
}

func TestOneHotEncoderUnknownCategory(t *testing.T) {
	e := NewOneHotEncoder([]string{"Sex"})
	if err := e.Fit([][]string{{"male", "female"}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	out, err := e.Transform([][]string{{"other"}})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if out.At(0, 0) != 0 || out.At(0, 1) != 0 {
		t.Errorf("unknown category should encode as all zeros, got %v %v", out.At(0, 0), out.At(0, 1))
	}
}

func TestOneHotEncoderNoCategories(t *testing.T) {
	e := NewOneHotEncoder([]string{"Sex"})
	if err := e.Fit([][]string{{"", ""}}); err == nil {
		t.Error("Fit() expected error when a column has no observed categories")
	}
}
