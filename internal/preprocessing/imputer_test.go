package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestImputerStrategies(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		strategy string
		data     []float64
		want     []float64 // learned statistic per column
	}{
		{
			name:     "Mean",
			strategy: StrategyMean,
			data: []float64{
				1, 10,
				3, nan,
				nan, 20,
			},
			want: []float64{2, 15},
		},
		{
			name:     "Median odd count",
			strategy: StrategyMedian,
			data: []float64{
				1, 5,
				9, nan,
				2, 7,
			},
			want: []float64{2, 6},
		},
		{
			name:     "Most frequent with tie towards smaller",
			strategy: StrategyMostFrequent,
			data: []float64{
				3, 1,
				3, 2,
				5, nan,
			},
			want: []float64{3, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := mat.NewDense(3, 2, tt.data)
			im := NewImputer(tt.strategy)
			if err := im.Fit(X); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			for j, want := range tt.want {
				if math.Abs(im.Statistics[j]-want) > 1e-9 {
					t.Errorf("Statistics[%d] = %v, want %v", j, im.Statistics[j], want)
				}
			}

			out, err := im.Transform(X)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			r, c := out.Dims()
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					if math.IsNaN(out.At(i, j)) {
						t.Errorf("Transform left NaN at (%d, %d)", i, j)
					}
				}
			}
		})
	}
}

func TestImputerNotFitted(t *testing.T) {
	im := NewImputer(StrategyMean)
	if _, err := im.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform() expected error before Fit")
	}
}

func TestImputerInvalidStrategy(t *testing.T) {
	im := NewImputer("mode")
	if err := im.Fit(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Fit() expected error for unknown strategy")
	}
}

func TestCategoryImputer(t *testing.T) {
	ci := NewCategoryImputer()
	err := ci.Fit([][]string{
		{"S", "C", "S", ""},
		{"a", "b", "", ""},
	})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if ci.Fill[0] != "S" {
		t.Errorf("Fill[0] = %q, want S", ci.Fill[0])
	}
	// Tie between a and b breaks towards the smaller value.
	if ci.Fill[1] != "a" {
		t.Errorf("Fill[1] = %q, want a", ci.Fill[1])
	}

	out, err := ci.Transform([][]string{
		{"", "C"},
		{"", "b"},
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if out[0][0] != "S" || out[1][0] != "a" {
		t.Errorf("Transform() = %v", out)
	}
}
