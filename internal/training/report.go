package training

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// confusionGrid adapts a confusion matrix to plotter.GridXYZ. Rows are
// flipped so that actual class 0 renders at the top of the heatmap.
type confusionGrid struct {
	m *mat.Dense
}

func (g confusionGrid) Dims() (int, int) {
	r, c := g.m.Dims()
	return c, r
}

func (g confusionGrid) X(c int) float64 { return float64(c) }

func (g confusionGrid) Y(r int) float64 { return float64(r) }

func (g confusionGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

// SaveHeatmap renders the confusion matrix as a PNG heatmap.
func SaveHeatmap(cm *mat.Dense, path string) error {
	p := plot.New()
	p.Title.Text = "Confusion Matrix"
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	hm := plotter.NewHeatMap(confusionGrid{m: cm}, palette.Heat(12, 1))
	p.Add(hm)

	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving heatmap %s", path)
	}
	return nil
}

// WriteReport writes the markdown validation report next to a timestamped
// confusion-matrix heatmap PNG.
func WriteReport(path string, accuracy float64, cm *mat.Dense, classReport string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating report directory %s", dir)
		}
	}

	heatmap := fmt.Sprintf("confusion_matrix_%s.png", time.Now().Format("20060102_150405"))
	if err := SaveHeatmap(cm, filepath.Join(dir, heatmap)); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Validation Report\n\n")
	fmt.Fprintf(&b, "Accuracy: %.4f\n\n", accuracy)
	b.WriteString("## Confusion Matrix\n\n")
	fmt.Fprintf(&b, "![confusion matrix](%s)\n\n", heatmap)
	b.WriteString("|                | Predicted Dead | Predicted Survive |\n")
	b.WriteString("|----------------|----------------|-------------------|\n")
	fmt.Fprintf(&b, "| Actual Dead    | %d | %d |\n", int(cm.At(0, 0)), int(cm.At(0, 1)))
	fmt.Fprintf(&b, "| Actual Survive | %d | %d |\n", int(cm.At(1, 0)), int(cm.At(1, 1)))
	b.WriteString("\n## Classification Report\n\n")
	b.WriteString("```\n")
	b.WriteString(classReport)
	b.WriteString("```\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrapf(err, "writing report %s", path)
	}
	return nil
}
