package pipeline

import (
	"reflect"
	"testing"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/dataset"
)

func TestBuildModelPipelines(t *testing.T) {
	b := NewBuilder([]string{"Age"}, []string{"Pclass"}, []string{"Sex"})

	pipelines, err := b.BuildModelPipelines([]Entry{
		{Name: ModelLogisticRegression, Params: map[string][]interface{}{"C": {0.1, 1.0}}},
		{Name: ModelRandomForest, Params: map[string][]interface{}{"n_estimators": {10}}},
	})
	if err != nil {
		t.Fatalf("BuildModelPipelines() error = %v", err)
	}
	if len(pipelines) != 2 {
		t.Fatalf("len(pipelines) = %d, want 2", len(pipelines))
	}

	lr := pipelines[ModelLogisticRegression]
	rf := pipelines[ModelRandomForest]
	if lr == nil || rf == nil {
		t.Fatal("expected a pipeline per registry entry")
	}
	if lr.Transformer == rf.Transformer {
		t.Error("pipelines must not share a column transformer")
	}
}

func TestBuildModelPipelinesUnknownModel(t *testing.T) {
	b := NewBuilder([]string{"Age"}, nil, nil)
	if _, err := b.BuildModelPipelines([]Entry{{Name: "svm"}}); err == nil {
		t.Error("BuildModelPipelines() expected error for unknown model")
	}
}

func TestColumnsAfterProcessing(t *testing.T) {
	f, err := dataset.FromRows(
		[]string{"Sex", "Embarked"},
		[][]string{
			{"male", "S"},
			{"female", "C"},
			{"male", "Q"},
		},
	)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}

	b := NewBuilder(nil, nil, []string{"Sex", "Embarked"})
	got, err := b.ColumnsAfterProcessing(f, []string{"Sex", "Embarked"})
	if err != nil {
		t.Fatalf("ColumnsAfterProcessing() error = %v", err)
	}

	want := []string{"Sex0", "Sex1", "Embarked0", "Embarked1", "Embarked2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnsAfterProcessing() = %v, want %v", got, want)
	}
}
