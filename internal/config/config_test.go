package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no config file is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Survived", cfg.Target)
	assert.Equal(t, []string{"Age", "Fare", "FamilySize"}, cfg.Features.Numeric)
	assert.Equal(t, "data/train.csv", cfg.Paths.TrainData)
	assert.Equal(t, 0.2, cfg.Split.TestSize)
	assert.Equal(t, 5432, cfg.Database.Port)
	require.NotEmpty(t, cfg.Models)
	assert.Equal(t, "logistic_regression", cfg.Models[0].Name)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "titanic.yaml")
	content := `
target: Outcome
features:
  numeric: [A]
  ordinal: [B]
  categorical: [C]
split:
  test_size: 0.3
  seed: 7
models:
  - name: decision_tree
    params:
      max_depth: [2, 4]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "Outcome", cfg.Target)
	assert.Equal(t, []string{"A"}, cfg.Features.Numeric)
	assert.Equal(t, 0.3, cfg.Split.TestSize)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "decision_tree", cfg.Models[0].Name)
	assert.Len(t, cfg.Models[0].Params["max_depth"], 2)

	// File values override defaults, untouched defaults survive.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TITANIC_TARGET", "Outcome")
	t.Setenv("TITANIC_DATABASE__HOST", "db.internal")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Outcome", cfg.Target)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Target: "Survived",
			Features: Features{
				Numeric:     []string{"Age"},
				Ordinal:     []string{"Pclass"},
				Categorical: []string{"Sex"},
			},
			Models: DefaultModels(),
			Split:  Split{TestSize: 0.2},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("empty target", func(t *testing.T) {
		cfg := base()
		cfg.Target = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("no features", func(t *testing.T) {
		cfg := base()
		cfg.Features = Features{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("overlapping groups", func(t *testing.T) {
		cfg := base()
		cfg.Features.Ordinal = []string{"Age"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("test size out of range", func(t *testing.T) {
		cfg := base()
		cfg.Split.TestSize = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("no models", func(t *testing.T) {
		cfg := base()
		cfg.Models = nil
		assert.Error(t, cfg.Validate())
	})
}

func TestModelByName(t *testing.T) {
	cfg := &Config{Models: DefaultModels()}

	spec, ok := cfg.ModelByName("random_forest")
	require.True(t, ok)
	assert.Equal(t, "random_forest", spec.Name)

	_, ok = cfg.ModelByName("svm")
	assert.False(t, ok)

	assert.Equal(t, []string{"logistic_regression", "random_forest"}, cfg.ModelNames())
}
