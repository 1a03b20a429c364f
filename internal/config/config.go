// Package config loads application configuration from defaults, an
// optional YAML file, environment variables and CLI flags, in that
// precedence order.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// envPrefix is the prefix recognized on environment variables, e.g.
// TITANIC_LOG_LEVEL or TITANIC_DATABASE__PASSWORD (double underscore
// separates nesting levels).
const envPrefix = "TITANIC_"

// Features holds the three disjoint column groups fed to the column
// transformer. Groups are supplied by configuration, never inferred.
type Features struct {
	Numeric     []string `koanf:"numeric"`
	Ordinal     []string `koanf:"ordinal"`
	Categorical []string `koanf:"categorical"`
}

// ModelSpec is a model registry entry: a name known to the estimator
// registry and a hyperparameter grid (parameter name to candidate values).
type ModelSpec struct {
	Name   string                   `koanf:"name"`
	Params map[string][]interface{} `koanf:"params"`
}

// Paths holds the file locations used by training and validation.
type Paths struct {
	TrainData      string `koanf:"train_data"`
	ValidationData string `koanf:"validation_data"`
	Model          string `koanf:"model"`
	Report         string `koanf:"report"`
}

// Split configures the train/test split.
type Split struct {
	TestSize float64 `koanf:"test_size"`
	Seed     int64   `koanf:"seed"`
}

// Database holds the PostgreSQL connection settings.
type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Name     string `koanf:"dbname"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

// Config is the root configuration object.
type Config struct {
	LogLevel string      `koanf:"log_level"`
	Target   string      `koanf:"target"`
	Features Features    `koanf:"features"`
	Models   []ModelSpec `koanf:"models"`
	Paths    Paths       `koanf:"paths"`
	Split    Split       `koanf:"split"`
	Database Database    `koanf:"database"`
}

// defaults mirror the repository's stock config.yaml.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log_level":             "info",
		"target":                "Survived",
		"features.numeric":      []string{"Age", "Fare", "FamilySize"},
		"features.ordinal":      []string{"Pclass", "SibSp", "Parch", "IsAlone"},
		"features.categorical":  []string{"Sex", "Embarked"},
		"paths.train_data":      "data/train.csv",
		"paths.validation_data": "data/validation.csv",
		"paths.model":           "artifacts/model.gob",
		"paths.report":          "validation_report.md",
		"split.test_size":       0.2,
		"split.seed":            int64(42),
		"database.host":         "localhost",
		"database.port":         5432,
		"database.dbname":       "titanic",
		"database.user":         "postgres",
		"database.sslmode":      "disable",
	}
}

// DefaultModels is the model registry used when the config file declares
// none.
func DefaultModels() []ModelSpec {
	return []ModelSpec{
		{
			Name: "logistic_regression",
			Params: map[string][]interface{}{
				"C":        {0.1, 1.0, 10.0},
				"max_iter": {200},
			},
		},
		{
			Name: "random_forest",
			Params: map[string][]interface{}{
				"n_estimators": {100},
				"max_depth":    {4, 8},
			},
		},
	}
}

// findConfigFile returns the config file to use.
// Priority: explicit path > titanic.yaml > titanic.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"titanic.yaml", "titanic.yml", "config.yaml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// flagKeys maps CLI flag names onto nested config keys.
var flagKeys = map[string]string{
	"train-data":      "paths.train_data",
	"validation-data": "paths.validation_data",
	"model-path":      "paths.model",
}

// Load builds the configuration. cfgFile may be empty; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading config defaults")
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "loading config file %s", path)
		}
	} else if cfgFile != "" {
		return nil, errors.Newf("config file %s not found", cfgFile)
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "loading config from environment")
	}

	if flags != nil {
		flagProvider := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, interface{}) {
			if mapped, ok := flagKeys[key]; ok {
				return mapped, value
			}
			// Flag names use dashes; config keys use underscores.
			return strings.ReplaceAll(key, "-", "_"), value
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return nil, errors.Wrap(err, "loading config from flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if len(cfg.Models) == 0 {
		cfg.Models = DefaultModels()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the structural invariants of the configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("log_level", "must be debug, info, warn or error", c.LogLevel)
	}
	if c.Target == "" {
		return errors.NewValidationError("target", "must not be empty", c.Target)
	}
	total := len(c.Features.Numeric) + len(c.Features.Ordinal) + len(c.Features.Categorical)
	if total == 0 {
		return errors.NewValidationError("features", "at least one feature group must be non-empty", total)
	}

	seen := make(map[string]string)
	for group, cols := range map[string][]string{
		"numeric":     c.Features.Numeric,
		"ordinal":     c.Features.Ordinal,
		"categorical": c.Features.Categorical,
	} {
		for _, col := range cols {
			if prev, ok := seen[col]; ok {
				return errors.NewValidationError("features", "column assigned to both "+prev+" and "+group, col)
			}
			seen[col] = group
		}
	}

	if c.Split.TestSize <= 0 || c.Split.TestSize >= 1 {
		return errors.NewValidationError("split.test_size", "must be in (0, 1)", c.Split.TestSize)
	}

	if len(c.Models) == 0 {
		return errors.NewValidationError("models", "at least one model must be configured", len(c.Models))
	}
	for _, m := range c.Models {
		if m.Name == "" {
			return errors.NewValidationError("models", "model name must not be empty", m)
		}
	}
	return nil
}

// ModelNames returns the configured model names in order.
func (c *Config) ModelNames() []string {
	names := make([]string, len(c.Models))
	for i, m := range c.Models {
		names[i] = m.Name
	}
	return names
}

// ModelByName returns the registry entry with the given name.
func (c *Config) ModelByName(name string) (ModelSpec, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelSpec{}, false
}
