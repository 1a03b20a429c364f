// Package cli provides the command-line interface for the Titanic
// survival model workflow.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/config"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/log"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "titanic",
		Short: "Titanic survival model workflow",
		Long: `titanic trains, validates and explores binary survival models on the
Titanic dataset: grid search over configured model candidates, accuracy
gating, model registration and ad-hoc SQL exploration.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			log.SetupLogger(cfg.LogLevel)
			log.InstallWarningSink()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./titanic.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("target", "", "target column name")
	rootCmd.PersistentFlags().String("train-data", "", "path to the training CSV")
	rootCmd.PersistentFlags().String("validation-data", "", "path to the validation CSV")
	rootCmd.PersistentFlags().String("model-path", "", "path of the persisted model artifact")

	rootCmd.AddCommand(NewTrainCommand())
	rootCmd.AddCommand(NewValidationCommand())
	rootCmd.AddCommand(NewTestCommand())
	rootCmd.AddCommand(NewRunSQLCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
