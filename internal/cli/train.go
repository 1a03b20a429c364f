package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/training"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// NewTrainCommand creates the train command.
func NewTrainCommand() *cobra.Command {
	var (
		models    []string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the configured models and register the best one",
		Long: `Train fits every grid assignment of the requested models, scores them
on a held-out split and registers the best pipeline. With --acc-threshold
the winner is registered only when its accuracy reaches the threshold.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var gate *float64
			if cmd.Flags().Changed("acc-threshold") {
				if threshold < 0 || threshold > 1 {
					return errors.NewValidationError("acc-threshold", "must be between 0 and 1", threshold)
				}
				gate = &threshold
			}

			result, err := training.NewTrainer(cfg).Run(models, gate)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "best model: %s (accuracy %.4f)\n", result.Model, result.Accuracy)
			if result.Registered {
				fmt.Fprintf(cmd.OutOrStdout(), "model saved to %s\n", result.Artifact)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "model not registered: accuracy below threshold")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&models, "model", "m", nil, "model to train (repeatable)")
	cmd.Flags().Float64VarP(&threshold, "acc-threshold", "t", 0, "minimum accuracy required to register the model")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
