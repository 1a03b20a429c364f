package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/makerun"
	"github.com/santiagoprado12/ML-e2e-challenge/internal/training"
	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// NewValidationCommand creates the validation command.
func NewValidationCommand() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "validation",
		Short: "Score the registered model on the validation set",
		Long: `Validation loads the persisted pipeline, scores it on the validation
data and writes the validation report. With --acc-threshold a score below
the threshold triggers a retrain via the Makefile.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var gate *float64
			if cmd.Flags().Changed("acc-threshold") {
				if threshold < 0 || threshold > 1 {
					return errors.NewValidationError("acc-threshold", "must be between 0 and 1", threshold)
				}
				gate = &threshold
			}

			result, err := training.NewValidator(cfg).Run()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "validation accuracy: %.4f\n", result.Accuracy)
			fmt.Fprintln(cmd.OutOrStdout(), result.Report)

			if gate != nil && result.Accuracy < *gate {
				fmt.Fprintf(cmd.OutOrStdout(), "accuracy %.4f below threshold %.4f, retraining\n", result.Accuracy, *gate)
				return makerun.RunTarget(cmd.Context(), "train")
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "acc-threshold", "t", 0, "minimum accuracy; a lower score triggers a retrain")

	return cmd
}
