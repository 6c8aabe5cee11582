package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/validate"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:          "validate",
		Short:        "Validate a values file without generating",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, inputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON values file (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, inputPath string) error {
	reg, err := loadRegistry(rootOpts)
	if err != nil {
		return err
	}
	snap, err := readValues(inputPath)
	if err != nil {
		return err
	}

	// Restore through the registry so unknown keys are dropped and
	// missing fields get their empty values, same as generation.
	src := make(snapshot.MapSource)
	snapshot.Restore(reg, src, snap)
	result := validate.Validate(reg, snapshot.Capture(reg, src))

	printIssues(cmd, result)
	if !result.Valid() {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}

func printIssues(cmd *cobra.Command, result validate.Result) {
	for _, issue := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", issue.Message)
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue.Message)
	}
}
