package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	termsheet "github.com/dealdocs/termsheet"
	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a term sheet document from a values file",
		Long: `Reads captured values from a JSON file, validates them, and writes
the assembled document. Validation errors abort without writing.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, rootOpts, inputPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON values file (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: derived filename in the current directory)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runGenerate(cmd *cobra.Command, rootOpts *RootOptions, inputPath, outputPath string) error {
	reg, err := loadRegistry(rootOpts)
	if err != nil {
		return err
	}
	snap, err := readValues(inputPath)
	if err != nil {
		return err
	}

	gen := termsheet.New(termsheet.WithRegistry(reg))
	artifact, err := gen.GenerateSnapshot(cmd.Context(), snap)
	if err != nil {
		var verr *termsheet.ValidationError
		if errors.As(err, &verr) {
			printIssues(cmd, verr.Result)
			return fmt.Errorf("validation failed with %d error(s)", len(verr.Result.Errors))
		}
		return err
	}

	for _, warning := range artifact.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}

	if outputPath == "" {
		outputPath = artifact.Filename
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", outputPath, artifact.Variant)
	return nil
}

// readValues parses a JSON values file into a snapshot. Scalar
// booleans and numbers are tolerated and normalized to strings.
func readValues(path string) (snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	snap, err := snapshot.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return snap, nil
}
