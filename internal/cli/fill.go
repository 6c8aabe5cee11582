package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	termsheet "github.com/dealdocs/termsheet"
	"github.com/dealdocs/termsheet/pkg/draft"
	"github.com/dealdocs/termsheet/pkg/prompt"
	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// NewFillCommand creates the interactive fill command.
func NewFillCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		outputPath string
		resumeID   int64
		saveLabel  string
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in a term sheet interactively",
		Long: `Asks one question per field, skipping sections that the answers so
far have switched off, then generates the document. --save stores the
answers as a draft instead of generating.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, rootOpts, outputPath, resumeID, saveLabel)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: derived filename in the current directory)")
	cmd.Flags().Int64Var(&resumeID, "resume", 0, "draft id to resume from")
	cmd.Flags().StringVar(&saveLabel, "save", "", "save answers as a draft with this label instead of generating")

	return cmd
}

func runFill(cmd *cobra.Command, rootOpts *RootOptions, outputPath string, resumeID int64, saveLabel string) error {
	reg, err := loadRegistry(rootOpts)
	if err != nil {
		return err
	}
	gen := termsheet.New(termsheet.WithRegistry(reg))

	seed := snapshot.Snapshot{}
	if resumeID != 0 {
		store, err := openDraftStore(rootOpts)
		if err != nil {
			return err
		}
		seed, err = store.Load(cmd.Context(), resumeID)
		store.Close()
		if err != nil {
			return fmt.Errorf("resume draft %d: %w", resumeID, err)
		}
	}

	asker := prompt.NewAsker(reg, gen.Controller(), nil)
	snap, err := asker.Fill(cmd.Context(), seed)
	if err != nil {
		return err
	}

	if saveLabel != "" {
		store, err := openDraftStore(rootOpts)
		if err != nil {
			return err
		}
		defer store.Close()
		rec, err := store.Save(cmd.Context(), saveLabel, snap)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved draft %d (%s)\n", rec.ID, rec.Label)
		return nil
	}

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
	if err := os.WriteFile(outputPath, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", outputPath, artifact.Variant)
	return nil
}

func openDraftStore(rootOpts *RootOptions) (*draft.Store, error) {
	if dir := filepath.Dir(rootOpts.DraftDB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create draft directory: %w", err)
		}
	}
	return draft.Open(rootOpts.DraftDB)
}
