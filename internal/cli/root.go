// Package cli wires the termsheet commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealdocs/termsheet/pkg/field"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	RegistryPath string
	DraftDB      string
}

// NewRootCommand creates the root command for the termsheet CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "termsheet",
		Short: "Generate share sale term sheets",
		Long: `Captures deal terms, validates them, and assembles a term sheet
document from the template variant that matches the deal structure.`,
	}

	cmd.PersistentFlags().StringVar(&opts.RegistryPath, "registry", "", "path to a field registry YAML (default: built-in)")
	cmd.PersistentFlags().StringVar(&opts.DraftDB, "drafts", defaultDraftDB(), "path to the draft database")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewFillCommand(opts))
	cmd.AddCommand(NewDraftCommand(opts))

	return cmd
}

func defaultDraftDB() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir + "/.termsheet/drafts.db"
	}
	return "drafts.db"
}

// loadRegistry resolves the field registry: a --registry file when
// given, otherwise the built-in catalog.
func loadRegistry(opts *RootOptions) (*field.Registry, error) {
	if opts.RegistryPath == "" {
		return field.Default(), nil
	}
	f, err := os.Open(opts.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	reg, err := field.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", opts.RegistryPath, err)
	}
	return reg, nil
}
