package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// NewDraftCommand creates the draft command group.
func NewDraftCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage saved drafts",
	}

	cmd.AddCommand(newDraftListCommand(rootOpts))
	cmd.AddCommand(newDraftShowCommand(rootOpts))
	cmd.AddCommand(newDraftDeleteCommand(rootOpts))
	cmd.AddCommand(newDraftPruneCommand(rootOpts))

	return cmd
}

func newDraftListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List saved drafts, newest first",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openDraftStore(rootOpts)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no drafts")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n",
					rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Label)
			}
			return nil
		},
	}
}

func newDraftShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "show <id>",
		Short:        "Print a draft's values as JSON",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDraftID(args[0])
			if err != nil {
				return err
			}
			store, err := openDraftStore(rootOpts)
			if err != nil {
				return err
			}
			defer store.Close()

			snap, err := store.Load(cmd.Context(), id)
			if err != nil {
				return err
			}
			payload, err := snapshot.Marshal(snap)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
}

func newDraftDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "delete <id>",
		Short:        "Delete a draft",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDraftID(args[0])
			if err != nil {
				return err
			}
			store, err := openDraftStore(rootOpts)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted draft %d\n", id)
			return nil
		},
	}
}

func newDraftPruneCommand(rootOpts *RootOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:          "prune",
		Short:        "Delete drafts older than a cutoff",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openDraftStore(rootOpts)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d draft(s)\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age cutoff, e.g. 720h")

	return cmd
}

func parseDraftID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft id %q", arg)
	}
	return id, nil
}
