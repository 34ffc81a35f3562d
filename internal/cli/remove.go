package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookworm/internal/api"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete one of your recommendations",
		Long: `Delete one of your own recommendations by id.

Find the id with 'bookworm shelf'. Deleting someone else's
recommendation is rejected by the backend.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := openApp(ctx, rootOpts)
			if err != nil {
				return WrapExitError(ExitCommandError, "setup failed", err)
			}
			defer app.Close()

			if err := app.requireSession(ctx); err != nil {
				return err
			}

			if err := app.Client.DeleteBook(ctx, app.Session.Token(), args[0]); err != nil {
				return NewExitError(ExitFailure, api.MessageOr(err, "failed to delete the recommendation"))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Recommendation deleted.")
			return nil
		},
	}

	return cmd
}
