package cli

import (
	"time"

	"github.com/spf13/cobra"

	"bookworm/internal/feed"
)

// NewShelfCommand creates the shelf command.
func NewShelfCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelf",
		Short: "List your own recommendations",
		Long: `List the recommendations you have shared. Remove one with
'bookworm remove <id>' using the id shown here.`,
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

			f := feed.New(&feed.ShelfSource{Client: app.Client, Tokens: app.Session}, app.Config.PageSize)
			if err := f.Load(ctx, 1, feed.ModeInitial); err != nil {
				return WrapExitError(ExitFailure, "failed to load your shelf", err)
			}

			return renderBooks(cmd.OutOrStdout(), f.Items(), time.Now(), rootOpts.Format)
		},
	}

	return cmd
}
