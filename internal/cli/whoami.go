package cli

import (
	"github.com/spf13/cobra"
)

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "whoami",
		Short:         "Show the signed-in user",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := openApp(ctx, rootOpts)
			if err != nil {
				return WrapExitError(ExitCommandError, "setup failed", err)
			}
			defer app.Close()

			app.Session.CheckAuth(ctx)
			user := app.Session.User()
			if user == nil {
				return NewExitError(ExitFailure, "not logged in")
			}
			return renderUser(cmd.OutOrStdout(), user, rootOpts.Format)
		},
	}

	return cmd
}
