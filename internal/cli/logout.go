package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Erase the locally stored session",
		Long: `Erase the stored user and token. Logging out while already signed
out is a no-op and still succeeds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := openApp(ctx, rootOpts)
			if err != nil {
				return WrapExitError(ExitCommandError, "setup failed", err)
			}
			defer app.Close()

			app.Session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}

	return cmd
}
