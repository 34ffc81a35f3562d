package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session locally",
		Long: `Sign in with an email/password pair.

On success the session (user and token) is stored in the local database
and reused by every other command until 'bookworm logout'.

Example:
  bookworm login --email maria@example.com --password secret`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runLogin(cmd *cobra.Command, opts *LoginOptions) error {
	ctx := cmd.Context()
	app, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer app.Close()

	res := app.Session.Login(ctx, opts.Email, opts.Password)
	if !res.OK {
		return NewExitError(ExitFailure, res.Message)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as @%s\n", app.Session.User().Username)
	return nil
}
