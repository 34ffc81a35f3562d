package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Username string
	Email    string
	Phone    string
	Password string
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Long: `Create a BookWorm account. On success the new session is stored
locally, exactly as with 'bookworm login'.

Example:
  bookworm register --username maria --email maria@example.com \
    --phone "+1 555 0101" --password secret`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Username, "username", "", "display name (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "contact phone number (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password (required)")
	for _, f := range []string{"username", "email", "phone", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func runRegister(cmd *cobra.Command, opts *RegisterOptions) error {
	ctx := cmd.Context()
	app, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer app.Close()

	res := app.Session.Register(ctx, opts.Username, opts.Email, opts.Phone, opts.Password)
	if !res.OK {
		return NewExitError(ExitFailure, res.Message)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, @%s! You are now logged in.\n", app.Session.User().Username)
	return nil
}
