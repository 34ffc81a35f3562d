package cli

import (
	"time"

	"github.com/spf13/cobra"

	"bookworm/internal/feed"
)

// FeedOptions holds flags for the feed command.
type FeedOptions struct {
	*RootOptions
	Pages int
}

// NewFeedCommand creates the feed command.
func NewFeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse the community feed",
		Long: `Browse the paginated community feed of book recommendations.

Loads the first page, then keeps loading further pages up to --pages
(0 means all pages the backend reports).

Example:
  bookworm feed --pages 3
  bookworm feed --pages 0 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeed(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Pages, "pages", 1, "number of pages to load (0 = all)")

	return cmd
}

func runFeed(cmd *cobra.Command, opts *FeedOptions) error {
	ctx := cmd.Context()
	app, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer app.Close()

	if err := app.requireSession(ctx); err != nil {
		return err
	}

	f := feed.New(&feed.GlobalSource{Client: app.Client, Tokens: app.Session}, app.Config.PageSize)
	if err := f.Load(ctx, 1, feed.ModeInitial); err != nil {
		return WrapExitError(ExitFailure, "failed to load feed", err)
	}

	for f.HasMore() && (opts.Pages <= 0 || f.Page() < opts.Pages) {
		if err := f.LoadMore(ctx); err != nil {
			return WrapExitError(ExitFailure, "failed to load more", err)
		}
	}

	return renderBooks(cmd.OutOrStdout(), f.Items(), time.Now(), opts.Format)
}
