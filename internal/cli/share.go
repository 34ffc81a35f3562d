package cli

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bookworm/internal/api"
)

// ShareOptions holds flags for the share command.
type ShareOptions struct {
	*RootOptions
	Title   string
	Caption string
	Rating  int
	Price   float64
	Image   string
}

// NewShareCommand creates the share command.
func NewShareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share a new book recommendation",
		Long: `Share a book recommendation with a cover image.

The image file is read and embedded into the request as a base64 data
URL; the backend stores it and serves back a hosted URL.

Example:
  bookworm share --title "The Name of the Wind" --rating 5 --price 499 \
    --caption "A beautifully told coming-of-age fantasy." \
    --image ./cover.jpg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShare(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&opts.Caption, "caption", "", "your recommendation text (required)")
	cmd.Flags().IntVar(&opts.Rating, "rating", 0, "rating from 1 to 5 (required)")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "price you paid")
	cmd.Flags().StringVar(&opts.Image, "image", "", "path to a cover image file (required)")
	for _, f := range []string{"title", "caption", "rating", "image"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func runShare(cmd *cobra.Command, opts *ShareOptions) error {
	// Field validation belongs here, not in the session or feed layers.
	if opts.Rating < 1 || opts.Rating > 5 {
		return NewExitError(ExitCommandError, "rating must be between 1 and 5")
	}
	if opts.Price < 0 {
		return NewExitError(ExitCommandError, "price must not be negative")
	}

	dataURL, err := imageDataURL(opts.Image)
	if err != nil {
		return WrapExitError(ExitCommandError, "read image", err)
	}

	ctx := cmd.Context()
	app, err := openApp(ctx, opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "setup failed", err)
	}
	defer app.Close()

	if err := app.requireSession(ctx); err != nil {
		return err
	}

	book, err := app.Client.CreateBook(ctx, app.Session.Token(), api.BookDraft{
		Title:   opts.Title,
		Caption: opts.Caption,
		Rating:  opts.Rating,
		Price:   opts.Price,
		Image:   dataURL,
	})
	if err != nil {
		return NewExitError(ExitFailure, api.MessageOr(err, "failed to share the recommendation"))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Shared %q (id: %s)\n", book.Title, book.ID)
	return nil
}

// imageDataURL reads the file and encodes it as a data URL, guessing the
// media type from the file extension (jpeg when unknown).
func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" || !strings.HasPrefix(mediaType, "image/") {
		mediaType = "image/jpeg"
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
