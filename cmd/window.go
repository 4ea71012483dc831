package cmd

import (
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/emeursing/catfetch/internal/storage"
	"github.com/emeursing/catfetch/internal/window"
)

func newWindowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the graphical cat downloader",
		Long: `Opens a small window with a caption field, a button to fetch a cat and a
button to open the cat photos folder. Each cat opens in its own window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, err := opts.newFetcher(cmd)
			if err != nil {
				return err
			}

			a := app.NewWithID("com.emeursing.catfetch")
			ui := window.New(cmd.Context(), a, fetcher, storage.New(), fetcher.OutputDir)
			ui.Run()
			return nil
		},
	}
}
