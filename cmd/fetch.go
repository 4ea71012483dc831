package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emeursing/catfetch/internal/viewer"
)

func newFetchCmd(opts *options) *cobra.Command {
	var noView bool

	cmd := &cobra.Command{
		Use:   "fetch [caption...]",
		Short: "Fetch a single cat image",
		Long: `Downloads one cat image, with the arguments joined into a caption if any
are given, saves it and opens it.`,
		Example: `  # A plain cat
  catfetch fetch

  # A cat that says hello world
  catfetch fetch hello world`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, err := opts.newFetcher(cmd)
			if err != nil {
				return err
			}

			path, err := fetcher.Fetch(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved cat image to: %s\n", path)

			if noView {
				return nil
			}
			if err := viewer.NewSystem(opts.cfg.Opener).Show(path); err != nil {
				slog.Warn("Could not open image", "path", path, "error", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noView, "no-view", false, "Do not open the image after saving it")

	return cmd
}
