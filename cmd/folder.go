package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emeursing/catfetch/internal/viewer"
)

func newFolderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "folder",
		Short: "Open the cat photos folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.cfg.ResolveOutputDir()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := viewer.NewSystem(opts.cfg.Opener).OpenFolder(dir); err != nil {
				return fmt.Errorf("could not open folder: %w", err)
			}
			return nil
		},
	}
}
