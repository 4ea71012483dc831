package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/emeursing/catfetch/internal/config"
	"github.com/emeursing/catfetch/internal/images"
)

// options are the persistent flags shared by every subcommand
type options struct {
	configPath string
	baseURL    string
	outputDir  string
	verbose    bool
	progress   bool

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "catfetch",
		Short: "Fetch cat pictures, optionally with a caption, and browse them",
		Long: `catfetch requests cat images from cataas.com, saves them to your
"cat photos" folder on the Desktop and opens them in your image viewer.

Run "catfetch session" for the interactive prompt, or "catfetch window"
for the small graphical version.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.apply(cfg)

			level := cfg.SlogLevel()
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "catfetch.yaml", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Image service URL (default "+images.DefaultBaseURL+")")
	cmd.PersistentFlags().StringVarP(&opts.outputDir, "output", "o", "", "Directory to save images in (default \""+config.DefaultOutputDir+"\")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.progress, "progress", false, "Show a progress bar while downloading")

	cmd.AddCommand(newSessionCmd(opts))
	cmd.AddCommand(newFetchCmd(opts))
	cmd.AddCommand(newWindowCmd(opts))
	cmd.AddCommand(newFolderCmd(opts))

	return cmd
}

// apply layers command-line flags over the loaded configuration
func (o *options) apply(cfg *config.Config) {
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}
	if o.progress {
		cfg.Progress = true
	}
	o.cfg = cfg
}

// newFetcher builds the image fetcher for a command, sending progress to stderr when enabled
func (o *options) newFetcher(cmd *cobra.Command) (*images.Fetcher, error) {
	fetcher, err := o.cfg.NewFetcher()
	if err != nil {
		return nil, err
	}
	if o.cfg.Progress {
		fetcher.Progress = cmd.ErrOrStderr()
	}
	return fetcher, nil
}
