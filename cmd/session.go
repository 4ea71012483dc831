package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/emeursing/catfetch/internal/prompt"
	"github.com/emeursing/catfetch/internal/session"
	"github.com/emeursing/catfetch/internal/storage"
	"github.com/emeursing/catfetch/internal/viewer"
)

const banner = `# catfetch

Every answer at the *caption* prompt becomes the cat's speech bubble;
press **Enter** for a plain cat.

After each cat you can answer:

- **yes** fetch another cat
- **search** find a cat from this session by part of its file name
- **no** quit

Images are saved to ` + "`%s`" + `.
`

func newSessionCmd(opts *options) *cobra.Command {
	var noView bool
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Fetch cats interactively and search the ones saved this run",
		Long: `Starts an interactive session. Each round asks for an optional caption,
downloads a cat and opens it. Between rounds you can fetch again, search the
images saved during this session, or quit.`,
		Example: `  # Start a session
  catfetch session

  # Match search queries loosely (letters in order, gaps allowed)
  catfetch session --fuzzy

  # Save without opening an image viewer
  catfetch session --no-view --output ./cats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher, err := opts.newFetcher(cmd)
			if err != nil {
				return err
			}

			var p prompt.Prompter
			if cmd.InOrStdin() == os.Stdin && prompt.IsTerminal() {
				rl, err := prompt.NewReadline()
				if err != nil {
					return err
				}
				defer rl.Close()
				p = rl
			} else {
				p = prompt.NewLines(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			var v viewer.Viewer = viewer.NewSystem(opts.cfg.Opener)
			if noView {
				v = viewer.Nop
			}

			printBanner(cmd.OutOrStdout(), fetcher.OutputDir)

			loop := session.New(fetcher, p, v, storage.New(), cmd.OutOrStdout())
			if fuzzy {
				loop.Matcher = storage.Fuzzy
			}
			return loop.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noView, "no-view", false, "Do not open images after saving them")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Use fuzzy matching when searching")

	return cmd
}

func printBanner(w io.Writer, outputDir string) {
	text := fmt.Sprintf(banner, outputDir)

	renderMode := "dark"
	if os.Getenv("COLOR") != "" {
		renderMode = os.Getenv("COLOR")
	}

	out, err := glamour.Render(text, renderMode)
	if err == nil && os.Getenv("NO_COLOR") == "" {
		fmt.Fprint(w, out)
	} else {
		fmt.Fprintln(w, text)
	}
}
