// Package session drives the interactive fetch/search cycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emeursing/catfetch/internal/images"
	"github.com/emeursing/catfetch/internal/prompt"
	"github.com/emeursing/catfetch/internal/storage"
	"github.com/emeursing/catfetch/internal/viewer"
)

const (
	captionPrompt = "Would you like the cat to say something? If yes, type the message (or press Enter to skip): "
	actionPrompt  = "Would you like to download another cat image? (yes/no/search): "
	queryPrompt   = "Enter part of the filename to search for: "
	choicePrompt  = "Enter the number of an image to open it, or press Enter to cancel: "
)

// State is a step of the loop
type State int

const (
	StateFetching State = iota
	StateAwaitingAction
	StateSearching
	StateDone
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateAwaitingAction:
		return "awaiting_action"
	case StateSearching:
		return "searching"
	default:
		return "done"
	}
}

// Fetcher saves one image and returns its path
type Fetcher interface {
	Fetch(ctx context.Context, caption string) (string, error)
}

// Loop is the interactive cycle. The Session it appends to belongs to the caller.
type Loop struct {
	Fetcher  Fetcher
	Prompter prompt.Prompter
	Viewer   viewer.Viewer
	Session  *storage.Session
	Matcher  storage.Matcher
	Out      io.Writer
}

func New(fetcher Fetcher, prompter prompt.Prompter, v viewer.Viewer, s *storage.Session, out io.Writer) *Loop {
	if v == nil {
		v = viewer.Nop
	}
	return &Loop{
		Fetcher:  fetcher,
		Prompter: prompter,
		Viewer:   v,
		Session:  s,
		Matcher:  storage.Substring,
		Out:      out,
	}
}

// Run fetches a first image and then repeats until the user quits or input ends.
// Only a failure to write an image to disk is returned as an error.
func (l *Loop) Run(ctx context.Context) error {
	state := StateFetching
	for {
		if ctx.Err() != nil {
			state = StateDone
		}
		slog.Debug("Session loop", "state", state.String(), "images", l.Session.Len())

		var err error
		switch state {
		case StateFetching:
			err = l.fetch(ctx)
			state = StateAwaitingAction
		case StateAwaitingAction:
			state, err = l.awaitAction()
		case StateSearching:
			err = l.search()
			state = StateAwaitingAction
		case StateDone:
			fmt.Fprintln(l.Out, "Goodbye!")
			return nil
		}

		if errors.Is(err, io.EOF) {
			state = StateDone
			continue
		}
		if err != nil {
			return err
		}
	}
}

func (l *Loop) fetch(ctx context.Context) error {
	caption, err := l.Prompter.Prompt(captionPrompt)
	if err != nil {
		return err
	}

	path, err := l.Fetcher.Fetch(ctx, caption)
	if err != nil {
		var ioErr *images.LocalIOError
		if errors.As(err, &ioErr) {
			return err
		}
		fmt.Fprintln(l.Out, images.Describe(err))
		return nil
	}

	l.Session.Add(path)
	fmt.Fprintf(l.Out, "Saved cat image to: %s\n", path)
	if err := l.Viewer.Show(path); err != nil {
		fmt.Fprintf(l.Out, "Error opening image: %v\n", err)
	}
	return nil
}

func (l *Loop) awaitAction() (State, error) {
	for {
		input, err := l.Prompter.Prompt(actionPrompt)
		if err != nil {
			return StateDone, err
		}

		switch ParseAction(input) {
		case ActionContinue:
			return StateFetching, nil
		case ActionSearch:
			return StateSearching, nil
		case ActionQuit:
			return StateDone, nil
		default:
			fmt.Fprintln(l.Out, "Please input a valid option: yes, no, or search.")
		}
	}
}
