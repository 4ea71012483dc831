package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emeursing/catfetch/internal/storage"
)

func (l *Loop) search() error {
	if l.Session.Len() == 0 {
		fmt.Fprintln(l.Out, "No images in this session.")
		return nil
	}

	query, err := l.Prompter.Prompt(queryPrompt)
	if err != nil {
		return err
	}

	matches, err := l.Session.Search(query, l.Matcher)
	switch {
	case errors.Is(err, storage.ErrNoMatches):
		fmt.Fprintln(l.Out, "No matches found.")
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintln(l.Out, "Matching images:")
	for _, m := range matches {
		fmt.Fprintf(l.Out, "[%d] %s\n", m.Index, m.Path)
	}
	return l.choose(matches)
}

// choose asks for a match to open until one is shown or the user cancels
func (l *Loop) choose(matches []storage.Match) error {
	for {
		choice, err := l.Prompter.Prompt(choicePrompt)
		if err != nil {
			return err
		}
		if choice == "" {
			return nil
		}

		index, err := parseIndex(choice)
		if err != nil {
			fmt.Fprintln(l.Out, "Please enter a valid number or press Enter to cancel.")
			continue
		}
		if index < 0 || index >= len(matches) {
			fmt.Fprintln(l.Out, "Invalid selection. Try again.")
			continue
		}

		if err := l.Viewer.Show(matches[index].Path); err != nil {
			fmt.Fprintf(l.Out, "Error opening image: %v\n", err)
			continue
		}
		return nil
	}
}

// parseIndex accepts plain decimal digits only; signs are rejected
func parseIndex(s string) (int, error) {
	if strings.TrimLeft(s, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}
