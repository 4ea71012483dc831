package viewer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Viewer displays a saved image
type Viewer interface {
	Show(path string) error
}

// Func adapts a plain function to a Viewer
type Func func(path string) error

func (f Func) Show(path string) error {
	return f(path)
}

// Nop is a Viewer that displays nothing
var Nop Viewer = Func(func(string) error { return nil })

// System hands files and folders to the desktop's default application
type System struct {
	// Opener overrides the platform command, e.g. "feh" or "open -a Preview"
	Opener string
}

// NewSystem creates a viewer using opener, or the platform default when empty
func NewSystem(opener string) *System {
	return &System{Opener: opener}
}

// Show opens an image in the default image viewer
func (s *System) Show(path string) error {
	return s.open(path)
}

// OpenFolder opens a directory in the file manager
func (s *System) OpenFolder(dir string) error {
	return s.open(dir)
}

func (s *System) open(target string) error {
	name, args := s.command()
	args = append(args, target)

	slog.Debug("Opening with system viewer", "command", name, "target", target)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	// The viewer outlives us; reap it in the background
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (s *System) command() (string, []string) {
	if fields := strings.Fields(s.Opener); len(fields) > 0 {
		return fields[0], fields[1:]
	}
	switch runtime.GOOS {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	case "darwin":
		return "open", nil
	default:
		return "xdg-open", nil
	}
}
