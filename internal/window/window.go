// Package window is the graphical variant: a caption entry with buttons to
// fetch an image and to open the output folder.
package window

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/emeursing/catfetch/internal/images"
	"github.com/emeursing/catfetch/internal/session"
	"github.com/emeursing/catfetch/internal/storage"
)

// UI holds the widgets of the downloader window
type UI struct {
	fetcher   session.Fetcher
	session   *storage.Session
	outputDir string
	ctx       context.Context

	app    fyne.App
	window fyne.Window

	captionEntry *widget.Entry
	fetchButton  *widget.Button
	folderButton *widget.Button
	statusLabel  *widget.Label

	// pending counts fetches whose result has not reached the widgets yet
	pending sync.WaitGroup
}

// New creates the window on a. Fetched paths are added to s.
func New(ctx context.Context, a fyne.App, fetcher session.Fetcher, s *storage.Session, outputDir string) *UI {
	ui := &UI{
		fetcher:      fetcher,
		session:      s,
		outputDir:    outputDir,
		ctx:          ctx,
		app:          a,
		window:       a.NewWindow("Cat Image Downloader"),
		captionEntry: widget.NewEntry(),
		statusLabel:  widget.NewLabel(""),
	}
	ui.captionEntry.SetPlaceHolder("Leave empty for a plain cat")
	ui.captionEntry.OnSubmitted = func(string) { ui.fetch() }
	ui.fetchButton = widget.NewButton("Get Cat Image", ui.fetch)
	ui.folderButton = widget.NewButton("Open Cat Photos Folder", ui.openFolder)

	ui.window.SetContent(container.NewVBox(
		widget.NewLabel("Enter a message for the cat:"),
		ui.captionEntry,
		ui.fetchButton,
		ui.folderButton,
		ui.statusLabel,
	))
	ui.window.Resize(fyne.NewSize(400, 200))
	return ui
}

// Run shows the window and blocks until it is closed
func (ui *UI) Run() {
	go func() {
		<-ui.ctx.Done()
		fyne.Do(ui.app.Quit)
	}()
	ui.window.ShowAndRun()
}

func (ui *UI) fetch() {
	caption := ui.captionEntry.Text
	ui.fetchButton.Disable()
	ui.statusLabel.SetText("Fetching...")

	ui.pending.Add(1)
	go func() {
		defer ui.pending.Done()
		path, err := ui.fetcher.Fetch(ui.ctx, caption)
		if err == nil {
			ui.session.Add(path)
		}

		fyne.DoAndWait(func() {
			ui.fetchButton.Enable()
			if err != nil {
				ui.statusLabel.SetText("")
				dialog.ShowError(errors.New(images.Describe(err)), ui.window)
				return
			}
			ui.statusLabel.SetText(fmt.Sprintf("%d image(s) this session", ui.session.Len()))
			ui.showImage(path)
			dialog.ShowInformation("Success", "Saved cat image to: "+path, ui.window)
		})
	}()
}

func (ui *UI) showImage(path string) {
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain

	w := ui.app.NewWindow(filepath.Base(path))
	w.SetContent(img)
	w.Resize(fyne.NewSize(600, 600))
	w.Show()
}

func (ui *UI) openFolder() {
	if err := os.MkdirAll(ui.outputDir, 0755); err != nil {
		dialog.ShowError(fmt.Errorf("could not create folder: %w", err), ui.window)
		return
	}
	folderURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(ui.outputDir)}
	if err := ui.app.OpenURL(folderURL); err != nil {
		slog.Error("Could not open folder", "dir", ui.outputDir, "error", err)
		dialog.ShowError(fmt.Errorf("could not open folder: %w", err), ui.window)
	}
}
