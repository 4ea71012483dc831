package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// DefaultBaseURL is the cat-as-a-service endpoint used when none is configured
const DefaultBaseURL = "https://cataas.com"

// Fetcher retrieves cat images from the image service and saves them to OutputDir
type Fetcher struct {
	HTTPClient *http.Client
	BaseURL    string
	OutputDir  string

	// Progress receives a download progress bar when non-nil
	Progress io.Writer

	// Now returns the time used to name saved files
	Now func() time.Time
}

// NewFetcher creates a new image fetcher. A zero timeout means the request
// may block until the server answers or the context is cancelled.
func NewFetcher(baseURL, outputDir string, timeout time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		OutputDir: outputDir,
		Now:       time.Now,
	}
}

// RequestURL builds the service URL for a caption. An empty or
// whitespace-only caption requests a plain image.
func (f *Fetcher) RequestURL(caption string) string {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return f.BaseURL + "/cat"
	}
	return f.BaseURL + "/cat/says/" + url.PathEscape(caption)
}

// Filename returns the name an image fetched at t is saved under
func Filename(t time.Time) string {
	return fmt.Sprintf("cat_%s.jpg", t.Format("20060102_150405"))
}

// Fetch requests one image and streams the body verbatim to the output directory.
// It returns the saved path, or a *StatusError, *TransportError or *LocalIOError.
func (f *Fetcher) Fetch(ctx context.Context, caption string) (string, error) {
	reqURL := f.RequestURL(caption)
	slog.Debug("Requesting cat image", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", &TransportError{URL: reqURL, Err: err}
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		slog.Warn("Cat image request failed", "url", reqURL, "error", err)
		return "", &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Image service returned error status", "url", reqURL, "status", resp.StatusCode)
		return "", &StatusError{Code: resp.StatusCode, URL: reqURL}
	}

	var body io.Reader = resp.Body
	if f.Progress != nil {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetWriter(f.Progress),
			progressbar.OptionSetDescription("downloading cat"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			_ = bar.Finish()
		}()
		body = io.TeeReader(resp.Body, bar)
	}

	return f.save(reqURL, body)
}

// sourceReader remembers a read failure so it can be told apart from a
// failure writing the file.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

func (f *Fetcher) save(reqURL string, body io.Reader) (string, error) {
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return "", &LocalIOError{Path: f.OutputDir, Err: err}
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	outputPath := filepath.Join(f.OutputDir, Filename(now()))

	file, err := os.Create(outputPath)
	if err != nil {
		return "", &LocalIOError{Path: outputPath, Err: err}
	}

	src := &sourceReader{r: body}
	written, err := io.Copy(file, src)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(outputPath)
		if src.err != nil {
			slog.Warn("Cat image download interrupted", "url", reqURL, "error", src.err)
			return "", &TransportError{URL: reqURL, Err: fmt.Errorf("failed to read image data: %w", src.err)}
		}
		return "", &LocalIOError{Path: outputPath, Err: err}
	}

	slog.Info("Saved cat image", "path", outputPath, "bytes", written)
	return outputPath, nil
}
