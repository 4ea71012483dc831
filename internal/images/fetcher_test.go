package images

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
}

func TestRequestURL(t *testing.T) {
	f := NewFetcher("https://cataas.com/", t.TempDir(), 0)

	tests := []struct {
		name     string
		caption  string
		expected string
	}{
		{
			name:     "no caption",
			caption:  "",
			expected: "https://cataas.com/cat",
		},
		{
			name:     "whitespace caption is treated as none",
			caption:  "   \t ",
			expected: "https://cataas.com/cat",
		},
		{
			name:     "simple caption",
			caption:  "hello",
			expected: "https://cataas.com/cat/says/hello",
		},
		{
			name:     "caption is path escaped",
			caption:  "hello world?",
			expected: "https://cataas.com/cat/says/hello%20world%3F",
		},
		{
			name:     "slash stays inside the segment",
			caption:  "yes/no",
			expected: "https://cataas.com/cat/says/yes%2Fno",
		},
		{
			name:     "caption is trimmed",
			caption:  "  meow  ",
			expected: "https://cataas.com/cat/says/meow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.RequestURL(tt.caption)
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestNewFetcherDefaultsBaseURL(t *testing.T) {
	f := NewFetcher("", "out", 0)
	if f.BaseURL != DefaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", DefaultBaseURL, f.BaseURL)
	}
	if f.HTTPClient.Timeout != 0 {
		t.Errorf("Expected no timeout, got %v", f.HTTPClient.Timeout)
	}
}

func TestFilename(t *testing.T) {
	expected := "cat_20240102_030405.jpg"
	if result := Filename(fixedNow()); result != expected {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestFetchSavesBody(t *testing.T) {
	imageBytes := []byte("\xff\xd8\xff\xe0 not really a jpeg")
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write(imageBytes)
	}))
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "cat photos")
	f := NewFetcher(server.URL, outputDir, 0)
	f.Now = fixedNow

	path, err := f.Fetch(context.Background(), "hi there")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotPath != "/cat/says/hi%20there" {
		t.Errorf("Expected request path /cat/says/hi%%20there, got %s", gotPath)
	}

	expectedPath := filepath.Join(outputDir, "cat_20240102_030405.jpg")
	if path != expectedPath {
		t.Errorf("Expected path %s, got %s", expectedPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(data, imageBytes) {
		t.Errorf("Saved bytes differ from response body")
	}
}

func TestFetchAcceptsAny2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("img"))
	}))
	defer server.Close()

	f := NewFetcher(server.URL, t.TempDir(), 0)
	f.Now = fixedNow

	if _, err := f.Fetch(context.Background(), ""); err != nil {
		t.Errorf("Expected 202 to be accepted, got %v", err)
	}
}

func TestFetchWithProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("c"), 4096))
	}))
	defer server.Close()

	var progress bytes.Buffer
	f := NewFetcher(server.URL, t.TempDir(), 0)
	f.Now = fixedNow
	f.Progress = &progress

	path, err := f.Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat saved file: %v", err)
	}
	if info.Size() != 4096 {
		t.Errorf("Expected 4096 bytes, got %d", info.Size())
	}
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "cat photos")
	f := NewFetcher(server.URL, outputDir, 0)

	_, err := f.Fetch(context.Background(), "")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", statusErr.Code)
	}

	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Errorf("Expected output directory not to be created on failure")
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	f := NewFetcher(baseURL, t.TempDir(), 0)

	_, err := f.Fetch(context.Background(), "")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected *TransportError, got %T: %v", err, err)
	}
}

func TestFetchLocalIOError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))
	defer server.Close()

	// A regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	f := NewFetcher(server.URL, filepath.Join(blocker, "cat photos"), 0)

	_, err := f.Fetch(context.Background(), "")
	var ioErr *LocalIOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected *LocalIOError, got %T: %v", err, err)
	}
}

func TestFetchTruncatedBodyRemovesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more than is sent so the client sees an unexpected EOF
		w.Header().Set("Content-Length", "1024")
		_, _ = w.Write([]byte("partial"))
	}))
	defer server.Close()

	outputDir := t.TempDir()
	f := NewFetcher(server.URL, outputDir, 0)
	f.Now = fixedNow

	_, err := f.Fetch(context.Background(), "")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected *TransportError, got %T: %v", err, err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("Failed to read output directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files left behind, got %d", len(entries))
	}
}
