package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npp-tools/npp-updater/internal/probe"
)

func newTestDownloader(dir string) *Downloader {
	d := New(dir, 5*time.Second)
	d.retry.MaxRetries = 0
	return d
}

func TestFetch(t *testing.T) {
	payload := []byte("installer bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	path, err := newTestDownloader(dir).Fetch(context.Background(), server.URL, probe.ArchX64)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if path != filepath.Join(dir, "installer_x64.exe") {
		t.Errorf("unexpected artifact path: %s", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("artifact content mismatch: %q", got)
	}
}

func TestFetchArchNaming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	dir := t.TempDir()
	path, err := newTestDownloader(dir).Fetch(context.Background(), server.URL, probe.ArchX86)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if filepath.Base(path) != "installer_x86.exe" {
		t.Errorf("unexpected artifact name: %s", filepath.Base(path))
	}
}

func TestFetchSlowBodyOutlastsHeaderTimeout(t *testing.T) {
	// The body trickles in over ~500ms; only connection and header
	// waits are bounded by the downloader timeout, so a 200ms timeout
	// must not abort a healthy stream.
	chunk := make([]byte, 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for range 10 {
			w.Write(chunk)
			flusher.Flush()
			time.Sleep(50 * time.Millisecond)
		}
	}))
	defer server.Close()

	d := New(t.TempDir(), 200*time.Millisecond)
	d.retry.MaxRetries = 0

	path, err := d.Fetch(context.Background(), server.URL, probe.ArchX64)
	if err != nil {
		t.Fatalf("slow but steady download should succeed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(10*len(chunk)) {
		t.Fatalf("artifact size = %d, want %d", info.Size(), 10*len(chunk))
	}
}

func TestFetchTruncatedBodyIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("short"))
	}))
	defer server.Close()

	_, err := newTestDownloader(t.TempDir()).Fetch(context.Background(), server.URL, probe.ArchX64)

	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected download.Error, got %T: %v", err, err)
	}
	if de.Kind != Network {
		t.Errorf("expected Network kind for truncated body, got %v", de.Kind)
	}
}

func TestFetchNon2xxIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestDownloader(t.TempDir()).Fetch(context.Background(), server.URL, probe.ArchX64)

	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected download.Error, got %T: %v", err, err)
	}
	if de.Kind != Network {
		t.Errorf("expected Network kind, got %v", de.Kind)
	}
}

func TestFetchUnreachableIsNetworkError(t *testing.T) {
	_, err := newTestDownloader(t.TempDir()).Fetch(context.Background(), "http://127.0.0.1:1", probe.ArchX64)

	var de *Error
	if !errors.As(err, &de) || de.Kind != Network {
		t.Fatalf("expected Network download.Error, got %v", err)
	}
}

func TestFetchUnwritableDirIsIOError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := newTestDownloader(dir).Fetch(context.Background(), server.URL, probe.ArchX64)

	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected download.Error, got %T: %v", err, err)
	}
	if de.Kind != IO {
		t.Errorf("expected IO kind, got %v", de.Kind)
	}
}
