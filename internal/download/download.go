// Package download streams release artifacts to local storage.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/npp-tools/npp-updater/internal/httputil"
	"github.com/npp-tools/npp-updater/internal/logging"
	"github.com/npp-tools/npp-updater/internal/probe"
)

var log = logging.L("download")

// ErrorKind classifies download failures.
type ErrorKind int

const (
	// Network covers transport errors and non-2xx responses.
	Network ErrorKind = iota
	// IO covers local file create/write failures.
	IO
)

// Error reports a failed artifact download.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case IO:
		return fmt.Sprintf("saving installer failed: %v", e.Err)
	default:
		return fmt.Sprintf("installer download failed: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Downloader streams installer artifacts into a local directory.
type Downloader struct {
	dir    string
	client *http.Client
	retry  httputil.RetryConfig
}

// New creates a Downloader writing into dir. The timeout bounds dialing,
// TLS, and response headers only; the body stream is unbounded so large
// installers on slow links can finish.
func New(dir string, timeout time.Duration) *Downloader {
	return &Downloader{
		dir: dir,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
			},
		},
		retry: httputil.DefaultRetryConfig(),
	}
}

// Fetch streams the artifact at url to installer_{arch}.exe in the
// download directory and returns the local path. The body is copied
// straight to disk, never buffered whole in memory. A partial file from
// a failed download is left in place; it is never handed to the
// installer stage.
func (d *Downloader) Fetch(ctx context.Context, url string, arch probe.Arch) (string, error) {
	resp, err := httputil.Get(ctx, d.client, url, nil, d.retry)
	if err != nil {
		return "", &Error{Kind: Network, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Kind: Network, Err: fmt.Errorf("download returned status %d", resp.StatusCode)}
	}

	path := filepath.Join(d.dir, fmt.Sprintf("installer_%s.exe", arch))
	file, err := os.Create(path)
	if err != nil {
		return "", &Error{Kind: IO, Err: err}
	}

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		file.Close()
		// Write errors surface as path errors; anything else came from
		// reading the response body.
		kind := Network
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			kind = IO
		}
		return "", &Error{Kind: kind, Err: err}
	}

	// A failed close can mean unflushed bytes; the artifact must never
	// reach the installer stage truncated.
	if err := file.Close(); err != nil {
		return "", &Error{Kind: IO, Err: err}
	}

	log.Info("installer downloaded", "path", path, "bytes", written)
	return path, nil
}
