package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/npp-tools/npp-updater/internal/httputil"
	"github.com/npp-tools/npp-updater/internal/logging"
)

var log = logging.L("feed")

// Client fetches release metadata from a fixed feed endpoint.
type Client struct {
	url    string
	client *http.Client
	retry  httputil.RetryConfig
}

// NewClient creates a feed client for the given endpoint with a bounded
// per-request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		retry:  httputil.DefaultRetryConfig(),
	}
}

// Latest queries the feed once and returns the latest release. Each call
// is independent; nothing is cached across calls.
func (c *Client) Latest(ctx context.Context) (Release, error) {
	resp, err := httputil.Get(ctx, c.client, c.url, nil, c.retry)
	if err != nil {
		return Release{}, &FetchError{Kind: FetchNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, &FetchError{Kind: FetchNetwork, Err: fmt.Errorf("feed returned status %d", resp.StatusCode)}
	}

	var body releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Release{}, &FetchError{Kind: FetchMalformed, Err: err}
	}

	tag := strings.TrimPrefix(body.TagName, "v")
	if tag == "" {
		return Release{}, &FetchError{Kind: FetchMalformed, Err: fmt.Errorf("feed response missing tag_name")}
	}

	log.Debug("fetched latest release", "tag", tag, "assets", len(body.Assets))
	return Release{Tag: tag, Assets: body.Assets}, nil
}
