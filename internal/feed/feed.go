// Package feed queries the remote release feed for the latest version
// and its downloadable assets.
package feed

import (
	"fmt"
)

// Asset is one downloadable artifact attached to a release.
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
}

// Release is the latest published release: its version tag and assets,
// in feed order.
type Release struct {
	Tag    string
	Assets []Asset
}

// FetchErrorKind classifies feed failures.
type FetchErrorKind int

const (
	// FetchNetwork covers transport errors, timeouts, and non-2xx responses.
	FetchNetwork FetchErrorKind = iota
	// FetchMalformed covers responses that cannot be parsed.
	FetchMalformed
)

// FetchError reports a failed feed query.
type FetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchMalformed:
		return fmt.Sprintf("malformed feed response: %v", e.Err)
	default:
		return fmt.Sprintf("feed request failed: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

type releaseResponse struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}
