// Package version compares dotted version strings under semver precedence.
package version

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrMalformedVersion indicates a version string could not be parsed.
var ErrMalformedVersion = errors.New("malformed version")

// Result is the outcome of comparing two versions.
type Result int

const (
	Less Result = iota - 1
	Equal
	Greater
)

func (r Result) String() string {
	switch r {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare orders two dotted version strings. Missing trailing components
// are treated as zero, so "8.6" equals "8.6.0". Unparsable input returns
// an error wrapping ErrMalformedVersion.
func Compare(a, b string) (Result, error) {
	va, err := semver.NewVersion(a)
	if err != nil {
		return Equal, fmt.Errorf("%w: %q: %v", ErrMalformedVersion, a, err)
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return Equal, fmt.Errorf("%w: %q: %v", ErrMalformedVersion, b, err)
	}

	switch va.Compare(vb) {
	case -1:
		return Less, nil
	case 1:
		return Greater, nil
	default:
		return Equal, nil
	}
}
