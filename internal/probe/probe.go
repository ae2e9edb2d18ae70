// Package probe reads the installed Notepad++ version and architecture
// from the platform configuration store.
package probe

import (
	"errors"
	"strings"
)

// ErrNotInstalled indicates Notepad++ was not found on the system.
// This is a normal outcome, not a fault.
var ErrNotInstalled = errors.New("notepad++ not installed")

// Arch is the installed product architecture.
type Arch string

const (
	ArchX86 Arch = "x86"
	ArchX64 Arch = "x64"
)

// Installed describes the locally installed product.
type Installed struct {
	Version string
	Arch    Arch
}

// Prober reads installed-product metadata from the local system.
type Prober struct{}

func New() *Prober {
	return &Prober{}
}

// archFromDisplayName derives the architecture from the registry display
// name; the x64 build advertises itself with an "x64" marker.
func archFromDisplayName(name string) Arch {
	if strings.Contains(name, "x64") {
		return ArchX64
	}
	return ArchX86
}
