package feed

import (
	"strings"

	"github.com/npp-tools/npp-updater/internal/probe"
)

// Asset name suffixes per architecture. The x86 installer carries no
// architecture marker, so it is matched by the generic installer suffix.
const (
	suffixX64 = "x64.exe"
	suffixX86 = "Installer.exe"
)

// SelectAsset picks the installer asset for the given architecture.
// Order-sensitive: the first matching asset wins. ok is false when no
// asset matches; that is an expected outcome, not an error.
func SelectAsset(assets []Asset, arch probe.Arch) (Asset, bool) {
	suffix := suffixX86
	if arch == probe.ArchX64 {
		suffix = suffixX64
	}

	for _, asset := range assets {
		if strings.HasSuffix(asset.Name, suffix) {
			return asset, true
		}
	}
	return Asset{}, false
}
