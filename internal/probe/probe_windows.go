//go:build windows

package probe

import (
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/npp-tools/npp-updater/internal/logging"
)

var log = logging.L("probe")

// Registration paths for Notepad++ on a 64-bit system. The WOW6432Node
// path holds the 32-bit build; both are tried in order.
var uninstallPaths = []string{
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall\Notepad++`,
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\Notepad++`,
}

// Probe reads the installed version and architecture from the registry.
// Returns ErrNotInstalled when no known path yields both a display name
// and a display version.
func (p *Prober) Probe() (Installed, error) {
	for _, path := range uninstallPaths {
		inst, ok := readUninstallKey(path)
		if ok {
			log.Debug("found installation", "path", path, "version", inst.Version, "arch", inst.Arch)
			return inst, nil
		}
	}
	return Installed{}, ErrNotInstalled
}

func readUninstallKey(path string) (Installed, bool) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.READ)
	if err != nil {
		return Installed{}, false
	}
	defer key.Close()

	name, err := readStringValue(key, "DisplayName")
	if err != nil || name == "" {
		return Installed{}, false
	}

	ver, err := readStringValue(key, "DisplayVersion")
	if err != nil || ver == "" {
		return Installed{}, false
	}

	return Installed{Version: ver, Arch: archFromDisplayName(name)}, true
}

func readStringValue(key registry.Key, name string) (string, error) {
	val, _, err := key.GetStringValue(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(val), nil
}
