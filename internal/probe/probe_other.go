//go:build !windows

package probe

// Probe always reports not installed on non-Windows platforms; the
// product registers itself only in the Windows registry.
func (p *Prober) Probe() (Installed, error) {
	return Installed{}, ErrNotInstalled
}
