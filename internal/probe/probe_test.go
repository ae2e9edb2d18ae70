package probe

import (
	"errors"
	"runtime"
	"testing"
)

func TestArchFromDisplayName(t *testing.T) {
	cases := map[string]Arch{
		"Notepad++ (64-bit x64)": ArchX64,
		"Notepad++ (x64)":        ArchX64,
		"Notepad++":              ArchX86,
		"Notepad++ (32-bit)":     ArchX86,
	}
	for name, want := range cases {
		if got := archFromDisplayName(name); got != want {
			t.Errorf("archFromDisplayName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestProbeNotInstalled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("registry state not controllable in tests")
	}

	_, err := New().Probe()
	if !errors.Is(err, ErrNotInstalled) {
		t.Fatalf("expected ErrNotInstalled, got %v", err)
	}
}
