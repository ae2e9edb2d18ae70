package installer

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeScript creates an executable stand-in installer that exits with
// the given code.
func writeScript(t *testing.T, exitCode string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("script-based installer stand-in requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "installer_x64.exe")
	content := "#!/bin/sh\nexit " + exitCode + "\n"
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSuccessRemovesArtifact(t *testing.T) {
	path := writeScript(t, "0")

	if err := New().Run(path); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("artifact should be removed after successful install")
	}
}

func TestRunProcessFailureRemovesArtifact(t *testing.T) {
	path := writeScript(t, "3")

	err := New().Run(path)

	var ie *Error
	if !errors.As(err, &ie) {
		t.Fatalf("expected installer.Error, got %T: %v", err, err)
	}
	if ie.Kind != ProcessFailed {
		t.Errorf("expected ProcessFailed, got %v", ie.Kind)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("artifact should be removed after failed install")
	}
}

func TestRunLaunchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-installer.exe")

	err := New().Run(path)

	var ie *Error
	if !errors.As(err, &ie) {
		t.Fatalf("expected installer.Error, got %T: %v", err, err)
	}
	if ie.Kind != LaunchFailed {
		t.Errorf("expected LaunchFailed, got %v", ie.Kind)
	}
}

func TestRunLaunchFailureRemovesArtifact(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("non-executable launch failure requires POSIX permissions")
	}

	// Present but not executable: launch fails, file must still be cleaned up.
	path := filepath.Join(t.TempDir(), "installer_x86.exe")
	if err := os.WriteFile(path, []byte("not a binary"), 0644); err != nil {
		t.Fatal(err)
	}

	err := New().Run(path)

	var ie *Error
	if !errors.As(err, &ie) || ie.Kind != LaunchFailed {
		t.Fatalf("expected LaunchFailed, got %v", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("artifact should be removed even when launch fails")
	}
}
