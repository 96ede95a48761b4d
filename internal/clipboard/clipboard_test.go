package clipboard

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestClipboardError(t *testing.T) {
	err := NewClipboardError()

	if err.OS != runtime.GOOS {
		t.Errorf("expected OS %s, got %s", runtime.GOOS, err.OS)
	}
	if err.Error() == "" {
		t.Error("error message should not be empty")
	}

	var clipErr *ClipboardError
	if !errors.As(error(err), &clipErr) {
		t.Error("should unwrap as ClipboardError")
	}
}

func TestAvailableDoesNotPanic(t *testing.T) {
	available := Available()
	if runtime.GOOS == "darwin" && !available {
		t.Error("clipboard should be available on macOS")
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	if instructions == "" {
		t.Fatal("instructions should not be empty")
	}

	switch runtime.GOOS {
	case "linux":
		if !strings.Contains(instructions, "xclip") {
			t.Error("Linux instructions should mention xclip")
		}
	case "darwin":
		if !strings.Contains(instructions, "pbcopy") {
			t.Error("macOS instructions should mention pbcopy")
		}
	case "windows":
		if !strings.Contains(instructions, "clip") {
			t.Error("Windows instructions should mention clip")
		}
	}
}

func TestCopyWithFallback(t *testing.T) {
	statusMsg, err := CopyWithFallback("a woman walking through a foggy forest")
	if err != nil {
		var clipErr *ClipboardError
		if errors.As(err, &clipErr) {
			t.Logf("clipboard not available on this system: %v", err)
			return
		}
		if !strings.Contains(err.Error(), "failed to copy to clipboard") {
			t.Errorf("non-clipboard errors should be wrapped: %v", err)
		}
		return
	}
	if statusMsg != "Copied to clipboard!" {
		t.Errorf("expected success status, got %q", statusMsg)
	}
}
