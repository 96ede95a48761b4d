// Package clipboard copies generated prompts to the system clipboard
// using the platform's native utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// tool describes one clipboard command candidate.
type tool struct {
	name string
	args []string
}

// candidates lists clipboard commands per platform, tried in order.
// Linux carries several because X11 and Wayland need different tools.
var candidates = map[string][]tool{
	"darwin": {
		{name: "pbcopy"},
	},
	"linux": {
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "wl-copy"},
	},
	"windows": {
		{name: "clip"},
	},
}

// ClipboardError reports that no working clipboard utility was found.
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a ClipboardError with install instructions.
func NewClipboardError() *ClipboardError {
	return &ClipboardError{
		OS:      runtime.GOOS,
		Message: InstallInstructions(),
	}
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	tools, ok := candidates[runtime.GOOS]
	if !ok {
		return &ClipboardError{
			OS:      runtime.GOOS,
			Message: fmt.Sprintf("clipboard not supported on %s", runtime.GOOS),
		}
	}

	var lastErr error
	for _, t := range tools {
		if !commandAvailable(t.name) {
			continue
		}
		cmd := exec.Command(t.name, t.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", t.name, err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", lastErr)
	}
	return NewClipboardError()
}

// CopyWithFallback copies text and returns a user-facing status message.
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		return "", err
	}
	return "Copied to clipboard!", nil
}

// Available reports whether any clipboard utility can be used.
func Available() bool {
	tools, ok := candidates[runtime.GOOS]
	if !ok {
		return false
	}
	for _, t := range tools {
		if commandAvailable(t.name) {
			return true
		}
	}
	return false
}

// InstallInstructions returns platform-specific setup guidance.
func InstallInstructions() string {
	switch runtime.GOOS {
	case "linux":
		return "no clipboard utility found. Install one of:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("clipboard not supported on %s", runtime.GOOS)
	}
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
