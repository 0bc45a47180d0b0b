// Package platform detects what the host offers for clipboard access.
package platform

import (
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// Supported operating system identifiers.
const (
	// OSLinux covers Linux and the other unix-likes
	OSLinux = "linux"
	// OSWindows represents Windows operating systems
	OSWindows = "windows"
	// OSDarwin represents macOS
	OSDarwin = "darwin"
)

// Platform holds the detected facts that decide whether copying can work.
type Platform struct {
	OS         string
	HasDisplay bool
	IsTermux   bool
}

// Detect inspects the current process environment.
func Detect() *Platform {
	p := &Platform{OS: detectOS()}

	p.HasDisplay = detectDisplay(p.OS)
	p.IsTermux = os.Getenv("TERMUX_VERSION") != ""

	return p
}

func detectOS() string {
	switch runtime.GOOS {
	case OSWindows, OSDarwin:
		return runtime.GOOS
	}

	return OSLinux
}

// detectDisplay checks whether a display server is available.
// On Linux, it checks for DISPLAY (X11) or WAYLAND_DISPLAY (Wayland).
func detectDisplay(osType string) bool {
	if osType != OSLinux {
		return true
	}

	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// ClipboardTools lists the helper programs the clipboard writer can drive on
// unix-likes, in the order it tries them.
var ClipboardTools = []string{"xsel", "xclip", "wl-copy", "termux-clipboard-set"}

// IsCommandAvailable checks if a command is available in PATH
func IsCommandAvailable(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

var (
	availableToolsOnce   sync.Once
	availableToolsCached []string
)

// DetectClipboardTools returns the entries of ClipboardTools found in PATH.
// Results are cached after the first call.
func DetectClipboardTools() []string {
	availableToolsOnce.Do(func() {
		available := make([]string, 0, len(ClipboardTools))

		for _, tool := range ClipboardTools {
			if IsCommandAvailable(tool) {
				available = append(available, tool)
			}
		}

		availableToolsCached = available
	})

	return availableToolsCached
}

// ResetClipboardToolsCache forces the next DetectClipboardTools to re-scan PATH.
func ResetClipboardToolsCache() {
	availableToolsOnce = sync.Once{}
	availableToolsCached = nil
}

// CanCopy reports whether a clipboard write is expected to succeed, given
// the tools found in PATH.
func (p *Platform) CanCopy(tools []string) bool {
	if p.OS != OSLinux {
		return true
	}

	for _, tool := range tools {
		switch tool {
		case "termux-clipboard-set":
			if p.IsTermux {
				return true
			}
		default:
			if p.HasDisplay {
				return true
			}
		}
	}

	return false
}

// ClipboardHint describes what to install when CanCopy is false.
func (p *Platform) ClipboardHint() string {
	if p.IsTermux {
		return "install termux-api to enable copying"
	}
	if !p.HasDisplay {
		return "no display server found; copying needs X11 or Wayland"
	}

	return "install xclip, xsel or wl-clipboard to enable copying"
}
