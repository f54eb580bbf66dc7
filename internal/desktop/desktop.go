// Package desktop detects the running desktop environment.
// Detection is used to decide which settings files are consulted
// when resolving the active icon theme.
package desktop

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/galister/freedesktop/pkg/xdg"
)

// Desktop identifies a desktop environment by its XDG_CURRENT_DESKTOP name.
type Desktop string

// Known desktop environments.
const (
	Unknown  Desktop = ""
	KDE      Desktop = "KDE"
	GNOME    Desktop = "GNOME"
	XFCE     Desktop = "XFCE"
	Cinnamon Desktop = "X-Cinnamon"
	MATE     Desktop = "MATE"
	LXQt     Desktop = "LXQt"
)

// sessionProcesses maps a session's shell process to its desktop.
var sessionProcesses = map[string]Desktop{
	"plasmashell":     KDE,
	"gnome-shell":     GNOME,
	"xfce4-session":   XFCE,
	"cinnamon":        Cinnamon,
	"mate-session":    MATE,
	"lxqt-session":    LXQt,
	"ksmserver":       KDE,
	"gnome-session-b": GNOME,
}

// processLister returns the running processes. Replaced in tests.
var processLister = ps.Processes

// Detect determines the desktop environment from the environment first
// and falls back to scanning running processes.
func Detect(dirs xdg.Dirs) Desktop {
	if d := FromEnv(dirs); d != Unknown {
		return d
	}

	d, err := FromProcesses()
	if err != nil {
		return Unknown
	}
	return d
}

// FromEnv matches XDG_CURRENT_DESKTOP entries, then DESKTOP_SESSION.
func FromEnv(dirs xdg.Dirs) Desktop {
	for _, name := range dirs.CurrentDesktop {
		if d := Parse(name); d != Unknown {
			return d
		}
	}
	return Parse(dirs.DesktopSession)
}

// FromProcesses looks for a known session process.
// Uses go-ps for cross-platform process discovery.
func FromProcesses() (Desktop, error) {
	processes, err := processLister()
	if err != nil {
		return Unknown, fmt.Errorf("failed to get process list: %w", err)
	}

	for _, p := range processes {
		if d, ok := sessionProcesses[p.Executable()]; ok {
			return d, nil
		}
	}

	return Unknown, nil
}

// Parse maps a desktop or session name onto a known Desktop.
func Parse(name string) Desktop {
	switch n := strings.ToLower(strings.TrimSpace(name)); {
	case n == "":
		return Unknown
	case n == "kde" || strings.HasPrefix(n, "plasma"):
		return KDE
	case n == "gnome" || strings.HasPrefix(n, "gnome-") || n == "ubuntu":
		return GNOME
	case strings.HasPrefix(n, "xfce"):
		return XFCE
	case n == "x-cinnamon" || n == "cinnamon":
		return Cinnamon
	case n == "mate":
		return MATE
	case n == "lxqt":
		return LXQt
	default:
		return Unknown
	}
}
