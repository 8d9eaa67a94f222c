package main

import (
	"fmt"
	"strings"
	"time"
)

// verifyDisplay is how the verify command reports progress while plans run.
type verifyDisplay uint8

const (
	displayLines verifyDisplay = iota // one line per finished plan
	displayTUI                        // live progress view
	displayNone                       // summary only
)

func (d verifyDisplay) String() string {
	switch d {
	case displayTUI:
		return "tui"
	case displayNone:
		return "none"
	default:
		return "lines"
	}
}

// chooseDisplay resolves the --ui setting (auto|on|off) against --quiet and
// whether stdout is a terminal. --quiet wins over --ui on, but an invalid
// --ui value is still an error.
func chooseDisplay(ui string, quiet, tty bool) (verifyDisplay, error) {
	var tui bool
	switch strings.ToLower(strings.TrimSpace(ui)) {
	case "", "auto":
		tui = tty
	case "on":
		tui = true
	case "off":
	default:
		return displayLines, fmt.Errorf("verify: invalid --ui value %q (expected auto|on|off)", ui)
	}
	switch {
	case quiet:
		return displayNone, nil
	case tui:
		return displayTUI, nil
	default:
		return displayLines, nil
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
