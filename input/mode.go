package input

import (
	"fmt"
	"strings"
)

// Mode selects the input adapter once at startup.
type Mode string

const (
	ModeStick    Mode = "stick"
	ModeTouch    Mode = "touch"
	ModeKeyboard Mode = "keyboard"
	ModeScript   Mode = "script"
)

var modes = []Mode{ModeStick, ModeTouch, ModeKeyboard, ModeScript}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeStick, nil
	}
	for _, known := range modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("input: unknown mode %q", s)
}

// UsesSticks reports whether the mode reads the two physical sticks.
func (m Mode) UsesSticks() bool {
	return m == ModeStick || m == ModeTouch
}
