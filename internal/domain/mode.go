package domain

import "strings"

// Mode selects which system instruction steers the generated prompt.
type Mode string

const (
	ModeFast     Mode = "fast"
	ModeAdvanced Mode = "advanced"
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeFast, ModeAdvanced}
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeFast, ModeAdvanced:
		return true
	default:
		return false
	}
}

func (m Mode) String() string {
	return string(m)
}

// Title is the human readable name shown by the front ends.
func (m Mode) Title() string {
	switch m {
	case ModeFast:
		return "Fast Mode"
	case ModeAdvanced:
		return "Advanced Mode"
	default:
		return ""
	}
}

func (m Mode) Description() string {
	switch m {
	case ModeFast:
		return "Concise & Direct (<500 chars)"
	case ModeAdvanced:
		return "Structured & Detailed (500-1000 chars)"
	default:
		return ""
	}
}

// ParseMode accepts "fast" or "advanced" in any case, surrounding spaces ignored.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidMode
	}
	return m, nil
}
