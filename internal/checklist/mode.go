// Package checklist composes and validates the pre-scan safety checklist.
package checklist

import (
	"fmt"
	"strings"
)

// Mode is the contrast mode of the planned scan.
type Mode int

const (
	WithoutContrast Mode = iota
	WithContrast
)

// Labels shown to the operator.
const (
	WithoutContrastLabel = "造影なし"
	WithContrastLabel    = "造影あり"
)

// String returns the Japanese label of the mode.
func (m Mode) String() string {
	if m == WithContrast {
		return WithContrastLabel
	}
	return WithoutContrastLabel
}

// Slug returns the ASCII alias of the mode, used in config files and flags.
func (m Mode) Slug() string {
	if m == WithContrast {
		return "with-contrast"
	}
	return "without-contrast"
}

// AllModes returns the modes in display order.
func AllModes() []Mode {
	return []Mode{WithoutContrast, WithContrast}
}

// ParseMode parses a Japanese label or ASCII alias into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case WithoutContrastLabel, "without-contrast", "none":
		return WithoutContrast, nil
	case WithContrastLabel, "with-contrast", "contrast":
		return WithContrast, nil
	default:
		return WithoutContrast, fmt.Errorf("invalid contrast mode: %s (valid: %s, %s, without-contrast, with-contrast)",
			s, WithoutContrastLabel, WithContrastLabel)
	}
}
