package sizepos

import (
	"fmt"
	"strings"
)

// Align is the policy for where a targeted item lands within the viewport.
type Align string

// Supported alignments.
const (
	// AlignStart puts the item at the leading edge.
	AlignStart Align = "start"
	// AlignCenter centers the item.
	AlignCenter Align = "center"
	// AlignEnd puts the item at the trailing edge.
	AlignEnd Align = "end"
	// AlignAuto scrolls only as far as needed to bring the item into view.
	AlignAuto Align = "auto"
)

// ParseAlign converts user input into an Align. The empty string maps to AlignStart.
func ParseAlign(s string) (Align, error) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AlignStart, nil
	case AlignStart, AlignCenter, AlignEnd, AlignAuto:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown alignment %q (want start, center, end or auto)", ErrInvalidConfig, s)
	}
}

// Valid reports whether a is one of the known alignments.
func (a Align) Valid() bool {
	switch a {
	case AlignStart, AlignCenter, AlignEnd, AlignAuto:
		return true
	default:
		return false
	}
}

func (a Align) String() string {
	return string(a)
}
