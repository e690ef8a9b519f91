package info_flow

import (
	"fmt"
	"strings"
)

// DebugLevel gates diagnostic output only. It never changes propagation.
type DebugLevel uint8

const (
	DebugOff DebugLevel = iota
	DebugLow
	DebugMedium
	DebugHigh
	DebugOMG
)

func (l DebugLevel) String() string {
	switch l {
	case DebugOff:
		return "off"
	case DebugLow:
		return "low"
	case DebugMedium:
		return "medium"
	case DebugHigh:
		return "high"
	case DebugOMG:
		return "omg"
	default:
		return fmt.Sprintf("debug(%d)", uint8(l))
	}
}

func ParseDebugLevel(s string) (DebugLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return DebugOff, nil
	case "low":
		return DebugLow, nil
	case "medium", "med":
		return DebugMedium, nil
	case "high":
		return DebugHigh, nil
	case "omg":
		return DebugOMG, nil
	}
	return DebugOff, fmt.Errorf("%w: unknown debug level %q", ErrInvalidInput, s)
}

func (e *Engine) SetDebugLevel(l DebugLevel) {
	e.debug = l
}

func (e *Engine) SetDebugOff()  { e.SetDebugLevel(DebugOff) }
func (e *Engine) SetDebugLow()  { e.SetDebugLevel(DebugLow) }
func (e *Engine) SetDebugMed()  { e.SetDebugLevel(DebugMedium) }
func (e *Engine) SetDebugHigh() { e.SetDebugLevel(DebugHigh) }
func (e *Engine) SetDebugOMG()  { e.SetDebugLevel(DebugOMG) }

func (e *Engine) DebugLevel() DebugLevel {
	return e.debug
}

func (e *Engine) DebugAtLeast(l DebugLevel) bool {
	return l != DebugOff && e.debug >= l
}
