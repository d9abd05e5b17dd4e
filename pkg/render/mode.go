package render

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMode is returned for a render mode other than
// HighFidelity and Approximation.
var ErrUnsupportedMode = errors.New("render: unsupported render mode")

// Mode selects the resolution frames are computed at.
type Mode uint8

const (
	// HighFidelity computes every surface pixel.
	HighFidelity Mode = iota + 1
	// Approximation computes a reduced buffer and upscales it without
	// smoothing. Used only while the user is interacting.
	Approximation
)

func (m Mode) String() string {
	switch m {
	case HighFidelity:
		return "high-fidelity"
	case Approximation:
		return "approximation"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is a supported mode.
func (m Mode) Valid() bool {
	return m == HighFidelity || m == Approximation
}

// ParseMode parses the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "high-fidelity":
		return HighFidelity, nil
	case "approximation":
		return Approximation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Mode can be
// used with flag.TextVar and encoding/json.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
