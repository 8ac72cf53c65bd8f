package effects

import (
	"fmt"
	"strings"
)

// Mode selects the processing applied to each frame.
type Mode uint8

// Supported modes. Exactly one applies per frame.
const (
	ModeGrayscale Mode = iota
	ModeInvert
	ModeBrightness
	ModeProbe
	ModeContrast
)

var modeNames = map[Mode]string{
	ModeGrayscale:  "grayscale",
	ModeInvert:     "invert",
	ModeBrightness: "brightness",
	ModeProbe:      "probe",
	ModeContrast:   "contrast",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Params holds the tunable parameters of the modes that take one.
type Params struct {
	// BrightnessDelta is added to every channel in ModeBrightness.
	BrightnessDelta int

	// ContrastFactor scales channels around 128 in ModeContrast.
	ContrastFactor float64
}

// DefaultParams returns the defaults: +50 brightness, 1.5 contrast.
func DefaultParams() Params {
	return Params{
		BrightnessDelta: DefaultBrightnessDelta,
		ContrastFactor:  1.5,
	}
}

// ForMode builds the effect for a transforming mode.
// ModeProbe returns ErrProbeMode.
func ForMode(mode Mode, params Params) (Effect, error) {
	switch mode {
	case ModeGrayscale:
		return NewGrayscale(), nil
	case ModeInvert:
		return NewInvert(), nil
	case ModeBrightness:
		return NewBrightness(params.BrightnessDelta), nil
	case ModeContrast:
		return NewContrast(params.ContrastFactor), nil
	case ModeProbe:
		return nil, ErrProbeMode
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// Info returns a one-line description of what the mode does to a frame.
func (m Mode) Info(params Params) string {
	switch m {
	case ModeGrayscale:
		return "Grayscale: 0.299*R + 0.587*G + 0.114*B"
	case ModeInvert:
		return "Invert: 255 - value"
	case ModeBrightness:
		return fmt.Sprintf("Brightness: %+d per channel", NewBrightness(params.BrightnessDelta).Delta())
	case ModeContrast:
		return fmt.Sprintf("Contrast: x%.2f around 128", NewContrast(params.ContrastFactor).Factor())
	case ModeProbe:
		return "Probe: center pixel"
	default:
		return m.String()
	}
}
