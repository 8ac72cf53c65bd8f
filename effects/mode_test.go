package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"grayscale", ModeGrayscale},
		{"Invert", ModeInvert},
		{" brightness ", ModeBrightness},
		{"PROBE", ModeProbe},
		{"contrast", ModeContrast},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMode("sepia")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "grayscale", ModeGrayscale.String())
	assert.Equal(t, "probe", ModeProbe.String())
	assert.Equal(t, "mode(42)", Mode(42).String())
}

func TestModeText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("invert")))
	assert.Equal(t, ModeInvert, m)

	text, err := ModeBrightness.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "brightness", string(text))

	_, err = Mode(99).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.ErrorIs(t, m.UnmarshalText([]byte("nope")), ErrUnknownMode)
}

func TestForMode(t *testing.T) {
	params := DefaultParams()

	tests := []struct {
		mode Mode
		name string
	}{
		{ModeGrayscale, "Grayscale"},
		{ModeInvert, "Invert"},
		{ModeBrightness, "Brightness(+50)"},
		{ModeContrast, "Contrast(1.50)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			effect, err := ForMode(tt.mode, params)
			require.NoError(t, err)
			assert.Equal(t, tt.name, effect.GetName())
		})
	}

	_, err := ForMode(ModeProbe, params)
	assert.ErrorIs(t, err, ErrProbeMode)

	_, err = ForMode(Mode(77), params)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeInfo(t *testing.T) {
	params := Params{BrightnessDelta: -20, ContrastFactor: 2}

	assert.Equal(t, "Brightness: -20 per channel", ModeBrightness.Info(params))
	assert.Equal(t, "Contrast: x2.00 around 128", ModeContrast.Info(params))
	assert.Equal(t, "Invert: 255 - value", ModeInvert.Info(params))
	assert.Contains(t, ModeGrayscale.Info(params), "0.299*R")
}
