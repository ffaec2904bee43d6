package detector_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/detector"
	"go.trai.ch/xmlres/internal/core/domain"
)

func TestDetect_NonTerminalIsPlain(t *testing.T) {
	t.Setenv("CI", "")
	assert.Equal(t, detector.FormatPlain, detector.Detect(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, detector.IsTerminal(f))
	assert.Equal(t, detector.FormatPlain, detector.Detect(f))
}

func TestIsCI(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run("CI="+tt.value, func(t *testing.T) {
			t.Setenv("CI", tt.value)
			assert.Equal(t, tt.want, detector.IsCI())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		flag string
		want detector.Format
	}{
		{"", detector.FormatAuto},
		{"auto", detector.FormatAuto},
		{"pretty", detector.FormatPretty},
		{"text", detector.FormatPretty},
		{"plain", detector.FormatPlain},
		{"linear", detector.FormatPlain},
		{"ci", detector.FormatPlain},
		{"json", detector.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := detector.ParseFormat(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := detector.ParseFormat("yaml")
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, detector.FormatPretty, detector.Resolve(detector.FormatPretty, detector.FormatAuto))
	assert.Equal(t, detector.FormatJSON, detector.Resolve(detector.FormatPretty, detector.FormatJSON))
	assert.Equal(t, "plain", detector.FormatPlain.String())
}
