package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{"EXIF_WORKERS", "LOG_LEVEL", "EXIF_MAKER_NOTES", "EXIF_PARTIAL"}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, &Config{LogLevel: "info"}, cfg)
}

func TestLoadFile_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXIF_WORKERS", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXIF_MAKER_NOTES", "true")
	t.Setenv("EXIF_PARTIAL", "1")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.MakerNotes)
	assert.True(t, cfg.Partial)
}

func TestLoadFile_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EXIF_WORKERS=5\nLOG_LEVEL=error\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("EXIF_WORKERS") })

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over file")
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative workers", "EXIF_WORKERS", "-2"},
		{"non-numeric workers", "EXIF_WORKERS", "many"},
		{"bad bool", "EXIF_PARTIAL", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))

			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{Workers: 0}).Validate())
	assert.NoError(t, (&Config{Workers: 16}).Validate())
	assert.Error(t, (&Config{Workers: -1}).Validate())
}
