package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/imagemeta/internal/fixture"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func lines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var objs []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var obj map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &obj), "line %q", sc.Text())
		objs = append(objs, obj)
	}
	return objs
}

func TestRun_EndToEnd(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	dir := t.TempDir()
	fixture.WriteFile(t, dir, "good.jpg", fixture.JPEG(fixture.CanonTIFF()))
	fixture.WriteFile(t, dir, "plain.jpg", fixture.PlainJPEG())
	fixture.WriteFile(t, dir, "corrupt.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x08, 'E', 'x', 'i', 'f', 0, 0})

	code, stdout, stderr := runCLI(t, filepath.Join(dir, "*.jpg"))

	assert.Equal(t, 0, code)
	assert.Equal(t, "{\"ISOSpeedRatings\":400,\"Make\":\"Canon\"}\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_ManyFiles(t *testing.T) {
	t.Setenv("EXIF_WORKERS", "4")
	dir := t.TempDir()
	for i := range 25 {
		tiff := fixture.TIFF(
			[]fixture.Entry{fixture.ASCII(fixture.TagMake, "Canon")},
			[]fixture.Entry{fixture.Rational(fixture.TagFNumber, uint32(10+i), 10)},
		)
		fixture.WriteFile(t, dir, fmt.Sprintf("sub/%02d/img.png", i), fixture.PNG(tiff))
	}

	code, stdout, _ := runCLI(t, filepath.Join(dir, "**", "*.png"))

	require.Equal(t, 0, code)
	objs := lines(t, stdout)
	require.Len(t, objs, 25)

	seen := make(map[float64]bool)
	for _, obj := range objs {
		assert.Equal(t, "Canon", obj["Make"])
		seen[obj["FNumber"].(float64)] = true
	}
	assert.Len(t, seen, 25)
}

func TestRun_NoMatchesIsSuccess(t *testing.T) {
	code, stdout, _ := runCLI(t, filepath.Join(t.TempDir(), "*.jpg"))

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
}

func TestRun_DebugLogsGoToStderr(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	dir := t.TempDir()
	fixture.WriteFile(t, dir, "plain.jpg", fixture.PlainJPEG())

	code, stdout, stderr := runCLI(t, filepath.Join(dir, "*.jpg"))

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "skipping file")
	assert.Contains(t, stderr, "plain.jpg")
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, arg)

			assert.Equal(t, 0, code)
			assert.True(t, strings.HasPrefix(stdout, "Usage: just-the-exif <path-glob>"))
			assert.Empty(t, stderr)
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"missing pattern", nil, "missing path pattern"},
		{"extra argument", []string{"*.jpg", "*.png"}, "expected one path pattern, got 2"},
		{"unknown flag", []string{"--workers=4", "*.jpg"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)

			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.msg)
			assert.Contains(t, stderr, "Usage: just-the-exif <path-glob>")
		})
	}
}

func TestRun_BadPattern(t *testing.T) {
	code, stdout, stderr := runCLI(t, filepath.Join(t.TempDir(), "[abc"))

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid path pattern")
}

func TestRun_BadConfig(t *testing.T) {
	t.Setenv("EXIF_WORKERS", "-1")

	code, stdout, stderr := runCLI(t, "*.jpg")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "EXIF_WORKERS")
}
