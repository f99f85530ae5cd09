package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wippyai/fontguard/config"
	"github.com/wippyai/fontguard/errors"
	"github.com/wippyai/fontguard/font"
)

// isolate keeps user config and FONTGUARD_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{
		config.EnvAffinity, config.EnvFilter, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvMetrics, config.EnvProbeWorkers,
	} {
		t.Setenv(env, "")
	}
	t.Cleanup(func() { font.SetLogger(zap.NewNop()) })
}

func writeFont(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	isolate(t)

	var stdout, stderr bytes.Buffer
	root := newApp(&stdout, &stderr).rootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestInfo(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	out, _, err := execute(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "Regular")
}

func TestInfo_MissingFile(t *testing.T) {
	_, _, err := execute(t, "info", filepath.Join(t.TempDir(), "nope.ttf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindNotFound}))
}

func TestSupports(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	t.Run("supported", func(t *testing.T) {
		out, _, err := execute(t, "supports", path, "Hello, world")
		require.NoError(t, err)
		assert.Equal(t, "true\n", out)
	})

	t.Run("missing characters exit 1", func(t *testing.T) {
		out, _, err := execute(t, "supports", path, "Hi 一")
		assert.Equal(t, "false\n", out)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, err.Error(), "U+4E00")
	})

	t.Run("filter hides non-printable", func(t *testing.T) {
		out, _, err := execute(t, "supports", path, "A\u0007")
		require.NoError(t, err)
		assert.Equal(t, "true\n", out)

		out, _, err = execute(t, "supports", "--filter=false", path, "A\u0007")
		assert.Equal(t, "false\n", out)
		assert.Equal(t, 1, exitCode(t, err))
	})
}

func TestGlyphs(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	out, _, err := execute(t, "glyphs", path, "Ab")
	require.NoError(t, err)
	assert.Contains(t, out, "U+0041")
	assert.Contains(t, out, "U+0062")
	assert.Contains(t, out, "'A'")
}

func TestProbe(t *testing.T) {
	good := writeFont(t, "regular.ttf", goregular.TTF)
	bad := writeFont(t, "broken.ttf", []byte("not a font"))

	t.Run("all fonts load", func(t *testing.T) {
		out, _, err := execute(t, "probe", "--text", "Hi", good, good, good)
		require.NoError(t, err)
		assert.Contains(t, out, "true")
	})

	t.Run("failed font exits 2", func(t *testing.T) {
		out, _, err := execute(t, "--affinity", "os_thread", "probe", "-t", "Hi 世", good, bad)
		assert.Equal(t, 2, exitCode(t, err))
		assert.Contains(t, out, "error")
		assert.Contains(t, out, "U+4E16")
	})

	t.Run("text is required", func(t *testing.T) {
		_, _, err := execute(t, "probe", good)
		assert.Error(t, err)
	})
}

func TestMetricsDump(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	_, stderr, err := execute(t, "--metrics", "supports", path, "A")
	require.NoError(t, err)
	assert.Contains(t, stderr, `fontguard_guards_created_total{resource="font.Face"} 1`)
	assert.Contains(t, stderr, `fontguard_guards_released_total{resource="font.Library"} 1`)
}

func TestInvalidAffinityFlag(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	_, _, err := execute(t, "--affinity", "fiber", "info", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindInvalidInput}))
}

func TestLogLevelFlagIsCaseInsensitive(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	out, _, err := execute(t, "--log-level", "DEBUG", "supports", path, "A")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestInteractive_RequiresTerminal(t *testing.T) {
	path := writeFont(t, "regular.ttf", goregular.TTF)

	_, _, err := execute(t, "interactive", path)
	assert.Equal(t, 2, exitCode(t, err))
}
