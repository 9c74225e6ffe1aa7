package pipeline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccompile/internal/metrics"
	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

type countingRecorder struct {
	metrics.NoopRecorder
	plugins []string
}

func (c *countingRecorder) ObservePluginDuration(name string, _ time.Duration) {
	c.plugins = append(c.plugins, name)
}

func appendPlugin(name, suffix string) plugin.Plugin {
	return plugin.Func(name, func(content string, _ plugin.CompileOptions) string {
		return content + suffix
	})
}

func TestRunAppliesInOrder(t *testing.T) {
	chain := plugin.MustChain(appendPlugin("a", "1"), appendPlugin("b", "2"), appendPlugin("c", "3"))

	out, err := Run("x", chain, plugin.CompileOptions{})

	require.NoError(t, err)
	assert.Equal(t, "x123", out)
}

func TestRunOrderMatters(t *testing.T) {
	upper := plugin.Func("upper", func(content string, _ plugin.CompileOptions) string {
		return strings.ToUpper(content)
	})
	suffix := appendPlugin("suffix", "-tail")

	forward, err := Run("doc", plugin.MustChain(upper, suffix), plugin.CompileOptions{})
	require.NoError(t, err)
	reversed, err := Run("doc", plugin.MustChain(suffix, upper), plugin.CompileOptions{})
	require.NoError(t, err)

	assert.Equal(t, "DOC-tail", forward)
	assert.Equal(t, "DOC-TAIL", reversed)
}

func TestRunEmptyChain(t *testing.T) {
	out, err := NewRunner(nil).Run("unchanged", plugin.CompileOptions{})
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}

func TestRunPassesOptions(t *testing.T) {
	var seen []bool
	inspect := plugin.Func("inspect", func(content string, opts plugin.CompileOptions) string {
		seen = append(seen, opts.TestMode)
		return content + opts.String("suffix")
	})
	opts := plugin.NewCompileOptions(true, "/src", nil).WithValue("suffix", "!")

	out, err := Run("hi", plugin.MustChain(inspect, plugin.Func("inspect-2", inspect.Transform)), opts)

	require.NoError(t, err)
	assert.Equal(t, "hi!!", out)
	assert.Equal(t, []bool{true, true}, seen)
}

func TestRunRecoversPanics(t *testing.T) {
	called := false
	chain := plugin.MustChain(
		appendPlugin("first", "1"),
		plugin.Func("broken", func(string, plugin.CompileOptions) string { panic("boom") }),
		plugin.Func("after", func(content string, _ plugin.CompileOptions) string {
			called = true
			return content
		}),
	)

	out, err := Run("x", chain, plugin.CompileOptions{})

	require.Error(t, err)
	assert.Empty(t, out)
	assert.False(t, called)
	var pe *plugin.PluginError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "broken", pe.PluginName)
	assert.Equal(t, 1, pe.Position)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunnerRecordsAndLogs(t *testing.T) {
	rec := &countingRecorder{}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	chain := plugin.MustChain(appendPlugin("a", "1"), appendPlugin("b", ""))

	_, err := NewRunner(chain, WithRecorder(rec), WithLogger(logger)).Run("x", plugin.CompileOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rec.plugins)
	assert.Contains(t, buf.String(), "plugin=a")
	assert.Contains(t, buf.String(), "changed=true")
	assert.Contains(t, buf.String(), "changed=false")
}
