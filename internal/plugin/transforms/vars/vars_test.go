package vars

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

func TestTransform(t *testing.T) {
	p := New(Dictionary{"NAME": "World", "site": "docs"})
	opts := plugin.CompileOptions{}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"round trip", "Hello @var:NAME@!", "Hello World!"},
		{"missing key preserved", "Hello @var:MISSING@!", "Hello @var:MISSING@!"},
		{"key is trimmed", "@var: NAME @", "World"},
		{"case sensitive", "@var:name@", "@var:name@"},
		{"multiple", "@var:NAME@ @var:site@ @var:NAME@", "World docs World"},
		{"no tokens", "nothing here", "nothing here"},
		{"dollar in surrounding text", "$1 @var:NAME@ $&", "$1 World $&"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Transform(tt.in, opts))
		})
	}
}

func TestTransformLogsUnresolved(t *testing.T) {
	var buf bytes.Buffer
	opts := plugin.NewCompileOptions(false, "", slog.New(slog.NewTextHandler(&buf, nil)))

	out := New(nil).Transform("@var:GONE@", opts)

	assert.Equal(t, "@var:GONE@", out)
	assert.Contains(t, buf.String(), "Unresolved variable")
	assert.Contains(t, buf.String(), "token=@var:GONE@")
}

func TestParseDictionary(t *testing.T) {
	t.Run("json scalars", func(t *testing.T) {
		dict, err := ParseDictionary([]byte(`{"NAME": "World", "COUNT": 3, "RATIO": 1.5, "ON": true, ` +
			`"EMPTY": "", "ZERO": 0, "OFF": false, "NOTHING": null}`))
		require.NoError(t, err)
		assert.Equal(t, Dictionary{
			"NAME":  "World",
			"COUNT": "3",
			"RATIO": "1.5",
			"ON":    "true",
		}, dict)
		assert.Equal(t, []string{"COUNT", "NAME", "ON", "RATIO"}, dict.Keys())
	})

	t.Run("yaml mapping", func(t *testing.T) {
		dict, err := ParseDictionary([]byte("NAME: World\nversion: \"1.0\"\n"))
		require.NoError(t, err)
		assert.Equal(t, Dictionary{"NAME": "World", "version": "1.0"}, dict)
	})

	t.Run("empty input", func(t *testing.T) {
		dict, err := ParseDictionary(nil)
		require.NoError(t, err)
		assert.Empty(t, dict)
	})

	t.Run("nested value rejected", func(t *testing.T) {
		_, err := ParseDictionary([]byte(`{"A": {"B": "c"}}`))
		require.ErrorIs(t, err, ErrNonScalarValue)
	})

	t.Run("duplicate key keeps last value", func(t *testing.T) {
		dict, err := ParseDictionary([]byte(`{"NAME": "a", "OTHER": "x", "NAME": "b"}`))
		require.NoError(t, err)
		assert.Equal(t, Dictionary{"NAME": "b", "OTHER": "x"}, dict)
	})

	t.Run("duplicate key can clear a value", func(t *testing.T) {
		dict, err := ParseDictionary([]byte(`{"NAME": "a", "NAME": ""}`))
		require.NoError(t, err)
		assert.Empty(t, dict)
	})

	t.Run("yaml merge key", func(t *testing.T) {
		dict, err := ParseDictionary([]byte("<<: {A: one, B: two}\nB: override\n"))
		require.NoError(t, err)
		assert.Equal(t, Dictionary{"A": "one", "B": "override"}, dict)
	})

	t.Run("not a mapping", func(t *testing.T) {
		_, err := ParseDictionary([]byte(`["a", "b"]`))
		require.Error(t, err)
	})
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{1.5, "1.5"},
		{-0.25, "-0.25"},
		{123456789, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-1.5e22, "-1.5e+22"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{1e-6, "0.000001"},
		{1e300, "1e+300"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.in))
		})
	}

	dict, err := ParseDictionary([]byte(`{"BIG": 1e21}`))
	require.NoError(t, err)
	assert.Equal(t, "1e+21", dict["BIG"])
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vars.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"NAME":"World"}`), 0o600))

	dict, err := LoadDictionary(path, true)
	require.NoError(t, err)
	assert.Equal(t, "World", dict["NAME"])

	missing := filepath.Join(dir, "none.json")
	dict, err = LoadDictionary(missing, false)
	require.NoError(t, err)
	assert.Empty(t, dict)

	_, err = LoadDictionary(missing, true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"A": [1]}`), 0o600))
	_, err = LoadDictionary(bad, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}
