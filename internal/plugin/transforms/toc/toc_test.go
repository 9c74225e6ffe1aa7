package toc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

func TestTransform(t *testing.T) {
	p := New("")

	t.Run("two levels", func(t *testing.T) {
		out := p.Transform("# A\n## B\n@toc@", plugin.CompileOptions{})

		assert.Equal(t, "# A\n## B\n### Table of Contents\n\n- [A](#a)\n  - [B](#b)", out)
		assert.NotContains(t, out, Marker)
	})

	t.Run("marker before headings", func(t *testing.T) {
		out := p.Transform("@toc@\n# Intro\n", plugin.CompileOptions{})
		assert.True(t, strings.HasPrefix(out, "### Table of Contents\n\n- [Intro](#intro)\n# Intro"))
	})

	t.Run("every marker replaced", func(t *testing.T) {
		out := p.Transform("# A\n@toc@ and @toc@", plugin.CompileOptions{})
		assert.Equal(t, 2, strings.Count(out, "- [A](#a)"))
		assert.NotContains(t, out, Marker)
	})

	t.Run("no headings", func(t *testing.T) {
		assert.Equal(t, "### Table of Contents\n\n", p.Transform("@toc@", plugin.CompileOptions{}))
	})

	t.Run("no marker", func(t *testing.T) {
		assert.Equal(t, "# A\n", p.Transform("# A\n", plugin.CompileOptions{}))
	})

	t.Run("custom title", func(t *testing.T) {
		out := New("Contents").Transform("# A\n@toc@", plugin.CompileOptions{})
		assert.Contains(t, out, "### Contents\n\n- [A](#a)")
	})

	t.Run("replacement text is literal", func(t *testing.T) {
		out := p.Transform("# Price $1\n@toc@", plugin.CompileOptions{})
		assert.Contains(t, out, "- [Price $1](#price-1)")
	})
}

func TestHeadings(t *testing.T) {
	content := strings.Join([]string{
		"# Title",
		"text",
		"###### Deep   ",
		"####### too deep",
		"#NoSpace",
		"  # indented",
		"## Second\r",
	}, "\n")

	got := Headings(content)
	require.Len(t, got, 3)
	assert.Equal(t, Heading{Level: 1, Title: "Title", Slug: "title"}, got[0])
	assert.Equal(t, Heading{Level: 6, Title: "Deep", Slug: "deep"}, got[1])
	assert.Equal(t, Heading{Level: 2, Title: "Second", Slug: "second"}, got[2])
}

func TestHeadingsUnicodeSeparator(t *testing.T) {
	got := Headings("##\u00A0Non\u00A0Breaking")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Level)
	assert.Equal(t, "non-breaking", got[0].Slug)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A", "a"},
		{"Getting Started", "getting-started"},
		{"Multiple   Spaces\tand tabs", "multiple-spaces-and-tabs"},
		{"What's new?", "whats-new"},
		{"snake_case-and-dash", "snake_case-and-dash"},
		{"C++ & Go!", "c--go"},
		{"Ünïcode Heading", "ncode-heading"},
		{"v1.2.3", "v123"},
		{"A\u00A0B", "a-b"},
		{"Wide\u3000Space", "wide-space"},
		{"Thin\u2009 mixed", "thin-mixed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestMetadata(t *testing.T) {
	meta := New("").Metadata()
	require.NoError(t, meta.Validate())
	assert.True(t, meta.HasCapability(plugin.CapabilityAggregates))
}
