// Package toc implements the @toc@ transform, which replaces the marker with an
// index of the document's ATX headings.
package toc

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

const (
	// Name is the plugin name used in chains and logs.
	Name = "toc"

	// Marker is the token replaced by the generated index.
	Marker = "@toc@"

	// DefaultTitle heads the generated index when no title is configured.
	DefaultTitle = "Table of Contents"
)

// space matches ASCII whitespace plus the Unicode space separators, line and
// paragraph separators and the byte order mark.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	headingPattern = regexp.MustCompile(`(?m)^(#{1,6})` + space + `+(.*)$`)
	whitespaceRun  = regexp.MustCompile(space + `+`)
	nonSlugChars   = regexp.MustCompile(`[^\w\-]+`)
)

// Heading is one entry of the index.
type Heading struct {
	Level int
	Title string
	Slug  string
}

// Plugin replaces every @toc@ marker with a "### <title>" block listing the
// headings present in the content it receives.
type Plugin struct {
	title string
}

// New returns the TOC plugin. An empty title selects DefaultTitle.
func New(title string) *Plugin {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return &Plugin{title: title}
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:         Name,
		Version:      "v1.0.0",
		Description:  "Replaces @toc@ with an index of the document headings",
		Capabilities: []plugin.Capability{plugin.CapabilityAggregates},
	}
}

// Transform implements plugin.Plugin.
func (p *Plugin) Transform(content string, _ plugin.CompileOptions) string {
	if !strings.Contains(content, Marker) {
		return content
	}
	block := "### " + p.title + "\n\n" + Render(Headings(content))
	return strings.ReplaceAll(content, Marker, block)
}

// Headings returns the headings of content in document order. A heading is a
// line starting with one to six '#' followed by whitespace.
func Headings(content string) []Heading {
	matches := headingPattern.FindAllStringSubmatch(content, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		title := strings.TrimSpace(m[2])
		headings = append(headings, Heading{
			Level: len(m[1]),
			Title: title,
			Slug:  Slugify(title),
		})
	}
	return headings
}

// Render formats headings as a nested Markdown list, two spaces per level.
func Render(headings []Heading) string {
	lines := make([]string, len(headings))
	for i, h := range headings {
		lines[i] = strings.Repeat("  ", h.Level-1) + "- [" + h.Title + "](#" + h.Slug + ")"
	}
	return strings.Join(lines, "\n")
}

// Slugify lower-cases s, turns whitespace runs into '-' and drops everything
// that is not an ASCII word character or '-'.
func Slugify(s string) string {
	s = cases.Lower(language.Und).String(s)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}

var _ plugin.Plugin = (*Plugin)(nil)
