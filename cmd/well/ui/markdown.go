package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders short markdown blocks; it falls back to the raw text.
type markdown struct {
	renderer *glamour.TermRenderer
}

func newMarkdown(dark bool, width int) markdown {
	if width < 20 {
		width = 20
	}
	var r *glamour.TermRenderer
	if dark {
		r, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
		)
	} else {
		r, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(width),
		)
	}
	return markdown{renderer: r}
}

func (m markdown) Render(src string) string {
	if m.renderer == nil {
		return src
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
