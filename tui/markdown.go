package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached by style and wrap width. Building one is slow enough
// to show up on every frame otherwise.
var mdRenderers = map[string]*glamour.TermRenderer{}

// mdStyle is picked once at startup; probing the background per frame can
// block on some terminals.
var mdStyle = "dark"

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)
	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyle() string {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return "notty"
	}
	return mdStyle
}
