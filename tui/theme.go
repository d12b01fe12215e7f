package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorMuted    = lipgloss.Color("244")
	colorFrame    = lipgloss.Color("240")
	colorActive   = lipgloss.Color("39")
	colorSelected = lipgloss.Color("229")
	colorMarker   = lipgloss.Color("10")
	colorOK       = lipgloss.Color("70")
	colorErr      = lipgloss.Color("9")
	colorPrompt   = lipgloss.Color("220")
)

func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	// Some terminals under-report; trust COLORTERM/TERM when they say more.
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case profile == termenv.Ascii:
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		profile = termenv.TrueColor
	case strings.Contains(term, "256color") && profile == termenv.ANSI:
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
	if !lipgloss.HasDarkBackground() {
		mdStyle = "light"
	}
}
