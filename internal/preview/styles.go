package preview

import (
	"github.com/charmbracelet/lipgloss"

	"folio/internal/uistate"
)

// styles carries the lipgloss treatment for one theme.
type styles struct {
	navbar         lipgloss.Style
	navbarScrolled lipgloss.Style
	navLink        lipgloss.Style
	navActive      lipgloss.Style
	navSelected    lipgloss.Style
	heading        lipgloss.Style
	body           lipgloss.Style
	muted          lipgloss.Style
	accent         lipgloss.Style
	card           lipgloss.Style
	cardHidden     lipgloss.Style
	pill           lipgloss.Style
	fieldLabel     lipgloss.Style
	fieldFocus     lipgloss.Style
	statusError    lipgloss.Style
	statusSuccess  lipgloss.Style
	help           lipgloss.Style
}

// stylesFor resolves the palette from the controller's current theme, the
// terminal equivalent of CSS keying off data-theme.
func stylesFor(theme uistate.Theme) styles {
	var (
		fg     lipgloss.Color
		muted  lipgloss.Color
		accent lipgloss.Color
		border lipgloss.Color
	)
	if theme == uistate.ThemeDark {
		fg = lipgloss.Color("255")
		muted = lipgloss.Color("245")
		accent = lipgloss.Color("111")
		border = lipgloss.Color("240")
	} else {
		fg = lipgloss.Color("235")
		muted = lipgloss.Color("243")
		accent = lipgloss.Color("27")
		border = lipgloss.Color("250")
	}

	cardBorder := lipgloss.RoundedBorder()
	return styles{
		navbar:         lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		navbarScrolled: lipgloss.NewStyle().Foreground(fg).Padding(0, 1).Bold(true),
		navLink:        lipgloss.NewStyle().Foreground(muted),
		navActive:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		navSelected:    lipgloss.NewStyle().Foreground(fg).Underline(true),
		heading:        lipgloss.NewStyle().Foreground(fg).Bold(true).MarginTop(1),
		body:           lipgloss.NewStyle().Foreground(fg),
		muted:          lipgloss.NewStyle().Foreground(muted),
		accent:         lipgloss.NewStyle().Foreground(accent),
		card:           lipgloss.NewStyle().Border(cardBorder).BorderForeground(border).Padding(0, 1),
		cardHidden:     lipgloss.NewStyle().Border(cardBorder).BorderForeground(border).Padding(0, 1).Faint(true),
		pill:           lipgloss.NewStyle().Foreground(accent),
		fieldLabel:     lipgloss.NewStyle().Foreground(muted),
		fieldFocus:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		statusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		statusSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		help:           lipgloss.NewStyle().Foreground(muted).Faint(true),
	}
}
