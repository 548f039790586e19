package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"folio/internal/page"
	"folio/internal/uistate"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := stylesFor(m.ctl.Theme())

	var b strings.Builder
	b.WriteString(m.viewNavbar(st))
	b.WriteString("\n")
	b.WriteString(m.viewSections(st))
	b.WriteString("\n")
	b.WriteString(m.viewHelp(st))
	return b.String()
}

func (m Model) viewNavbar(st styles) string {
	navStyle := st.navbar
	if m.doc.Navbar.HasClass("scrolled") {
		navStyle = st.navbarScrolled
	}

	parts := make([]string, 0, len(m.doc.Model().NavLinks)+2)
	parts = append(parts, m.doc.Model().Title)
	for i, link := range m.doc.Model().NavLinks {
		style := st.navLink
		if m.doc.NavLinks[i].HasClass("active") {
			style = st.navActive
		}
		label := link.Label
		if i == m.selected && m.focusField < 0 {
			label = st.navSelected.Render(label)
		}
		parts = append(parts, style.Render(label))
	}

	toggle := "☾"
	if m.ctl.Theme() == uistate.ThemeDark {
		toggle = "☀"
	}
	if m.doc.Toggle.HasClass("switching") {
		toggle = "✦"
	}
	parts = append(parts, st.accent.Render(toggle))
	return navStyle.Render(strings.Join(parts, "  "))
}

// viewSections draws every section the simulated viewport overlaps.
// Unrevealed elements render faint, the terminal stand-in for the page's
// pre-reveal opacity.
func (m Model) viewSections(st styles) string {
	var out []string
	model := m.doc.Model()
	top := m.doc.ScrollY
	bottom := m.doc.ScrollY + m.doc.ViewportH
	for i, sec := range model.Sections {
		if sec.Box.Bottom() < top || sec.Box.Top > bottom {
			continue
		}
		out = append(out, m.viewSection(st, i, sec))
	}
	return strings.Join(out, "\n")
}

func (m Model) viewSection(st styles, idx int, sec page.Section) string {
	el := m.doc.Sections[idx]
	heading := st.heading.Render("# " + sec.Title)
	if !el.HasClass("revealed") {
		heading = st.muted.Faint(true).Render("# " + sec.Title)
	}

	var body string
	switch sec.ID {
	case "hero":
		line := m.doc.Typed.Prefix()
		if !m.doc.Typed.Done() {
			line += st.accent.Render("▌")
		}
		body = st.body.Render(line) + "\n" + st.muted.Render(m.content.Role)
	case "about":
		body = st.body.Render(strings.TrimSpace(m.content.About))
	case "skills":
		pills := make([]string, len(m.content.Skills))
		for i, s := range m.content.Skills {
			pills[i] = st.pill.Render("[" + s + "]")
		}
		body = strings.Join(pills, " ")
	case "projects":
		body = m.viewCards(st)
	case "contact":
		body = m.viewForm(st)
	}
	return heading + "\n" + body
}

func (m Model) viewCards(st styles) string {
	cards := make([]string, 0, len(m.doc.Cards))
	for i, card := range m.doc.Cards {
		if i >= len(m.content.Projects) {
			break
		}
		p := m.content.Projects[i]
		style := st.cardHidden
		if card.HasClass("revealed") {
			style = st.card
		}
		text := st.body.Render(p.Name) + "\n" + st.muted.Render(strings.TrimSpace(p.Description))
		cards = append(cards, style.Render(text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) viewForm(st styles) string {
	form := m.doc.Form
	if form == nil {
		return ""
	}
	var b strings.Builder
	for i, field := range form.Fields {
		label := st.fieldLabel
		cursor := "  "
		if i == m.focusField {
			label = st.fieldFocus
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s: %s\n", cursor, label.Render(field), form.Value(field))
	}
	switch form.Status.Kind {
	case "error":
		b.WriteString(st.statusError.Render(form.Status.Message))
	case "success":
		b.WriteString(st.statusSuccess.Render(form.Status.Message))
	}
	return b.String()
}

func (m Model) viewHelp(st styles) string {
	if m.focusField >= 0 {
		return st.help.Render("tab next field · enter send · esc back · type to edit")
	}
	return st.help.Render("j/k scroll · h/l pick link · enter jump · t theme · tab form · q quit")
}
