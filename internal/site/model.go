package site

import (
	"strings"

	"folio/internal/page"
)

// Synthesized layout heights in CSS pixels. The real page is fluid; these
// give the controller, previews, and tests a stable document to scroll.
const (
	heroHeight    = 640.0
	aboutHeight   = 520.0
	skillsBase    = 280.0
	skillsPerRow  = 48.0
	skillsCols    = 3
	projectsBase  = 220.0
	cardHeight    = 300.0
	cardRow       = 320.0 // card height plus grid gap
	cardsPerRow   = 2
	contactHeight = 560.0
)

// PageModel lays the content out as the document the controller drives.
// Sections appear in fixed order: hero, about, skills, projects, contact.
func (c *Content) PageModel() page.Model {
	m := page.Model{
		Title:         c.Name,
		TypedText:     c.TypedLine,
		FormFields:    []string{"name", "email", "message"},
		HasNavbar:     true,
		HasToggle:     true,
		HasToggleIcon: true,
	}
	top := 0.0
	add := func(id, title string, height float64) {
		m.Sections = append(m.Sections, page.Section{
			ID:    id,
			Title: title,
			Box:   page.Box{Top: top, Height: height},
		})
		m.NavLinks = append(m.NavLinks, page.NavLink{Label: title, Href: "#" + id})
		top += height
	}

	add("hero", "Home", heroHeight)
	add("about", "About", aboutHeight)

	skillRows := (len(c.Skills) + skillsCols - 1) / skillsCols
	add("skills", "Skills", skillsBase+skillsPerRow*float64(skillRows))

	cardRows := (len(c.Projects) + cardsPerRow - 1) / cardsPerRow
	projectsTop := top
	add("projects", "Projects", projectsBase+cardRow*float64(cardRows))
	for i, p := range c.Projects {
		row := i / cardsPerRow
		m.Cards = append(m.Cards, page.Card{
			ID:    "project-" + slug(p.Name),
			Group: "project-card",
			Box: page.Box{
				Top:    projectsTop + projectsBase + cardRow*float64(row),
				Height: cardHeight,
			},
		})
	}

	add("contact", "Contact", contactHeight)
	return m
}

// slug flattens a project name into an element id.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == ' ' || r == '-' || r == '_':
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
