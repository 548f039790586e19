// Package page models a rendered portfolio page the way a script sees it:
// a static structure (sections, navigation links, cards, form fields) plus
// mutable presentation state layered on top. The structure comes from site
// content; the presentation state is owned by the UI state controller.
package page

import (
	"fmt"
	"math"
	"strings"
)

// Box is an element's position in the laid-out document, in CSS pixels.
type Box struct {
	Top    float64
	Height float64
}

func (b Box) Bottom() float64 { return b.Top + b.Height }

// Section is one full-width region of the page, in document order.
type Section struct {
	ID    string
	Title string
	Box   Box
}

// NavLink is one entry in the navbar pointing at a section anchor.
type NavLink struct {
	Label string
	Href  string
}

// TargetID returns the section ID the link points at, or "" when the href
// is not an internal anchor.
func (l NavLink) TargetID() string {
	if !strings.HasPrefix(l.Href, "#") {
		return ""
	}
	return l.Href[1:]
}

// Card is a reveal-on-scroll tile. Cards sharing a Group animate with a
// staggered delay in group order.
type Card struct {
	ID    string
	Group string
	Box   Box
}

// Model is the static shape of the page.
type Model struct {
	Title         string
	TypedText     string   // hero line typed out one character at a time; empty disables
	Sections      []Section
	NavLinks      []NavLink
	Cards         []Card
	FormFields    []string // ordered contact form field names; empty disables the form
	HasNavbar     bool
	HasToggle     bool
	HasToggleIcon bool
}

// SectionIndex returns the position of the section with the given ID, or -1.
func (m Model) SectionIndex(id string) int {
	for i, s := range m.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// BoxByID returns the layout box of the section or card with the given ID.
func (m Model) BoxByID(id string) (Box, bool) {
	for _, s := range m.Sections {
		if s.ID == id {
			return s.Box, true
		}
	}
	for _, c := range m.Cards {
		if c.ID == id {
			return c.Box, true
		}
	}
	return Box{}, false
}

// RevealTargetIDs lists every element observed for reveal-on-scroll, in
// document order: sections first, then cards.
func (m Model) RevealTargetIDs() []string {
	ids := make([]string, 0, len(m.Sections)+len(m.Cards))
	for _, s := range m.Sections {
		ids = append(ids, s.ID)
	}
	for _, c := range m.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// Validate checks the structural contract the controller and templates rely
// on: sections exist, IDs are unique, document order is consistent, and
// every internal anchor resolves to a section.
func (m Model) Validate() error {
	var problems []string
	if len(m.Sections) == 0 {
		problems = append(problems, "no sections")
	}
	seen := make(map[string]bool)
	lastTop := math.Inf(-1)
	for i, s := range m.Sections {
		switch {
		case s.ID == "":
			problems = append(problems, fmt.Sprintf("section %d has an empty id", i))
		case seen[s.ID]:
			problems = append(problems, fmt.Sprintf("duplicate id %q", s.ID))
		}
		seen[s.ID] = true
		if s.Box.Top < lastTop {
			problems = append(problems, fmt.Sprintf("section %q is out of document order", s.ID))
		}
		lastTop = s.Box.Top
	}
	for _, c := range m.Cards {
		if c.ID == "" {
			problems = append(problems, "card with an empty id")
			continue
		}
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("duplicate id %q", c.ID))
		}
		seen[c.ID] = true
	}
	for _, l := range m.NavLinks {
		if l.Label == "" {
			problems = append(problems, fmt.Sprintf("nav link %q has an empty label", l.Href))
		}
		target := l.TargetID()
		if target == "" {
			problems = append(problems, fmt.Sprintf("nav link %q is not an internal anchor", l.Href))
			continue
		}
		if m.SectionIndex(target) < 0 {
			problems = append(problems, fmt.Sprintf("nav link %q has no matching section", l.Href))
		}
	}
	fields := make(map[string]bool)
	for _, f := range m.FormFields {
		if f == "" {
			problems = append(problems, "form field with an empty name")
			continue
		}
		if fields[f] {
			problems = append(problems, fmt.Sprintf("duplicate form field %q", f))
		}
		fields[f] = true
	}
	if len(problems) > 0 {
		return fmt.Errorf("page model: %s", strings.Join(problems, "; "))
	}
	return nil
}
