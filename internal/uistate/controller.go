// Package uistate implements the page's interaction logic as one controller:
// theme preference resolution and persistence, scroll-driven navigation
// state, one-way reveal animations, the typed hero line, and the client-side
// contact form. The controller owns no I/O beyond the injected preference
// storage; everything else is presentation state written to a page.Document.
package uistate

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"folio/internal/page"
)

// Theme is the binary display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "theme"

const (
	// A section is active once its top edge sits within this many pixels
	// above the viewport top. The last match in document order wins.
	sectionActivationOffset = 200.0

	// The navbar switches to its solid treatment past this offset.
	navbarScrollThreshold = 50.0

	// Stagger step between cards of the same group.
	revealStaggerMs = 100

	// ToggleAffordanceDelay is how long the switching affordance stays on
	// the toggle control before self-reverting.
	ToggleAffordanceDelay = 300 * time.Millisecond

	// TypeInterval is the pacing of the typed hero line.
	TypeInterval = 100 * time.Millisecond
)

// Class and attribute names shared with the stylesheet and templates.
const (
	classActive    = "active"
	classRevealed  = "revealed"
	classScrolled  = "scrolled"
	classSwitching = "switching"

	iconMoon = "fa-moon"
	iconSun  = "fa-sun"

	attrTheme       = "data-theme"
	attrToggleLabel = "aria-label"
	attrRevealDelay = "data-reveal-delay"
)

// Status copy shown under the contact form.
const (
	formErrorMessage   = "Please fill in all fields before sending."
	formSuccessMessage = "Thank you for your message! I'll get back to you soon."
)

// Storage is the persisted key-value store the preference lives in.
// Implementations report absence separately from errors.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ScheduleFunc delivers msg back to the controller after delay. The driver
// owns the clock; a nil ScheduleFunc leaves timed behavior inert.
type ScheduleFunc func(delay time.Duration, msg Msg)

// Config wires a controller to its environment.
type Config struct {
	// SystemDark samples the OS color-scheme signal. nil reads as light.
	SystemDark func() bool

	// Schedule delivers deferred self-messages for the typed line and the
	// toggle affordance revert.
	Schedule ScheduleFunc
}

// Controller drives one page.Document. Construct one per page render and
// deliver every event from a single goroutine.
type Controller struct {
	doc   *page.Document
	store Storage
	cfg   Config

	theme    Theme
	active   int
	handlers map[Kind]func(Msg)
}

// New builds a controller bound to doc and store. Dispatch a LoadMsg (or
// call Initialize) before delivering other events.
func New(doc *page.Document, store Storage, cfg Config) *Controller {
	c := &Controller{
		doc:    doc,
		store:  store,
		cfg:    cfg,
		theme:  ThemeLight,
		active: -1,
	}
	c.handlers = map[Kind]func(Msg){
		KindLoad:        func(Msg) { c.Initialize() },
		KindToggleClick: func(Msg) { c.ToggleTheme() },
		KindSystemTheme: func(m Msg) {
			if sm, ok := m.(SystemThemeMsg); ok {
				c.OnSystemThemeChange(sm.Dark)
			}
		},
		KindScroll: func(m Msg) {
			if sm, ok := m.(ScrollMsg); ok {
				c.OnScroll(sm.Offset)
			}
		},
		KindResize: func(m Msg) {
			if rm, ok := m.(ResizeMsg); ok {
				c.OnResize(rm.ViewportHeight)
			}
		},
		KindIntersect: func(m Msg) {
			if im, ok := m.(IntersectMsg); ok {
				c.OnIntersect(im.ID, im.Intersecting)
			}
		},
		KindNavClick: func(m Msg) {
			if nm, ok := m.(NavClickMsg); ok {
				c.NavigateTo(nm.Href)
			}
		},
		KindFormInput: func(m Msg) {
			if fm, ok := m.(FormInputMsg); ok {
				c.SetFormField(fm.Field, fm.Value)
			}
		},
		KindFormSubmit: func(Msg) { c.SubmitForm() },
		KindTypeTick: func(m Msg) {
			if tm, ok := m.(TypeTickMsg); ok {
				c.advanceTyping(tm.At)
			}
		},
		KindToggleRevert: func(Msg) { c.revertToggleAffordance() },
	}
	return c
}

// Dispatch routes one event through the handler table. Unknown kinds are
// ignored.
func (c *Controller) Dispatch(m Msg) {
	if m == nil {
		return
	}
	if h, ok := c.handlers[m.Kind()]; ok {
		h(m)
	}
}

// HandledKinds lists every event kind the controller reacts to, sorted.
func (c *Controller) HandledKinds() []Kind {
	kinds := make([]Kind, 0, len(c.handlers))
	for k := range c.handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (c *Controller) Theme() Theme { return c.theme }

// ActiveSectionID returns the section currently highlighted in the nav, or
// "" before the first scroll derivation.
func (c *Controller) ActiveSectionID() string {
	sections := c.doc.Model().Sections
	if c.active < 0 || c.active >= len(sections) {
		return ""
	}
	return sections[c.active].ID
}

// Initialize resolves the starting theme (stored choice, then system signal,
// then light), applies it, seeds the scroll-derived state, stamps card
// reveal delays, and starts the typed hero line. It never writes storage;
// only an explicit toggle does that.
func (c *Controller) Initialize() {
	theme := ThemeLight
	if stored, ok := c.storedTheme(); ok {
		theme = stored
	} else if c.cfg.SystemDark != nil && c.cfg.SystemDark() {
		theme = ThemeDark
	}
	c.applyTheme(theme)
	c.stampRevealDelays()
	c.OnScroll(c.doc.ScrollY)
	c.startTyping()
}

// ToggleTheme flips the preference, persists it, and arms the transient
// switching affordance on the control.
func (c *Controller) ToggleTheme() {
	next := ThemeLight
	if c.theme == ThemeLight {
		next = ThemeDark
	}
	c.applyTheme(next)
	if c.store != nil {
		if err := c.store.Set(StorageKey, string(next)); err != nil {
			log.Printf("event=preference_write_failed key=%s err=%v", StorageKey, err)
		}
	}
	if c.doc.Toggle != nil {
		c.doc.Toggle.AddClass(classSwitching)
		c.schedule(ToggleAffordanceDelay, ToggleRevertMsg{})
	}
}

// OnSystemThemeChange follows the OS preference only while the user has
// never made an explicit choice; a stored value always wins. The change is
// applied in memory and never persisted.
func (c *Controller) OnSystemThemeChange(dark bool) {
	if _, ok := c.storedTheme(); ok {
		return
	}
	if dark {
		c.applyTheme(ThemeDark)
		return
	}
	c.applyTheme(ThemeLight)
}

// OnScroll recomputes the scroll-derived state: the active section (the last
// one in document order whose top minus the activation offset is at or above
// the viewport top) and the navbar treatment.
func (c *Controller) OnScroll(offset float64) {
	c.doc.ScrollY = offset
	sections := c.doc.Model().Sections
	if len(sections) > 0 {
		active := 0
		for i, s := range sections {
			if s.Box.Top-sectionActivationOffset <= offset {
				active = i
			}
		}
		c.setActiveSection(active)
	}
	c.updateNavbar()
}

// OnResize records the viewport height and rederives scroll state.
func (c *Controller) OnResize(height float64) {
	if height > 0 {
		c.doc.ViewportH = height
	}
	c.OnScroll(c.doc.ScrollY)
}

// OnIntersect marks an observed element revealed the first time it crosses
// the viewport. The transition is one-way: leaving the viewport later never
// clears it.
func (c *Controller) OnIntersect(id string, intersecting bool) {
	if !intersecting {
		return
	}
	el := c.doc.ByID(id)
	if el == nil || el.HasClass(classRevealed) {
		return
	}
	el.AddClass(classRevealed)
}

// NavigateTo smooth-scrolls to the section an internal anchor points at. An
// href that does not resolve is a silent no-op.
func (c *Controller) NavigateTo(href string) {
	if !strings.HasPrefix(href, "#") {
		return
	}
	idx := c.doc.Model().SectionIndex(strings.TrimPrefix(href, "#"))
	if idx < 0 {
		return
	}
	c.OnScroll(c.doc.Model().Sections[idx].Box.Top)
}

// SetFormField records one field edit. Unknown fields are dropped.
func (c *Controller) SetFormField(field, value string) {
	c.doc.Form.SetValue(field, value)
}

// SubmitForm validates the contact form entirely client-side. Every field
// must be non-blank; on failure the values stay put so the visitor can fix
// them, on success the fields reset under a confirmation message. No network
// request is made either way.
func (c *Controller) SubmitForm() {
	form := c.doc.Form
	if form == nil {
		return
	}
	for _, field := range form.Fields {
		if strings.TrimSpace(form.Value(field)) == "" {
			form.SetStatus("error", formErrorMessage)
			return
		}
	}
	form.SetStatus("success", formSuccessMessage)
	form.Reset()
}

// storedTheme reads the persisted preference. Unknown values and read errors
// count as unset.
func (c *Controller) storedTheme() (Theme, bool) {
	if c.store == nil {
		return "", false
	}
	raw, ok, err := c.store.Get(StorageKey)
	if err != nil {
		log.Printf("event=preference_read_failed key=%s err=%v", StorageKey, err)
		return "", false
	}
	if !ok {
		return "", false
	}
	switch Theme(raw) {
	case ThemeLight, ThemeDark:
		return Theme(raw), true
	}
	return "", false
}

func (c *Controller) applyTheme(t Theme) {
	c.theme = t
	c.doc.Root.SetAttr(attrTheme, string(t))
	c.syncToggle()
}

// syncToggle points the control at the theme a click would switch to.
func (c *Controller) syncToggle() {
	if c.theme == ThemeDark {
		c.doc.ToggleIcon.RemoveClass(iconMoon)
		c.doc.ToggleIcon.AddClass(iconSun)
		c.doc.Toggle.SetAttr(attrToggleLabel, "Switch to light mode")
		return
	}
	c.doc.ToggleIcon.RemoveClass(iconSun)
	c.doc.ToggleIcon.AddClass(iconMoon)
	c.doc.Toggle.SetAttr(attrToggleLabel, "Switch to dark mode")
}

func (c *Controller) setActiveSection(idx int) {
	c.active = idx
	activeID := c.doc.Model().Sections[idx].ID
	for i, link := range c.doc.Model().NavLinks {
		if link.TargetID() == activeID {
			c.doc.NavLinks[i].AddClass(classActive)
		} else {
			c.doc.NavLinks[i].RemoveClass(classActive)
		}
	}
}

func (c *Controller) updateNavbar() {
	if c.doc.ScrollY > navbarScrollThreshold {
		c.doc.Navbar.AddClass(classScrolled)
	} else {
		c.doc.Navbar.RemoveClass(classScrolled)
	}
}

// stampRevealDelays staggers cards inside each group.
func (c *Controller) stampRevealDelays() {
	position := make(map[string]int)
	for i, card := range c.doc.Model().Cards {
		n := position[card.Group]
		position[card.Group] = n + 1
		c.doc.Cards[i].SetAttr(attrRevealDelay, fmt.Sprintf("%dms", n*revealStaggerMs))
	}
}

func (c *Controller) startTyping() {
	t := c.doc.Typed
	if t == nil {
		return
	}
	t.Shown = 0
	if !t.Done() {
		c.schedule(TypeInterval, TypeTickMsg{At: 0})
	}
}

// advanceTyping reveals one more character. Ticks carry the prefix length
// they were scheduled against; anything else is stale and dropped.
func (c *Controller) advanceTyping(at int) {
	t := c.doc.Typed
	if t == nil || t.Done() || at != t.Shown {
		return
	}
	t.Shown++
	if !t.Done() {
		c.schedule(TypeInterval, TypeTickMsg{At: t.Shown})
	}
}

func (c *Controller) revertToggleAffordance() {
	c.doc.Toggle.RemoveClass(classSwitching)
}

func (c *Controller) schedule(d time.Duration, m Msg) {
	if c.cfg.Schedule != nil {
		c.cfg.Schedule(d, m)
	}
}
