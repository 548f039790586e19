// Package preview renders the portfolio in the terminal. The same UI state
// controller that drives the web page drives this model; keys stand in for
// scroll, click, and form events, and the simulated viewport feeds the
// controller the intersection events a browser observer would.
package preview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/page"
	"folio/internal/site"
	"folio/internal/uistate"
)

// pxPerRow maps terminal rows onto the CSS-pixel geometry of the laid-out
// page, so one keypress scrolls a believable distance.
const (
	pxPerRow   = 24.0
	scrollStep = 3 * pxPerRow
	chromeRows = 3 // navbar, status line, help line
)

// ctlMsg wraps a controller event delivered through bubbletea, including
// the deferred ticks the controller schedules for itself.
type ctlMsg struct{ msg uistate.Msg }

// cmdQueue collects commands the controller schedules mid-dispatch. It is
// shared by pointer so Update sees what the schedule callback appended.
type cmdQueue struct{ cmds []tea.Cmd }

func (q *cmdQueue) drain() tea.Cmd {
	if len(q.cmds) == 0 {
		return nil
	}
	cmds := q.cmds
	q.cmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Model is the terminal preview. Construct with New; the zero value is not
// usable.
type Model struct {
	doc     *page.Document
	ctl     *uistate.Controller
	content *site.Content
	queue   *cmdQueue

	width  int
	height int

	selected   int // nav link the cursor is on
	focusField int // contact form field being edited, -1 when browsing
	quitting   bool
}

// New builds a preview around the given preference store and content. The
// systemDark probe is sampled once at load, the way a page reads the
// media query when it becomes interactive.
func New(store uistate.Storage, content *site.Content, systemDark func() bool) Model {
	doc := page.NewDocument(content.PageModel())
	queue := &cmdQueue{}
	ctl := uistate.New(doc, store, uistate.Config{
		SystemDark: systemDark,
		Schedule: func(delay time.Duration, msg uistate.Msg) {
			queue.cmds = append(queue.cmds, tea.Tick(delay, func(time.Time) tea.Msg {
				return ctlMsg{msg: msg}
			}))
		},
	})
	return Model{
		doc:        doc,
		ctl:        ctl,
		content:    content,
		queue:      queue,
		focusField: -1,
	}
}

// Controller exposes the underlying controller, mainly for tests.
func (m Model) Controller() *uistate.Controller { return m.ctl }

func (m Model) Init() tea.Cmd {
	m.ctl.Dispatch(uistate.LoadMsg{})
	m.syncIntersections()
	return m.queue.drain()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		visible := msg.Height - chromeRows
		if visible > 0 {
			m.ctl.Dispatch(uistate.ResizeMsg{ViewportHeight: float64(visible) * pxPerRow})
			m.syncIntersections()
		}
	case ctlMsg:
		m.ctl.Dispatch(msg.msg)
	case tea.KeyMsg:
		// ctrl+c quits from anywhere, form focus included.
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.focusField >= 0 {
			m = m.updateForm(msg)
		} else {
			var cmd tea.Cmd
			m, cmd = m.updateBrowse(msg)
			if cmd != nil {
				return m, cmd
			}
		}
	}
	return m, m.queue.drain()
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		m.scrollTo(m.doc.ScrollY + scrollStep)
	case "k", "up":
		m.scrollTo(m.doc.ScrollY - scrollStep)
	case "pgdown", " ":
		m.scrollTo(m.doc.ScrollY + m.doc.ViewportH)
	case "pgup":
		m.scrollTo(m.doc.ScrollY - m.doc.ViewportH)
	case "g", "home":
		m.scrollTo(0)
	case "G", "end":
		m.scrollTo(m.docHeight())
	case "t":
		m.ctl.Dispatch(uistate.ToggleClickMsg{})
	case "h", "left":
		if m.selected > 0 {
			m.selected--
		}
	case "l", "right":
		if m.selected < len(m.doc.Model().NavLinks)-1 {
			m.selected++
		}
	case "enter":
		links := m.doc.Model().NavLinks
		if m.selected >= 0 && m.selected < len(links) {
			m.ctl.Dispatch(uistate.NavClickMsg{Href: links[m.selected].Href})
			m.syncIntersections()
		}
	case "tab":
		if m.doc.Form != nil {
			m.focusField = 0
			m.ctl.Dispatch(uistate.NavClickMsg{Href: "#contact"})
			m.syncIntersections()
		}
	}
	return m, nil
}

// updateForm routes keys into the focused contact form field.
func (m Model) updateForm(msg tea.KeyMsg) Model {
	form := m.doc.Form
	field := form.Fields[m.focusField]
	switch msg.String() {
	case "esc":
		m.focusField = -1
	case "tab":
		m.focusField = (m.focusField + 1) % len(form.Fields)
	case "shift+tab":
		m.focusField = (m.focusField + len(form.Fields) - 1) % len(form.Fields)
	case "enter":
		m.ctl.Dispatch(uistate.FormSubmitMsg{})
	case "backspace":
		value := form.Value(field)
		if len(value) > 0 {
			runes := []rune(value)
			m.ctl.Dispatch(uistate.FormInputMsg{Field: field, Value: string(runes[:len(runes)-1])})
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.ctl.Dispatch(uistate.FormInputMsg{Field: field, Value: form.Value(field) + string(msg.Runes)})
		}
	}
	return m
}

// scrollTo clamps and delivers one scroll event, then the intersection
// callbacks the movement would have fired.
func (m Model) scrollTo(offset float64) {
	max := m.docHeight() - m.doc.ViewportH
	if max < 0 {
		max = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > max {
		offset = max
	}
	m.ctl.Dispatch(uistate.ScrollMsg{Offset: offset})
	m.syncIntersections()
}

// syncIntersections plays the viewport observer: every reveal target
// currently crossing the observation window reports intersecting.
func (m Model) syncIntersections() {
	model := m.doc.Model()
	for _, id := range model.RevealTargetIDs() {
		box, ok := model.BoxByID(id)
		if !ok {
			continue
		}
		if page.Intersects(m.doc.ScrollY, m.doc.ViewportH, box) {
			m.ctl.Dispatch(uistate.IntersectMsg{ID: id, Intersecting: true})
		}
	}
}

func (m Model) docHeight() float64 {
	sections := m.doc.Model().Sections
	if len(sections) == 0 {
		return 0
	}
	return sections[len(sections)-1].Box.Bottom()
}
