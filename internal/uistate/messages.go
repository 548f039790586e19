package uistate

// Kind identifies one class of environment event the controller reacts to.
type Kind string

const (
	KindLoad         Kind = "load"
	KindToggleClick  Kind = "toggle-click"
	KindSystemTheme  Kind = "system-theme"
	KindScroll       Kind = "scroll"
	KindResize       Kind = "resize"
	KindIntersect    Kind = "intersect"
	KindNavClick     Kind = "nav-click"
	KindFormInput    Kind = "form-input"
	KindFormSubmit   Kind = "form-submit"
	KindTypeTick     Kind = "type-tick"
	KindToggleRevert Kind = "toggle-revert"
)

// Msg is one event delivered to the controller's dispatch table.
type Msg interface {
	Kind() Kind
}

// LoadMsg fires once when the page becomes interactive.
type LoadMsg struct{}

// ToggleClickMsg is a click on the theme toggle control.
type ToggleClickMsg struct{}

// SystemThemeMsg reports a change of the OS color-scheme preference.
type SystemThemeMsg struct{ Dark bool }

// ScrollMsg carries the new vertical scroll offset in pixels.
type ScrollMsg struct{ Offset float64 }

// ResizeMsg carries the new viewport height in pixels.
type ResizeMsg struct{ ViewportHeight float64 }

// IntersectMsg reports an observed element crossing or leaving the reveal
// window.
type IntersectMsg struct {
	ID           string
	Intersecting bool
}

// NavClickMsg is a click on a navigation link.
type NavClickMsg struct{ Href string }

// FormInputMsg carries one field edit of the contact form.
type FormInputMsg struct{ Field, Value string }

// FormSubmitMsg is a submit of the contact form.
type FormSubmitMsg struct{}

// TypeTickMsg advances the typed hero line. At is the prefix length the tick
// was scheduled against, so stale duplicates can be dropped.
type TypeTickMsg struct{ At int }

// ToggleRevertMsg clears the transient affordance on the toggle control.
type ToggleRevertMsg struct{}

func (LoadMsg) Kind() Kind         { return KindLoad }
func (ToggleClickMsg) Kind() Kind  { return KindToggleClick }
func (SystemThemeMsg) Kind() Kind  { return KindSystemTheme }
func (ScrollMsg) Kind() Kind       { return KindScroll }
func (ResizeMsg) Kind() Kind       { return KindResize }
func (IntersectMsg) Kind() Kind    { return KindIntersect }
func (NavClickMsg) Kind() Kind     { return KindNavClick }
func (FormInputMsg) Kind() Kind    { return KindFormInput }
func (FormSubmitMsg) Kind() Kind   { return KindFormSubmit }
func (TypeTickMsg) Kind() Kind     { return KindTypeTick }
func (ToggleRevertMsg) Kind() Kind { return KindToggleRevert }
