package page

// Document is the live presentation state for one rendered page: the Model
// plus per-element classes and attributes, scroll position, and form state.
// Optional elements the model omits are nil. Not safe for concurrent use;
// drive it from a single goroutine.
type Document struct {
	Root       *Element
	Navbar     *Element
	Toggle     *Element
	ToggleIcon *Element
	NavLinks   []*Element
	Sections   []*Element
	Cards      []*Element
	Typed      *TypedText
	Form       *Form

	ScrollY   float64
	ViewportH float64

	model Model
	byID  map[string]*Element
}

// NewDocument builds the element tree for a model. Sections and cards are
// index-aligned with the model slices.
func NewDocument(m Model) *Document {
	d := &Document{
		Root:      NewElement("root"),
		ViewportH: DefaultViewportHeight,
		model:     m,
		byID:      make(map[string]*Element),
	}
	if m.HasNavbar {
		d.Navbar = NewElement("navbar")
	}
	if m.HasToggle {
		d.Toggle = NewElement("theme-toggle")
	}
	if m.HasToggleIcon {
		d.ToggleIcon = NewElement("theme-toggle-icon")
	}
	for _, l := range m.NavLinks {
		d.NavLinks = append(d.NavLinks, NewElement("nav-"+l.TargetID()))
	}
	for _, s := range m.Sections {
		el := NewElement(s.ID)
		d.Sections = append(d.Sections, el)
		d.byID[s.ID] = el
	}
	for _, c := range m.Cards {
		el := NewElement(c.ID)
		el.AddClass(c.Group)
		d.Cards = append(d.Cards, el)
		d.byID[c.ID] = el
	}
	if m.TypedText != "" {
		d.Typed = &TypedText{Full: m.TypedText}
	}
	if len(m.FormFields) > 0 {
		d.Form = NewForm(m.FormFields)
	}
	return d
}

func (d *Document) Model() Model { return d.model }

// ByID returns the section or card element with the given ID, or nil.
func (d *Document) ByID(id string) *Element { return d.byID[id] }

// TypedText is the hero line revealed one character at a time.
type TypedText struct {
	Full  string
	Shown int // characters currently rendered
}

// Prefix returns the rendered portion of the line.
func (t *TypedText) Prefix() string {
	if t == nil {
		return ""
	}
	r := []rune(t.Full)
	if t.Shown >= len(r) {
		return t.Full
	}
	if t.Shown <= 0 {
		return ""
	}
	return string(r[:t.Shown])
}

func (t *TypedText) Done() bool {
	if t == nil {
		return true
	}
	return t.Shown >= len([]rune(t.Full))
}

// Form holds the contact form's client-side state. Values are kept verbatim;
// callers trim before validating.
type Form struct {
	Fields []string
	Status FormStatus

	values map[string]string
}

// FormStatus is the message line shown under the form.
type FormStatus struct {
	Message string
	Kind    string // "error" or "success"; empty means nothing shown
}

func NewForm(fields []string) *Form {
	return &Form{
		Fields: append([]string(nil), fields...),
		values: make(map[string]string),
	}
}

// SetValue stores input for a known field and reports whether the field
// exists.
func (f *Form) SetValue(name, value string) bool {
	if f == nil {
		return false
	}
	for _, known := range f.Fields {
		if known == name {
			f.values[name] = value
			return true
		}
	}
	return false
}

func (f *Form) Value(name string) string {
	if f == nil {
		return ""
	}
	return f.values[name]
}

// Reset clears every field but leaves the status line alone.
func (f *Form) Reset() {
	if f == nil {
		return
	}
	f.values = make(map[string]string)
}

func (f *Form) SetStatus(kind, message string) {
	if f == nil {
		return
	}
	f.Status = FormStatus{Kind: kind, Message: message}
}
