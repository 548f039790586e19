package page

import (
	"sort"
	"strings"
)

// Element mirrors the presentation state of one page node: its class list,
// attributes, and text content. Methods on a nil *Element are no-ops so
// callers can treat absent optional elements like failed lookups.
type Element struct {
	ID string

	classes map[string]struct{}
	attrs   map[string]string
	text    string
}

func NewElement(id string) *Element {
	return &Element{
		ID:      id,
		classes: make(map[string]struct{}),
		attrs:   make(map[string]string),
	}
}

func (e *Element) AddClass(name string) {
	if e == nil || name == "" {
		return
	}
	e.classes[name] = struct{}{}
}

func (e *Element) RemoveClass(name string) {
	if e == nil {
		return
	}
	delete(e.classes, name)
}

func (e *Element) HasClass(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.classes[name]
	return ok
}

// ClassList returns the classes sorted and space-separated, ready for a
// class attribute.
func (e *Element) ClassList() string {
	if e == nil || len(e.classes) == 0 {
		return ""
	}
	names := make([]string, 0, len(e.classes))
	for name := range e.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

func (e *Element) SetAttr(key, value string) {
	if e == nil || key == "" {
		return
	}
	e.attrs[key] = value
}

func (e *Element) Attr(key string) string {
	if e == nil {
		return ""
	}
	return e.attrs[key]
}

func (e *Element) SetText(s string) {
	if e == nil {
		return
	}
	e.text = s
}

func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text
}
