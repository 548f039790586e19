package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultContentIsValid(t *testing.T) {
	t.Parallel()
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := c.PageModel().Validate(); err != nil {
		t.Fatalf("PageModel().Validate: %v", err)
	}
}

func TestPageModelShape(t *testing.T) {
	t.Parallel()
	c := Default()
	m := c.PageModel()

	wantOrder := []string{"hero", "about", "skills", "projects", "contact"}
	if len(m.Sections) != len(wantOrder) {
		t.Fatalf("got %d sections, want %d", len(m.Sections), len(wantOrder))
	}
	for i, want := range wantOrder {
		if m.Sections[i].ID != want {
			t.Errorf("section %d = %q, want %q", i, m.Sections[i].ID, want)
		}
	}

	if len(m.NavLinks) < 4 {
		t.Fatalf("got %d nav links, want at least 4", len(m.NavLinks))
	}
	for _, l := range m.NavLinks {
		if m.SectionIndex(l.TargetID()) < 0 {
			t.Errorf("nav link %q does not resolve", l.Href)
		}
	}

	if len(m.Cards) != len(c.Projects) {
		t.Fatalf("got %d cards, want %d", len(m.Cards), len(c.Projects))
	}
	for _, card := range m.Cards {
		if card.Group != "project-card" {
			t.Errorf("card %q group = %q", card.ID, card.Group)
		}
	}

	// Sections tile the document with no gaps.
	for i := 1; i < len(m.Sections); i++ {
		prev, cur := m.Sections[i-1], m.Sections[i]
		if cur.Box.Top != prev.Box.Bottom() {
			t.Errorf("section %q starts at %v, want %v", cur.ID, cur.Box.Top, prev.Box.Bottom())
		}
	}

	// Cards sit inside the projects section.
	projects := m.Sections[3].Box
	for _, card := range m.Cards {
		if card.Box.Top < projects.Top || card.Box.Bottom() > projects.Bottom() {
			t.Errorf("card %q box %+v escapes the projects section %+v", card.ID, card.Box, projects)
		}
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Parallel()
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != Default().Name {
		t.Fatalf("Name = %q, want built-in content", c.Name)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	doc := `
name: Iris Chen
role: Platform Engineer
typed_line: Hello, I'm Iris
about: I keep fleets of build machines honest.
skills: [Go, Bazel, Kubernetes]
projects:
  - name: Hermetic
    description: Reproducible build cache warmer.
    tags: [go]
  - name: Gull
    description: A tiny log multiplexer.
contact:
  email: iris@example.net
`
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Name != "Iris Chen" || len(c.Projects) != 2 || c.Contact.Email != "iris@example.net" {
		t.Fatalf("unexpected content: %+v", c)
	}
	if err := c.PageModel().Validate(); err != nil {
		t.Fatalf("PageModel().Validate: %v", err)
	}
}

func TestLoadRejectsBrokenContent(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"bad yaml", "name: [", "parse"},
		{
			"missing projects",
			"name: X\nabout: y\nskills: [Go]\ncontact:\n  email: x@example.com\n",
			"at least one project",
		},
		{
			"duplicate project names",
			"name: X\nabout: y\nskills: [Go]\nprojects:\n  - {name: A, description: d}\n  - {name: A, description: d}\ncontact:\n  email: x@example.com\n",
			"duplicate project name",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "content.yaml")
			if err := os.WriteFile(path, []byte(tc.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"Ledgerline", "ledgerline"},
		{"Stacktrace Atlas", "stacktrace-atlas"},
		{"This site", "this-site"},
		{"Cobble & Co", "cobble-co"},
		{"  spaced  out  ", "spaced-out"},
	}
	for _, tc := range cases {
		if got := slug(tc.in); got != tc.want {
			t.Errorf("slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
