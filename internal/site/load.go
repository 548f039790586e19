package site

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads content from a YAML file. A missing file falls back to the
// built-in content; a present but broken one is an error so typos never
// silently publish the default page.
func Load(path string) (*Content, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the fields the page cannot render without.
func (c *Content) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(c.About) == "" {
		problems = append(problems, "about is required")
	}
	if len(c.Skills) == 0 {
		problems = append(problems, "at least one skill is required")
	}
	if len(c.Projects) == 0 {
		problems = append(problems, "at least one project is required")
	}
	names := make(map[string]bool)
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, fmt.Sprintf("project %d has no name", i))
			continue
		}
		if names[p.Name] {
			problems = append(problems, fmt.Sprintf("duplicate project name %q", p.Name))
		}
		names[p.Name] = true
		if strings.TrimSpace(p.Description) == "" {
			problems = append(problems, fmt.Sprintf("project %q has no description", p.Name))
		}
	}
	if strings.TrimSpace(c.Contact.Email) == "" {
		problems = append(problems, "contact email is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("content: %s", strings.Join(problems, "; "))
	}
	return nil
}
