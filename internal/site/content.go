// Package site holds the portfolio content and lays it out as the page model
// the UI state controller drives.
package site

// Content is everything shown on the page, loadable from YAML.
type Content struct {
	Name       string       `yaml:"name"`
	Role       string       `yaml:"role"`
	TypedLine  string       `yaml:"typed_line"`
	About      string       `yaml:"about"`
	Skills     []string     `yaml:"skills"`
	Projects   []Project    `yaml:"projects"`
	Experience []Experience `yaml:"experience,omitempty"`
	Education  []Education  `yaml:"education,omitempty"`
	Contact    Contact      `yaml:"contact"`
}

type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
	Link        string   `yaml:"link,omitempty"`
}

type Experience struct {
	Title   string   `yaml:"title"`
	Company string   `yaml:"company"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Bullets []string `yaml:"bullets,omitempty"`
}

type Education struct {
	Degree      string   `yaml:"degree"`
	Institution string   `yaml:"institution"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	Bullets     []string `yaml:"bullets,omitempty"`
}

type Contact struct {
	Email    string `yaml:"email"`
	GitHub   string `yaml:"github,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty"`
}

// Default is the built-in portfolio content, used whenever no content file
// is present.
func Default() *Content {
	return &Content{
		Name:      "Mara Voss",
		Role:      "Backend Engineer",
		TypedLine: "Hi, I'm Mara Voss",
		About: `I build small, sharp backend systems in Go and have a soft spot for
terminal tools that do one thing well. Most of my projects start as a weekend
experiment and end up teaching me something about networks, storage, or the
odd corners of Unix.
Away from the keyboard I climb, keep a sourdough starter alive against the
odds, and collect secondhand synthesizers.`,
		Skills: []string{
			"Go", "PostgreSQL", "SQLite", "Redis",
			"Docker", "Terraform", "Linux", "gRPC",
		},
		Projects: []Project{
			{
				Name: "Ledgerline",
				Description: `A terminal budgeting tool built in Go with the Charmbracelet TUI
stack; imports bank CSV exports and renders monthly burn-down charts inline.`,
				Tags: []string{"Go", "bubbletea", "sqlite"},
			},
			{
				Name: "Relaywatch",
				Description: `A lightweight SMTP relay health monitor that probes endpoints,
records latency percentiles, and pages through a pluggable notifier chain.`,
				Tags: []string{"Go", "smtp", "observability"},
			},
			{
				Name: "Stacktrace Atlas",
				Description: `A web service that clusters crash reports by stack similarity
using shingling and MinHash, with a small dashboard for triage.`,
				Tags: []string{"Go", "postgres"},
			},
			{
				Name: "This site",
				Description: `The page you are reading: a Go portfolio server with a
server-driven theme toggle, scroll-aware navigation, and a terminal preview
mode served over SSH.`,
				Tags: []string{"Go", "gin", "bubbletea"},
			},
		},
		Experience: []Experience{
			{
				Title:   "Backend Engineer",
				Company: "Fernweh Logistics",
				Start:   "Mar 2022",
				End:     "Present",
				Bullets: []string{
					"Own the shipment-tracking ingestion pipeline, moving around two million carrier events a day through a Go and PostgreSQL stack",
					"Cut p99 lookup latency from 900ms to 40ms by introducing a Redis read-through cache with explicit invalidation",
					"Led the migration of batch jobs to event-driven workers, retiring a nightly cron fleet",
				},
			},
			{
				Title:   "Software Engineer",
				Company: "Cobble & Co",
				Start:   "Jun 2019",
				End:     "Feb 2022",
				Bullets: []string{
					"Built internal billing reconciliation tooling in Go, replacing a spreadsheet process that took two days a month",
					"Introduced structured logging and request tracing across a dozen services",
				},
			},
		},
		Education: []Education{
			{
				Degree:      "BSc Computer Science",
				Institution: "University of Twente",
				Start:       "2015",
				End:         "2019",
				Bullets: []string{
					"Thesis on gossip protocols for sensor networks",
					"Teaching assistant for the operating systems course",
				},
			},
		},
		Contact: Contact{
			Email:    "hello@maravoss.dev",
			GitHub:   "https://github.com/maravoss",
			LinkedIn: "https://www.linkedin.com/in/maravoss",
		},
	}
}
