// Package server renders the portfolio over HTTP. Each request builds a
// fresh page document, replays the browser events the request implies
// through the UI state controller, and renders whatever state comes out, so
// the page works with no client scripting at all.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/config"
	"folio/internal/page"
	"folio/internal/site"
	"folio/internal/uistate"
)

const shutdownGrace = 5 * time.Second

type Server struct {
	cfg     config.Config
	content *site.Content
	model   page.Model
	engine  *gin.Engine
	visits  *VisitLog
	hub     *Hub
}

// New wires routes, templates, and the visit log. The content is laid out
// once; per-request state lives in per-request documents.
func New(cfg config.Config, content *site.Content) (*Server, error) {
	model := content.PageModel()
	if err := model.Validate(); err != nil {
		return nil, err
	}

	visits, err := OpenVisitLog(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open visit log: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		content: content,
		model:   model,
		visits:  visits,
	}

	engine := gin.Default()

	pattern := cfg.TemplatesGlob()
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		visits.Close()
		return nil, fmt.Errorf("no templates found at %s", pattern)
	}
	engine.LoadHTMLGlob(pattern)

	engine.Use(visits.Middleware())

	// Home page route
	engine.GET("/", s.handleIndex)

	// No-script theme toggle: flips the cookie and bounces back.
	engine.POST("/theme", s.handleThemeToggle)

	// Contact form for clients without scripting.
	engine.POST("/contact", s.handleContact)

	// HTMX fragments
	engine.GET("/fragments/work", s.handleWorkFragment)
	engine.GET("/fragments/education", s.handleEducationFragment)

	engine.Static("/static", cfg.StaticDir())
	engine.Static("/images", cfg.ImagesDir())

	if cfg.LiveReload {
		s.hub = NewHub()
		engine.GET("/dev/reload", s.handleReloadStream)
		engine.GET("/dev/stats", s.handleStats)
	}

	engine.NoRoute(s.handleNotFound)

	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Close() error { return s.visits.Close() }

// Run serves until ctx is canceled, then drains connections. When live
// reload is on it also watches the site directory.
func (s *Server) Run(ctx context.Context) error {
	if s.hub != nil {
		watcher, err := NewWatcher(s.cfg.SiteDir, s.cfg.WatchDebounce, s.hub)
		if err != nil {
			log.Printf("event=watch_failed dir=%s err=%v", s.cfg.SiteDir, err)
		} else {
			go watcher.Run(ctx)
		}
	}
	go s.visits.Prune(VisitRetention)

	printBanner(s.cfg.Host, s.cfg.Port)

	srv := &http.Server{Addr: s.cfg.Addr(), Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("event=server_started addr=%s live_reload=%t", s.cfg.Addr(), s.cfg.LiveReload)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, nil)
}

// handleNotFound keeps unknown GET paths on the page, like a single-page
// fallback, instead of a bare 404.
func (s *Server) handleNotFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		s.renderPage(c, nil)
		return
	}
	c.Status(http.StatusNotFound)
}

func (s *Server) handleThemeToggle(c *gin.Context) {
	doc := page.NewDocument(s.model)
	ctl := s.newController(c, doc)
	ctl.Dispatch(uistate.LoadMsg{})
	ctl.Dispatch(uistate.ToggleClickMsg{})
	c.Redirect(http.StatusSeeOther, "/")
}

// handleContact replays the same client-side validation contract the page
// applies in the browser. Nothing is forwarded anywhere; the outcome is
// rendered back with the contact section in view.
func (s *Server) handleContact(c *gin.Context) {
	s.renderPage(c, func(ctl *uistate.Controller) {
		for _, field := range s.model.FormFields {
			ctl.Dispatch(uistate.FormInputMsg{Field: field, Value: c.PostForm(field)})
		}
		ctl.Dispatch(uistate.FormSubmitMsg{})
		ctl.Dispatch(uistate.NavClickMsg{Href: "#contact"})
	})
}

func (s *Server) handleWorkFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "work.tmpl", gin.H{
		"Experience": s.content.Experience,
	})
}

func (s *Server) handleEducationFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "education.tmpl", gin.H{
		"Education": s.content.Education,
	})
}

func (s *Server) newController(c *gin.Context, doc *page.Document) *uistate.Controller {
	return uistate.New(doc, newCookieStore(c), uistate.Config{
		SystemDark: func() bool { return clientPrefersDark(c.Request) },
	})
}

// renderPage replays the load sequence a browser would deliver, applies any
// extra events, and renders the resulting document state.
func (s *Server) renderPage(c *gin.Context, mutate func(*uistate.Controller)) {
	doc := page.NewDocument(s.model)
	ctl := s.newController(c, doc)
	ctl.Dispatch(uistate.LoadMsg{})
	if mutate != nil {
		mutate(ctl)
	}
	s.revealAll(ctl)
	// Invite the color-scheme client hint for the next request.
	c.Header("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	c.HTML(http.StatusOK, "index.tmpl", s.pageData(doc))
}

// revealAll delivers an intersection for every observed element. The page
// ships no script, so no observer callback ever fires after render;
// anything left unrevealed would stay invisible forever. Running the
// reveals through the controller keeps the stagger delays stamped the same
// way the animated surfaces get them.
func (s *Server) revealAll(ctl *uistate.Controller) {
	for _, id := range s.model.RevealTargetIDs() {
		ctl.Dispatch(uistate.IntersectMsg{ID: id, Intersecting: true})
	}
}

func (s *Server) pageData(doc *page.Document) gin.H {
	nav := make([]gin.H, len(s.model.NavLinks))
	for i, l := range s.model.NavLinks {
		nav[i] = gin.H{
			"Label":   l.Label,
			"Href":    l.Href,
			"Classes": doc.NavLinks[i].ClassList(),
		}
	}

	sectionClasses := make(map[string]string, len(s.model.Sections))
	for i, sec := range s.model.Sections {
		sectionClasses[sec.ID] = doc.Sections[i].ClassList()
	}

	// Cards are index-aligned with the content's projects.
	cards := make([]gin.H, len(s.model.Cards))
	for i, card := range s.model.Cards {
		data := gin.H{
			"ID":      card.ID,
			"Classes": doc.Cards[i].ClassList(),
			"Delay":   doc.Cards[i].Attr("data-reveal-delay"),
		}
		if i < len(s.content.Projects) {
			p := s.content.Projects[i]
			data["Name"] = p.Name
			data["Description"] = p.Description
			data["Tags"] = p.Tags
			data["Link"] = p.Link
		}
		cards[i] = data
	}

	form := gin.H{"StatusKind": "", "StatusMessage": "", "Values": map[string]string{}}
	if doc.Form != nil {
		values := make(map[string]string, len(doc.Form.Fields))
		for _, f := range doc.Form.Fields {
			values[f] = doc.Form.Value(f)
		}
		form = gin.H{
			"StatusKind":    doc.Form.Status.Kind,
			"StatusMessage": doc.Form.Status.Message,
			"Values":        values,
		}
	}

	return gin.H{
		"Title":             s.model.Title,
		"Theme":             doc.Root.Attr("data-theme"),
		"NavbarClasses":     doc.Navbar.ClassList(),
		"Nav":               nav,
		"ToggleClasses":     doc.Toggle.ClassList(),
		"ToggleLabel":       doc.Toggle.Attr("aria-label"),
		"ToggleIconClasses": doc.ToggleIcon.ClassList(),
		// Nothing runs the typing animation on the script-less page, so the
		// hero line ships complete instead of the document's empty prefix.
		"TypedFull":      s.model.TypedText,
		"SectionClasses": sectionClasses,
		"Cards":          cards,
		"Form":           form,
		"Content":        s.content,
		"LiveReload":     s.cfg.LiveReload,
	}
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.visits.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recent, err := s.visits.Recent(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"recent_visitors":  recent,
		"reload_listeners": s.hub.Len(),
	})
}
