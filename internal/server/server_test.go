package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/config"
	"folio/internal/site"
)

func newTestServer(t *testing.T, liveReload bool) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	cfg := config.Config{
		Host:          "127.0.0.1",
		Port:          0,
		SiteDir:       repoRoot,
		DataDir:       t.TempDir(),
		LiveReload:    liveReload,
		WatchDebounce: 50 * time.Millisecond,
	}

	s, err := New(cfg, site.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func get(t *testing.T, s *Server, path string, header http.Header, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, s *Server, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func themeCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "theme" {
			return c
		}
	}
	return nil
}

func TestIndexDefaultsToLight(t *testing.T) {
	s := newTestServer(t, false)

	w := get(t, s, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `data-theme="light"`) {
		t.Errorf("page did not resolve to the light theme")
	}
	if !strings.Contains(body, `nav-link active`) {
		t.Errorf("no nav link carries the active class")
	}
	// The script-less page ships the hero line complete, not typed out.
	if !strings.Contains(body, site.Default().TypedLine) {
		t.Errorf("hero line missing from the page")
	}
	if c := themeCookie(t, w); c != nil {
		t.Errorf("plain page view persisted a theme cookie %q", c.Value)
	}
}

func TestEverySectionShipsRevealed(t *testing.T) {
	s := newTestServer(t, false)

	body := get(t, s, "/", nil).Body.String()
	// No script ever fires an observer callback, so anything below the
	// fold must already carry the reveal class or it stays invisible.
	for _, id := range []string{"hero", "about", "skills", "projects", "contact"} {
		want := fmt.Sprintf(`id=%q class="section revealed"`, id)
		if !strings.Contains(body, want) {
			t.Errorf("section %q did not ship revealed", id)
		}
	}
	if !strings.Contains(body, "project-card revealed") {
		t.Errorf("project cards did not ship revealed")
	}
}

func TestIndexHonorsColorSchemeHint(t *testing.T) {
	s := newTestServer(t, false)

	h := http.Header{}
	h.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	w := get(t, s, "/", h)
	if !strings.Contains(w.Body.String(), `data-theme="dark"`) {
		t.Fatalf("dark client hint did not resolve to the dark theme")
	}
	// System preference alone must never persist.
	if c := themeCookie(t, w); c != nil {
		t.Fatalf("client hint persisted a theme cookie %q", c.Value)
	}
}

func TestThemeToggleRoundTrip(t *testing.T) {
	s := newTestServer(t, false)

	w := postForm(t, s, "/theme", url.Values{})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("POST /theme = %d, want 303", w.Code)
	}
	c := themeCookie(t, w)
	if c == nil || c.Value != "dark" {
		t.Fatalf("toggle from light did not persist dark, cookie=%v", c)
	}

	// The persisted choice wins over a contradicting system hint.
	h := http.Header{}
	h.Set("Sec-CH-Prefers-Color-Scheme", "light")
	page := get(t, s, "/", h, c)
	if !strings.Contains(page.Body.String(), `data-theme="dark"`) {
		t.Fatalf("stored choice did not override the client hint")
	}

	// A second toggle returns to light.
	w = postForm(t, s, "/theme", url.Values{}, c)
	c = themeCookie(t, w)
	if c == nil || c.Value != "light" {
		t.Fatalf("second toggle did not return to light, cookie=%v", c)
	}
}

func TestContactValidation(t *testing.T) {
	s := newTestServer(t, false)

	w := postForm(t, s, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {""},
		"message": {"hello there"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /contact = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Please fill in all fields") {
		t.Errorf("missing validation message for empty email")
	}
	// Failed submits keep what the visitor typed.
	if !strings.Contains(body, `value="Ada"`) {
		t.Errorf("failed submit lost the name field")
	}
	if !strings.Contains(body, "hello there") {
		t.Errorf("failed submit lost the message field")
	}
	// The message has to land in a visible section.
	if !strings.Contains(body, `id="contact" class="section revealed"`) {
		t.Errorf("contact section not revealed in the validation response")
	}
}

func TestContactSuccessResetsFields(t *testing.T) {
	s := newTestServer(t, false)

	w := postForm(t, s, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"hello there"},
	})
	body := w.Body.String()
	if !strings.Contains(body, "Thank you for your message") {
		t.Fatalf("valid submit did not show the success message")
	}
	if strings.Contains(body, `value="Ada"`) || strings.Contains(body, "hello there") {
		t.Errorf("valid submit did not reset the form fields")
	}
}

func TestUnknownPathFallsBackToIndex(t *testing.T) {
	s := newTestServer(t, false)

	w := get(t, s, "/definitely/not/a/page", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET unknown path = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `data-theme=`) {
		t.Errorf("fallback did not render the page")
	}

	req := httptest.NewRequest(http.MethodPost, "/definitely/not/a/page", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("POST unknown path = %d, want 404", rec.Code)
	}
}

func TestDevStats(t *testing.T) {
	s := newTestServer(t, true)

	get(t, s, "/", nil)
	get(t, s, "/", nil)

	w := get(t, s, "/dev/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /dev/stats = %d, want 200", w.Code)
	}
	var payload struct {
		Stats VisitStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("stats payload: %v", err)
	}
	if payload.Stats.TotalVisits != 2 {
		t.Errorf("TotalVisits = %d, want 2", payload.Stats.TotalVisits)
	}
	if payload.Stats.UniqueVisitors != 1 {
		t.Errorf("UniqueVisitors = %d, want 1", payload.Stats.UniqueVisitors)
	}
}

func TestDNTSkipsTracking(t *testing.T) {
	s := newTestServer(t, true)

	h := http.Header{}
	h.Set("DNT", "1")
	get(t, s, "/", h)

	w := get(t, s, "/dev/stats", nil)
	var payload struct {
		Stats VisitStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("stats payload: %v", err)
	}
	// Only the stats request itself is untracked (dev path); the DNT page
	// view must not appear.
	if payload.Stats.TotalVisits != 0 {
		t.Errorf("TotalVisits = %d, want 0 with DNT set", payload.Stats.TotalVisits)
	}
}
