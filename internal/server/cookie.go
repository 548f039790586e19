package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// cookieStore adapts one request's cookies to the controller's storage
// contract, so an explicit theme choice persists per browser. An absent
// cookie reads as an absent entry, which is what keeps the system
// color-scheme signal authoritative until the visitor toggles.
type cookieStore struct {
	c *gin.Context
}

func newCookieStore(c *gin.Context) *cookieStore { return &cookieStore{c: c} }

func (s *cookieStore) Get(key string) (string, bool, error) {
	value, err := s.c.Cookie(key)
	if err == http.ErrNoCookie {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *cookieStore) Set(key, value string) error {
	s.c.SetCookie(key, value, themeCookieMaxAge, "/", "", false, false)
	return nil
}

// clientPrefersDark reads the Sec-CH-Prefers-Color-Scheme client hint the
// index response invites. Browsers that do not send it read as light,
// matching the default theme precedence.
func clientPrefersDark(r *http.Request) bool {
	return r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark"
}
