package tui

import (
	"github.com/coursify/coursify/internal/service"
)

// affordance is a session-dependent navigation entry shown in the header and
// the sidebar.
type affordance string

const (
	affordLogin  affordance = "Login"
	affordJoin   affordance = "Join Now"
	affordLogout affordance = "Logout"
)

// affordances is the only place the header and the sidebar learn what to
// show, so the two regions cannot disagree.
func affordances(s service.Session) []affordance {
	if s.Authenticated {
		return []affordance{affordLogout}
	}
	return []affordance{affordLogin, affordJoin}
}

// carouselVisible gates the catalog region. Empty, failed and pending
// catalogs all render nothing.
func carouselVisible(c service.CatalogState) bool {
	return len(c.Courses) > 0
}

// sidebar is the collapsible menu: closed -> toggle -> open, and any
// navigation forces closed.
type sidebar struct {
	open   bool
	cursor int
}

func (s *sidebar) toggle() {
	s.open = !s.open
	s.cursor = 0
}

func (s *sidebar) close() {
	s.open = false
	s.cursor = 0
}

func (s *sidebar) move(delta, n int) {
	if n == 0 {
		s.cursor = 0
		return
	}
	s.cursor = (s.cursor + delta + n) % n
}
