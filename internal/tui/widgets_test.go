package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/coursify/coursify/internal/catalog"
	"github.com/coursify/coursify/internal/service"
)

func courses(n int) []catalog.Course {
	out := make([]catalog.Course, n)
	for i := range out {
		out[i] = catalog.Course{ID: string(rune('a' + i)), Title: "Course " + string(rune('A'+i))}
	}
	return out
}

func TestCardsPerPage(t *testing.T) {
	cases := map[int]int{40: 1, 59: 1, 60: 2, 89: 2, 90: 3, 119: 3, 120: 4, 200: 4}
	for width, want := range cases {
		require.Equal(t, want, cardsPerPage(width), "width %d", width)
	}
}

func TestCarouselWrapsAndClamps(t *testing.T) {
	var c carousel
	c.next(3, 4)
	require.Equal(t, 0, c.index, "a single page never moves")

	c.next(5, 2)
	c.next(5, 2)
	c.next(5, 2)
	require.Equal(t, 3, c.index)
	require.Len(t, c.visible(courses(5), 2), 2)
	c.next(5, 2)
	require.Equal(t, 0, c.index)

	c.index = 3
	c.clamp(5, 4)
	require.Equal(t, 1, c.index)

	c.prev()
	c.prev()
	require.Equal(t, 0, c.index)
	require.Nil(t, c.visible(nil, 3))
}

func TestCarouselViewDots(t *testing.T) {
	c := carousel{index: 1}
	view := c.view(courses(4), 70)
	require.Equal(t, 2, strings.Count(view, "Enroll Now"))
	require.Equal(t, 1, strings.Count(view, "●"))
	require.Equal(t, 2, strings.Count(view, "○"))
	require.Contains(t, view, "Course B")
	require.NotContains(t, view, "Course A")
}

func TestAffordancesFollowSession(t *testing.T) {
	require.Equal(t, []affordance{affordLogout}, affordances(service.Session{Authenticated: true}))
	require.Equal(t, []affordance{affordLogin, affordJoin}, affordances(service.Session{}))
}

func TestCarouselVisibleOnlyWithCourses(t *testing.T) {
	require.False(t, carouselVisible(service.CatalogState{}))
	require.False(t, carouselVisible(service.CatalogState{LoadError: true, Loaded: true}))
	require.True(t, carouselVisible(service.CatalogState{Courses: courses(1), Loaded: true}))
}

func TestSidebarCursorWraps(t *testing.T) {
	var s sidebar
	s.toggle()
	s.move(-1, 2)
	require.Equal(t, 1, s.cursor)
	s.move(1, 2)
	require.Equal(t, 0, s.cursor)
	s.move(1, 0)
	require.Equal(t, 0, s.cursor)
	s.close()
	require.False(t, s.open)
}

func TestToastsExpireIndependently(t *testing.T) {
	ts := toasts{}
	require.NotNil(t, ts.success("saved"))
	require.NotNil(t, ts.failure("broken"))
	require.Nil(t, ts.success("   "), "blank text is dropped")
	require.Len(t, ts.items, 2)

	ts.expire(ts.items[0].id)
	require.Len(t, ts.items, 1)
	require.Contains(t, ts.view(), "broken")
	require.NotContains(t, ts.view(), "saved")

	ts.expire(999)
	require.Len(t, ts.items, 1)
}

func TestOverlayAt(t *testing.T) {
	base := "aaaaaaaa\nbbbbbbbb"
	out := overlayAt(base, "XY\nZW\nQQ", 3, 1)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "aaaaaaaa", lines[0])
	require.Equal(t, "bbbXYbbb", ansi.Strip(lines[1]))
	require.Equal(t, "   ZW", ansi.Strip(lines[2]))
	require.Equal(t, "   QQ", ansi.Strip(lines[3]))
}

func TestOverlayTopRight(t *testing.T) {
	out := overlayTopRight("..........", "ab", 0, 10, 1)
	require.Equal(t, ".......ab.", out)
}

func TestRoutes(t *testing.T) {
	id, ok := courseIDFromRoute("/buy/c1")
	require.True(t, ok)
	require.Equal(t, "c1", id)
	_, ok = courseIDFromRoute("/buy/")
	require.False(t, ok)
	_, ok = courseIDFromRoute(routeCourses)
	require.False(t, ok)
	require.Equal(t, "http://web.test/buy/c1", webURL("http://web.test/", "/buy/c1"))
}
