package tui

import "strings"

const (
	routeHome         = "/"
	routeLogin        = "/login"
	routeSignup       = "/signup"
	routeCourses      = "/courses"
	routeAdminSignup  = "/admin/signup"
	routeCourseVideos = "/courseVideos"
	buyPrefix         = "/buy/"
)

// courseIDFromRoute returns the id of a /buy/<id> route.
func courseIDFromRoute(route string) (string, bool) {
	if !strings.HasPrefix(route, buyPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(route, buyPrefix)
	return id, id != ""
}

// webURL is where hand-off routes continue in the browser.
func webURL(base, route string) string {
	return strings.TrimRight(base, "/") + route
}
