// Package route maps navigation paths to screens and decides, per navigation,
// whether the current session may see them.
package route

import (
	"strings"

	"github.com/myhealthapp/fitlog/pkg/models"
)

type Name int

const (
	NotFound Name = iota
	Root
	Login
	Register
	Activities
	ActivityNew
	ActivityEdit
)

// Route is a parsed navigation target. ID is set for ActivityEdit only.
type Route struct {
	Name Name
	ID   models.ID
	// Raw keeps the unmatched path of a NotFound route.
	Raw string
}

// Convenience constructors
var (
	ToRoot        = Route{Name: Root}
	ToLogin       = Route{Name: Login}
	ToRegister    = Route{Name: Register}
	ToActivities  = Route{Name: Activities}
	ToActivityNew = Route{Name: ActivityNew}
)

// ToActivity targets the edit screen of one activity.
func ToActivity(id models.ID) Route {
	return Route{Name: ActivityEdit, ID: id}
}

// Parse maps a path such as "/activities/42" to a Route.
func Parse(path string) Route {
	clean := "/" + strings.Trim(strings.TrimSpace(path), "/")
	segments := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	switch {
	case clean == "/":
		return ToRoot
	case clean == "/login":
		return ToLogin
	case clean == "/register":
		return ToRegister
	case clean == "/activities":
		return ToActivities
	case clean == "/activities/new":
		return ToActivityNew
	case len(segments) == 2 && segments[0] == "activities" && segments[1] != "":
		return ToActivity(models.ID(segments[1]))
	}
	return Route{Name: NotFound, Raw: path}
}

// Path renders the route back to its path form.
func (r Route) Path() string {
	switch r.Name {
	case Root:
		return "/"
	case Login:
		return "/login"
	case Register:
		return "/register"
	case Activities:
		return "/activities"
	case ActivityNew:
		return "/activities/new"
	case ActivityEdit:
		return "/activities/" + r.ID.String()
	default:
		return r.Raw
	}
}

// Protected reports whether the route requires an active session.
func (r Route) Protected() bool {
	switch r.Name {
	case Activities, ActivityNew, ActivityEdit:
		return true
	default:
		return false
	}
}

func (r Route) String() string {
	return r.Path()
}
