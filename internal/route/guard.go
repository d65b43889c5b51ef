package route

// SessionReader is what the guard needs to know about the session.
type SessionReader interface {
	Token() (string, bool)
}

// Decision is the outcome of one navigation.
type Decision struct {
	Route Route
	// Redirected is true when Route differs from the requested one.
	Redirected bool
}

// Guard evaluates navigations against the session. It keeps no state of its
// own, so every call sees the current session.
type Guard struct {
	Session SessionReader
}

func NewGuard(session SessionReader) Guard {
	return Guard{Session: session}
}

// Resolve returns the route to show for a navigation to r.
func (g Guard) Resolve(r Route) Decision {
	_, authenticated := g.Session.Token()

	if r.Name == Root {
		if authenticated {
			return Decision{Route: ToActivities, Redirected: true}
		}
		return Decision{Route: ToLogin, Redirected: true}
	}

	if r.Protected() && !authenticated {
		return Decision{Route: ToLogin, Redirected: true}
	}
	return Decision{Route: r}
}
