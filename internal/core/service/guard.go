package service

import (
	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/ports"
)

// maxRedirects bounds redirect-route chains in the route table.
const maxRedirects = 8

// Guard decides whether a navigation to a route with the given access
// requirement may proceed.
func Guard(access domain.Access, authenticated bool) domain.Decision {
	switch {
	case access == domain.AccessAuthenticated && !authenticated:
		return domain.RedirectTo(domain.LoginRoute)
	case access == domain.AccessGuest && authenticated:
		return domain.RedirectTo(domain.LandingRoute)
	default:
		return domain.Proceed()
	}
}

// Navigator resolves paths against the route table and applies Guard with
// the session's predicate read at call time.
type Navigator struct {
	routes  domain.RouteTable
	session ports.AuthPredicate
}

func NewNavigator(routes domain.RouteTable, session ports.AuthPredicate) *Navigator {
	return &Navigator{routes: routes, session: session}
}

// Navigate returns the route path resolves to and the guard's decision.
// Redirect routes are followed before the guard runs; the decision then
// points at the redirect target unless the guard sends the user elsewhere.
func (n *Navigator) Navigate(path string) (domain.RouteDescriptor, domain.Decision) {
	route, _, ok := n.routes.Match(path)
	if !ok {
		return domain.RouteDescriptor{}, domain.Proceed()
	}

	redirected := ""
	for i := 0; route.Redirect != "" && i < maxRedirects; i++ {
		redirected = route.Redirect
		next, _, ok := n.routes.Match(route.Redirect)
		if !ok {
			return route, domain.RedirectTo(redirected)
		}
		route = next
	}

	if d := Guard(route.Access, n.session.IsAuthenticated()); d.Redirect {
		return route, d
	}
	if redirected != "" {
		return route, domain.RedirectTo(redirected)
	}
	return route, domain.Proceed()
}

// Routes returns the application route table.
func Routes() domain.RouteTable {
	return domain.RouteTable{
		{Path: "/", Name: "home", Redirect: domain.LandingRoute},
		{Path: "/auth", Name: "auth", Access: domain.AccessGuest},
		{Path: "/dashboard", Name: "dashboard", Access: domain.AccessAuthenticated},
		{Path: "/cards", Name: "cards", Access: domain.AccessAuthenticated},
		{Path: "/cards/new", Name: "new-card", Access: domain.AccessAuthenticated},
		{Path: "/cards/:id", Name: "card-detail", Access: domain.AccessAuthenticated},
		{Path: "/media", Name: "media", Access: domain.AccessAuthenticated},
		{Path: "/profile", Name: "profile", Access: domain.AccessAuthenticated},
		{Path: domain.CatchAll, Name: "NotFound"},
	}
}
