package domain

import "strings"

// Access is the per-route authentication requirement.
type Access int

const (
	AccessNone Access = iota
	AccessAuthenticated
	AccessGuest
)

func (a Access) String() string {
	switch a {
	case AccessAuthenticated:
		return "requires-authenticated"
	case AccessGuest:
		return "requires-guest"
	default:
		return "none"
	}
}

// Well-known routes the guard redirects to.
const (
	LoginRoute   = "/auth"
	LandingRoute = "/dashboard"
)

// CatchAll is the path pattern matching anything no other route matched.
const CatchAll = "/*"

// RouteDescriptor describes one navigable route.
type RouteDescriptor struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Access   Access `json:"-"`
	Redirect string `json:"redirect,omitempty"`
}

// Decision is the outcome of a navigation guard evaluation.
type Decision struct {
	Redirect bool   `json:"redirect"`
	Target   string `json:"target,omitempty"`
}

// Proceed lets the navigation through.
func Proceed() Decision { return Decision{} }

// RedirectTo sends the navigation elsewhere.
func RedirectTo(target string) Decision { return Decision{Redirect: true, Target: target} }

// RouteTable is an ordered list of route descriptors.
type RouteTable []RouteDescriptor

// Match finds the descriptor for a concrete path and extracts ":name" params.
// Static segments beat params, params beat the catch-all.
func (t RouteTable) Match(path string) (RouteDescriptor, map[string]string, bool) {
	segs := splitPath(path)

	var (
		best       RouteDescriptor
		bestParams map[string]string
		bestScore  = -1
	)
	for _, r := range t {
		if r.Path == CatchAll {
			if bestScore < 0 {
				best, bestParams, bestScore = r, nil, 0
			}
			continue
		}
		params, score, ok := matchPattern(splitPath(r.Path), segs)
		if ok && score > bestScore {
			best, bestParams, bestScore = r, params, score
		}
	}
	return best, bestParams, bestScore >= 0
}

// ByName returns the descriptor registered under name.
func (t RouteTable) ByName(name string) (RouteDescriptor, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	return RouteDescriptor{}, false
}

// matchPattern scores a match: 2 per static segment, 1 per param segment,
// so the most specific pattern wins.
func matchPattern(pattern, segs []string) (map[string]string, int, bool) {
	if len(pattern) != len(segs) {
		return nil, 0, false
	}
	var params map[string]string
	score := 1
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, 0, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segs[i]
			score++
			continue
		}
		if p != segs[i] {
			return nil, 0, false
		}
		score += 2
	}
	return params, score, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
