package domain

// SessionState is the authentication lifecycle of one shell process.
//
//	Anonymous ──login/register──▶ Authenticated
//	Anonymous ──restore token───▶ Pending ──fetch user──▶ Authenticated
//	Pending | Authenticated ──logout / 401 / fetch failure──▶ Anonymous
type SessionState int

const (
	StateAnonymous SessionState = iota
	StatePending
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is a point-in-time copy of the session manager's state.
type Session struct {
	Token   string `json:"-"`
	User    *User  `json:"user,omitempty"`
	Loading bool   `json:"loading"`
}

// State derives the lifecycle state from which fields are present.
func (s Session) State() SessionState {
	switch {
	case s.Token == "":
		return StateAnonymous
	case s.User == nil:
		return StatePending
	default:
		return StateAuthenticated
	}
}

// IsAuthenticated requires both token and user.
func (s Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}
