package session

import (
	"net/url"
	"strings"

	"github.com/quantumhr/portal-service/internal/domain"
)

// Well-known guard targets.
const (
	PathLogin          = "/login"
	PathForgotPassword = "/forgot-password"
	PathUnauthorized   = "/unauthorized"
)

// Outcome is the guard's decision for one request: either proceed, or
// redirect to the given target.
type Outcome struct {
	Proceed  bool
	Redirect string
}

// Area maps a path prefix to the roles admitted into it. An empty role set
// admits any authenticated role.
type Area struct {
	Prefix       string
	AllowedRoles []domain.Role
}

// Guard gates navigation into protected areas. The area-to-role mapping is
// fixed configuration: the admin console admits the admin roles, the
// self-service portal admits any authenticated role.
type Guard struct {
	public []string
	areas  []Area
}

// NewGuard builds the guard with the portal's fixed area configuration.
func NewGuard() *Guard {
	return &Guard{
		public: []string{PathLogin, PathForgotPassword},
		areas: []Area{
			{Prefix: "/admin", AllowedRoles: domain.AdminRoles()},
			{Prefix: "/ess"},
		},
	}
}

// Decide evaluates one incoming navigation. This is the coarse edge check:
// it sees only token presence and the role string, never grant detail. The
// fine-grained grant check happens independently at render time and neither
// check may bypass the other.
func (g *Guard) Decide(path string, hasToken bool, role domain.Role) Outcome {
	for _, public := range g.public {
		if strings.HasPrefix(path, public) {
			return Outcome{Proceed: true}
		}
	}

	if !hasToken {
		return Outcome{Redirect: loginRedirect(path)}
	}

	for _, area := range g.areas {
		if !strings.HasPrefix(path, area.Prefix) {
			continue
		}
		if len(area.AllowedRoles) == 0 {
			if !role.Valid() {
				return Outcome{Redirect: loginRedirect(path)}
			}
			return Outcome{Proceed: true}
		}
		for _, allowed := range area.AllowedRoles {
			if role == allowed {
				return Outcome{Proceed: true}
			}
		}
		return Outcome{Redirect: PathUnauthorized}
	}

	return Outcome{Proceed: true}
}

func loginRedirect(path string) string {
	return PathLogin + "?redirect=" + url.QueryEscape(path)
}
