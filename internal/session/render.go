package session

import "github.com/quantumhr/portal-service/internal/domain"

// Constraints narrow when a UI fragment may be shown. All given constraints
// must pass.
type Constraints struct {
	AllowedRoles []domain.Role
	Resource     string
	Action       domain.GrantAction
}

// ShouldRender decides fragment visibility for a session snapshot. No
// identity means no rendering; with no constraints any identity passes; role
// and grant constraints are conjunctive.
func ShouldRender(snap Snapshot, c Constraints) bool {
	if snap.Identity == nil {
		return false
	}

	if len(c.AllowedRoles) > 0 {
		allowed := false
		for _, role := range c.AllowedRoles {
			if snap.Identity.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if c.Resource != "" && c.Action != "" {
		if !snap.HasPermission(c.Resource, c.Action) {
			return false
		}
	}

	return true
}
