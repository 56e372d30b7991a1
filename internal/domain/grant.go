package domain

// GrantAction enumerates the actions a grant can authorize.
type GrantAction string

const (
	ActionCreate GrantAction = "create"
	ActionRead   GrantAction = "read"
	ActionUpdate GrantAction = "update"
	ActionDelete GrantAction = "delete"
)

// Valid reports whether the action belongs to the closed enumeration.
func (a GrantAction) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Grant is one authorization fact resolved for an identity. Grant sets are not
// deduplicated by (resource, action); any matching entry with Granted true is
// sufficient.
type Grant struct {
	ID       string      `json:"id"`
	Resource string      `json:"resource"`
	Action   GrantAction `json:"action"`
	Granted  bool        `json:"granted"`
}
