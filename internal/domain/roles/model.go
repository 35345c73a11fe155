package roles

// Role is the access level attached to a user account.
type Role string

const (
	RoleWorker     Role = "worker"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// IsValid validates the role value
func (r Role) IsValid() bool {
	switch r {
	case RoleWorker, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may approve or reject sessions and tasks.
func (r Role) CanReview() bool {
	return r == RoleSupervisor || r == RoleAdmin
}

// ReviewerRoles lists the roles notified on attendance events.
func ReviewerRoles() []Role {
	return []Role{RoleSupervisor, RoleAdmin}
}
