package domain

// Identity is the resolved caller of a request. The zero value is the
// anonymous caller; authenticated callers always carry both email and role.
type Identity struct {
	Email string
	Role  Role
}

func (id Identity) IsAnonymous() bool {
	return id.Role == ""
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
