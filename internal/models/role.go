package models

// Role is an ordered capability. Higher levels include everything below
// them, so access checks reduce to a single level comparison.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

var roleLevels = map[Role]int{
	RoleUser:      1,
	RoleAdmin:     2,
	RoleDeveloper: 3,
}

// Level returns the role's position in the hierarchy. Unknown roles rank
// below every defined role.
func (r Role) Level() int {
	return roleLevels[r]
}

func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r satisfies an access check requiring the given
// role.
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}
