package domain

// Role names the API assigns to accounts.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Role is the role object embedded in profiles and user records.
type Role struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// IsAdmin reports whether the role grants admin access.
func (r Role) IsAdmin() bool { return r.Name == RoleAdmin }

// IsTeacher reports whether the role is a teacher role.
func (r Role) IsTeacher() bool { return r.Name == RoleTeacher }
