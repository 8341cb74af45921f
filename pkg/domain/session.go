package domain

// DefaultAvatar is shown when a profile carries no avatar.
const DefaultAvatar = "https://qkit.edu.vn/assets/ava.jpg"

// Session is the identity of the signed-in user as seen by the client.
type Session struct {
	UserID   *int64 `json:"userId,omitempty"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// EmptySession returns a session with every field at its default.
func EmptySession() Session {
	return Session{Avatar: DefaultAvatar}
}

// SessionFromProfile builds a session from a profile response, applying
// field defaults for anything the server left out.
func SessionFromProfile(u *User) Session {
	s := EmptySession()
	if u == nil {
		return s
	}
	if u.ID != 0 {
		id := u.ID
		s.UserID = &id
	}
	s.UserName = u.UserName
	if u.Avatar != "" {
		s.Avatar = u.Avatar
	}
	s.Email = u.Email
	if u.Role != nil {
		s.Role = *u.Role
	}
	return s
}

// IsAdmin reports whether the session's role is admin.
func (s Session) IsAdmin() bool { return s.Role.IsAdmin() }

// IsTeacher reports whether the session's role is teacher.
func (s Session) IsTeacher() bool { return s.Role.IsTeacher() }
