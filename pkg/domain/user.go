package domain

// User is an account as returned by /profile and /users.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	UserName   string `json:"userName"`
	Avatar     string `json:"avatar"`
	IsVerified bool   `json:"isVerified"`
	IsBlocked  bool   `json:"isBlocked"`
	Role       *Role  `json:"role,omitempty"`
}

// UserState is the block/unblock payload used by the user manager.
type UserState struct {
	IsBlocked bool   `json:"isBlocked"`
	State     string `json:"state"`
}
