package domain

import "testing"

func TestSessionFromProfile(t *testing.T) {
	id := int64(2)
	s := SessionFromProfile(&User{
		ID:       1,
		UserName: "ann",
		Avatar:   "a.png",
		Email:    "a@x.com",
		Role:     &Role{ID: &id, Name: RoleAdmin},
	})
	if s.UserID == nil || *s.UserID != 1 {
		t.Errorf("UserID = %v, want 1", s.UserID)
	}
	if s.UserName != "ann" || s.Avatar != "a.png" || s.Email != "a@x.com" {
		t.Errorf("unexpected session fields: %+v", s)
	}
	if !s.IsAdmin() {
		t.Error("IsAdmin() = false, want true")
	}
	if s.IsTeacher() {
		t.Error("IsTeacher() = true, want false")
	}
}

func TestSessionFromProfile_Defaults(t *testing.T) {
	s := SessionFromProfile(&User{})
	if s.UserID != nil {
		t.Errorf("UserID = %v, want nil", *s.UserID)
	}
	if s.UserName != "" || s.Email != "" {
		t.Errorf("names not empty: %+v", s)
	}
	if s.Avatar != DefaultAvatar {
		t.Errorf("Avatar = %q, want placeholder %q", s.Avatar, DefaultAvatar)
	}
	if s.Role.ID != nil || s.Role.Name != "" {
		t.Errorf("Role = %+v, want zero role", s.Role)
	}
}

func TestSessionFromProfile_Nil(t *testing.T) {
	if got := SessionFromProfile(nil); got != EmptySession() {
		t.Errorf("SessionFromProfile(nil) = %+v, want empty session", got)
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		name    string
		admin   bool
		teacher bool
	}{
		{RoleAdmin, true, false},
		{RoleTeacher, false, true},
		{RoleStudent, false, false},
		{"", false, false},
		{"Admin", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Role{Name: tt.name}
			if got := r.IsAdmin(); got != tt.admin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.admin)
			}
			if got := r.IsTeacher(); got != tt.teacher {
				t.Errorf("IsTeacher() = %v, want %v", got, tt.teacher)
			}
		})
	}
}

func TestTeachingMetaAsMeta(t *testing.T) {
	m := TeachingMeta{Total: 21, Page: 2, Limit: 10}.AsMeta()
	if m.TotalItems != 21 || m.ItemsPerPage != 10 || m.CurrentPage != 2 || m.TotalPages != 3 {
		t.Errorf("AsMeta() = %+v", m)
	}
	if got := (TeachingMeta{Total: 5}).AsMeta().TotalPages; got != 0 {
		t.Errorf("TotalPages with zero limit = %d, want 0", got)
	}
}
