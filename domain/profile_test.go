package domain

import "testing"

func TestDeriveNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"jane.doe@blr-world.com", "Jane Doe"},
		{"john_smith@blr-world.com", "John Smith"},
		{"mary-ann.lee@blr-world.com", "Mary Ann Lee"},
		{"solo@blr-world.com", "Solo"},
		{"", "New User"},
		{"@blr-world.com", "New User"},
		{"no-at-sign", "New User"},
		{"...@blr-world.com", "New User"},
	}
	for _, tc := range cases {
		if got := DeriveNameFromEmail(tc.email); got != tc.want {
			t.Errorf("DeriveNameFromEmail(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestNewDefaultProfile(t *testing.T) {
	p := NewDefaultProfile("u-1", "jane.doe@blr-world.com", "")
	if p.Role != RoleEmployee {
		t.Errorf("role = %q, want %q", p.Role, RoleEmployee)
	}
	if p.Department != DefaultDepartment {
		t.Errorf("department = %q, want %q", p.Department, DefaultDepartment)
	}
	if p.Manager != "" {
		t.Errorf("manager = %q, want empty", p.Manager)
	}
	if p.Name != "Jane Doe" {
		t.Errorf("name = %q, want %q", p.Name, "Jane Doe")
	}
	if !p.IsActive {
		t.Error("new profiles start active")
	}

	named := NewDefaultProfile("u-2", "jane.doe@blr-world.com", "JD")
	if named.Name != "JD" {
		t.Errorf("display name must win over derivation, got %q", named.Name)
	}
}
