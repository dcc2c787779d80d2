package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
	}{
		{"Admin", RoleAdmin},
		{"Manager", RoleManager},
		{"Employee", RoleEmployee},
		{"", RoleNone},
		{"admin", RoleNone},
		{"superuser", RoleNone},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.raw); got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRolePredicates(t *testing.T) {
	if !RoleAdmin.IsAdmin() || !RoleAdmin.IsAdminOrManager() {
		t.Error("Admin predicates failed")
	}
	if !RoleManager.IsManager() || !RoleManager.IsAdminOrManager() {
		t.Error("Manager predicates failed")
	}
	if !RoleEmployee.IsEmployee() || RoleEmployee.IsAdminOrManager() {
		t.Error("Employee predicates failed")
	}
	if RoleNone.IsAdminOrManager() {
		t.Error("RoleNone must never pass a privilege predicate")
	}
}

func TestEffectiveRole(t *testing.T) {
	cases := []struct {
		name   string
		claim  Role
		stored Role
		want   Role
	}{
		{"claim wins over stored", RoleManager, RoleEmployee, RoleManager},
		{"stored used when claim absent", RoleNone, RoleAdmin, RoleAdmin},
		{"defaults to employee", RoleNone, RoleNone, RoleEmployee},
		{"claim wins even when equal tier", RoleEmployee, RoleManager, RoleEmployee},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EffectiveRole(tc.claim, tc.stored); got != tc.want {
				t.Errorf("EffectiveRole(%q, %q) = %q, want %q", tc.claim, tc.stored, got, tc.want)
			}
		})
	}
}
