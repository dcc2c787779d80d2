package domain

import "testing"

func TestEmailPolicy_Allows(t *testing.T) {
	policy := NewEmailPolicy("@blr-world.com")

	cases := []struct {
		name  string
		email string
		want  bool
	}{
		{"corporate address", "jane.doe@blr-world.com", true},
		{"bare suffix", "@blr-world.com", true},
		{"foreign domain", "jane.doe@gmail.com", false},
		{"subdomain is not the suffix", "jane@mail.blr-world.com", false},
		{"case sensitive", "jane.doe@BLR-World.com", false},
		{"empty email", "", false},
		{"suffix embedded mid-string", "jane@blr-world.com.evil.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Allows(tc.email); got != tc.want {
				t.Errorf("Allows(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}

func TestNewEmailPolicy_Defaults(t *testing.T) {
	if got := NewEmailPolicy("").Suffix(); got != DefaultWorkspaceDomain {
		t.Errorf("empty suffix: got %q, want %q", got, DefaultWorkspaceDomain)
	}
	if got := NewEmailPolicy("corp.example").Suffix(); got != "@corp.example" {
		t.Errorf("missing @: got %q, want %q", got, "@corp.example")
	}
}
