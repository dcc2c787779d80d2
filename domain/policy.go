package domain

import "strings"

// DefaultWorkspaceDomain is the corporate email suffix accounts must carry.
const DefaultWorkspaceDomain = "@blr-world.com"

// EmailPolicy decides whether an email address may hold an account at all.
// Both the before-create and before-sign-in guards consult the same policy
// value so the two checks can never drift apart.
type EmailPolicy struct {
	suffix string
}

// NewEmailPolicy builds a policy for the given domain suffix. An empty suffix
// falls back to the default workspace domain.
func NewEmailPolicy(suffix string) EmailPolicy {
	if suffix == "" {
		suffix = DefaultWorkspaceDomain
	}
	if !strings.HasPrefix(suffix, "@") {
		suffix = "@" + suffix
	}
	return EmailPolicy{suffix: suffix}
}

// Allows reports whether the email ends with the configured suffix.
// The match is case-sensitive; empty emails are never allowed.
func (p EmailPolicy) Allows(email string) bool {
	if email == "" {
		return false
	}
	return strings.HasSuffix(email, p.suffix)
}

// Suffix returns the configured domain suffix, including the leading "@".
func (p EmailPolicy) Suffix() string {
	return p.suffix
}
