// Package hooks holds the account-lifecycle interception points that run
// before an account action commits. Two variants exist: the enforcing one
// applies the workspace domain allow-list, the stub one acknowledges every
// request for deployments where blocking hooks are unavailable. The process
// constructs exactly one of them at startup.
package hooks

import (
	"context"

	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/domain"
)

// Mode tags hook responses so callers can tell which variant handled them.
type Mode string

const (
	ModeEnforcing Mode = "enforcing"
	ModeStub      Mode = "stub"
)

// Enforcer guards account creation and sign-in. Both checks run
// synchronously relative to the commit decision: a non-nil error aborts the
// action before anything is persisted.
type Enforcer interface {
	BeforeCreate(ctx context.Context, email string) error
	BeforeSignIn(ctx context.Context, email string) error
	Mode() Mode
}

// DomainEnforcer rejects accounts outside the workspace domain. Create and
// sign-in consult the same policy value, so the two checks cannot drift.
type DomainEnforcer struct {
	policy domain.EmailPolicy
	logger *zap.Logger
}

func NewDomainEnforcer(policy domain.EmailPolicy, logger *zap.Logger) *DomainEnforcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DomainEnforcer{policy: policy, logger: logger}
}

func (e *DomainEnforcer) BeforeCreate(ctx context.Context, email string) error {
	if !e.policy.Allows(email) {
		e.logger.Warn("blocked account creation outside workspace domain", zap.String("email", email))
		return domain.ErrDomainNotAllowed
	}
	return nil
}

// BeforeSignIn is defense-in-depth for identities that predate the policy or
// were created through another path.
func (e *DomainEnforcer) BeforeSignIn(ctx context.Context, email string) error {
	if !e.policy.Allows(email) {
		e.logger.Warn("blocked sign-in outside workspace domain", zap.String("email", email))
		return domain.ErrDomainNotAllowed
	}
	return nil
}

func (e *DomainEnforcer) Mode() Mode { return ModeEnforcing }

// StubEnforcer acknowledges every request without checking anything. It
// exists so deploy tooling keeps working in environments where the blocking
// hook feature is unavailable; the provisioner compensates for accounts that
// slip through.
type StubEnforcer struct{}

func NewStubEnforcer() *StubEnforcer { return &StubEnforcer{} }

func (e *StubEnforcer) BeforeCreate(ctx context.Context, email string) error { return nil }
func (e *StubEnforcer) BeforeSignIn(ctx context.Context, email string) error { return nil }
func (e *StubEnforcer) Mode() Mode                                           { return ModeStub }
