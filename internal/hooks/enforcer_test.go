package hooks

import (
	"context"
	"testing"

	"github.com/blr-world/hub-backend/domain"
)

func TestDomainEnforcer_BlocksForeignDomains(t *testing.T) {
	enforcer := NewDomainEnforcer(domain.NewEmailPolicy("@blr-world.com"), nil)
	ctx := context.Background()

	if err := enforcer.BeforeCreate(ctx, "jane@blr-world.com"); err != nil {
		t.Errorf("BeforeCreate allowed domain: %v", err)
	}
	if err := enforcer.BeforeSignIn(ctx, "jane@blr-world.com"); err != nil {
		t.Errorf("BeforeSignIn allowed domain: %v", err)
	}

	err := enforcer.BeforeCreate(ctx, "jane@gmail.com")
	if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Errorf("BeforeCreate foreign domain: got %v, want forbidden", err)
	}
	err = enforcer.BeforeSignIn(ctx, "jane@gmail.com")
	if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Errorf("BeforeSignIn foreign domain: got %v, want forbidden", err)
	}

	if err := enforcer.BeforeCreate(ctx, ""); err == nil {
		t.Error("BeforeCreate must reject empty email")
	}
	if enforcer.Mode() != ModeEnforcing {
		t.Errorf("mode = %q, want %q", enforcer.Mode(), ModeEnforcing)
	}
}

func TestStubEnforcer_AcksEverything(t *testing.T) {
	enforcer := NewStubEnforcer()
	ctx := context.Background()

	if err := enforcer.BeforeCreate(ctx, "anyone@anywhere.com"); err != nil {
		t.Errorf("stub BeforeCreate: %v", err)
	}
	if err := enforcer.BeforeSignIn(ctx, ""); err != nil {
		t.Errorf("stub BeforeSignIn: %v", err)
	}
	if enforcer.Mode() != ModeStub {
		t.Errorf("mode = %q, want %q", enforcer.Mode(), ModeStub)
	}
}
