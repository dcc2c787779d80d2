package repository

import (
	"context"

	"github.com/blr-world/hub-backend/domain"
)

// IdentityUpdate carries the mutable identity fields. Nil pointers leave the
// corresponding column untouched.
type IdentityUpdate struct {
	DisplayName *string
	PhoneNumber *string
	PhotoURL    *string
	Disabled    *bool
}

// IdentityStore is the hub's view of the identity directory.
type IdentityStore interface {
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) error
	Update(ctx context.Context, id string, update IdentityUpdate) error
	SetRoleClaim(ctx context.Context, id string, role domain.Role) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
	List(ctx context.Context) ([]domain.Identity, error)
}
