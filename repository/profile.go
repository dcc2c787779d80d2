package repository

import (
	"context"
	"time"

	"github.com/blr-world/hub-backend/domain"
)

// ProfileUpdate carries the self-service profile fields. Nil pointers leave
// the corresponding column untouched.
type ProfileUpdate struct {
	Name        *string
	PhoneNumber *string
	WorkHours   *domain.WorkHours
}

// ProfileRepository stores the hub's profile documents, one per identity.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// CreateIfAbsent inserts the profile unless one already exists for the
	// user, in which case it reports created=false and leaves the stored
	// document untouched.
	CreateIfAbsent(ctx context.Context, profile *domain.Profile) (created bool, err error)
	Update(ctx context.Context, userID string, update ProfileUpdate) error
	SetRole(ctx context.Context, userID string, role domain.Role) error
	SetWorkHours(ctx context.Context, userID string, hours domain.WorkHours) error
	AppendDocument(ctx context.Context, userID string, doc domain.Document) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	List(ctx context.Context) ([]domain.Profile, error)
}
