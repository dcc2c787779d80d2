package repository

import (
	"context"

	"github.com/blr-world/hub-backend/domain"
)

// SessionRepository stores issued sessions. Expiry is enforced by the
// backing store's TTL; a missing or expired session surfaces as
// domain.ErrSessionNotFound.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
