package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	client     *redislib.Client
	defaultTTL time.Duration
}

// NewSessionRepository stores sessions as JSON values whose Redis TTL
// tracks the session expiry, so revocation and expiry both reduce to
// key absence.
func NewSessionRepository(client *redislib.Client, defaultTTL time.Duration) repository.SessionRepository {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &sessionRepository{client: client, defaultTTL: defaultTTL}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.defaultTTL)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl).Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}
