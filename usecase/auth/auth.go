package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/internal/hooks"
	"github.com/blr-world/hub-backend/pkg/token"
	"github.com/blr-world/hub-backend/repository"
	"github.com/blr-world/hub-backend/usecase"
)

// Result is returned after a successful sign-up or sign-in.
type Result struct {
	Token    string           `json:"token"`
	Session  *domain.Session  `json:"session"`
	Identity *domain.Identity `json:"user"`
}

type UseCase struct {
	identities repository.IdentityStore
	sessions   repository.SessionRepository
	enforcer   hooks.Enforcer
	provision  usecase.ProvisioningQueue
	tokens     *token.Issuer
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(
	identities repository.IdentityStore,
	sessions repository.SessionRepository,
	enforcer hooks.Enforcer,
	provision usecase.ProvisioningQueue,
	tokens *token.Issuer,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		identities: identities,
		sessions:   sessions,
		enforcer:   enforcer,
		provision:  provision,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SignUp creates an identity after the before-create hook approves it, then
// hands the committed account to the provisioner. The caller never waits on
// provisioning.
func (uc *UseCase) SignUp(ctx context.Context, email, password, name string) (*Result, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	// Blocking guard: a rejection here means the identity is never persisted.
	if err := uc.enforcer.BeforeCreate(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  name,
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			return nil, err
		}
		uc.logger.Error("identity creation failed", zap.String("email", email), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	// Reactive step: failure is logged, never surfaced to the caller.
	if err := uc.provision.EnqueueAccountCreated(ctx, usecase.AccountCreatedEvent{
		UserID:      identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	}); err != nil {
		uc.logger.Error("failed to enqueue profile provisioning",
			zap.String("user_id", identity.ID), zap.Error(err))
	}

	return uc.openSession(ctx, identity)
}

// SignIn verifies credentials after the before-sign-in hook approves the
// address. Disabled identities are rejected even with valid credentials.
func (uc *UseCase) SignIn(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	if err := uc.enforcer.BeforeSignIn(ctx, email); err != nil {
		return nil, err
	}

	identity, err := uc.identities.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		uc.logger.Error("identity lookup failed", zap.String("email", email), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if identity.Disabled {
		return nil, domain.ErrIdentityDisabled
	}

	return uc.openSession(ctx, identity)
}

// SignOut revokes the session.
func (uc *UseCase) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidPayload
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) openSession(ctx context.Context, identity *domain.Identity) (*Result, error) {
	signed, err := uc.tokens.Issue(identity)
	if err != nil {
		uc.logger.Error("token issuance failed", zap.String("user_id", identity.ID), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    identity.ID,
		Email:     identity.Email,
		Role:      identity.RoleClaim,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.sessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Error("session save failed", zap.String("user_id", identity.ID), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	return &Result{
		Token:    signed,
		Session:  session,
		Identity: identity,
	}, nil
}
