package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

type UseCase struct {
	identities repository.IdentityStore
	profiles   repository.ProfileRepository
	logger     *zap.Logger
}

func New(identities repository.IdentityStore, profiles repository.ProfileRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		identities: identities,
		profiles:   profiles,
		logger:     logger,
	}
}

// GetUserProfile returns the caller's merged identity: the stored profile
// with the effective role resolved from the identity's role claim. A caller
// whose profile has not been provisioned yet gets a view built from the
// identity record instead of an error.
func (uc *UseCase) GetUserProfile(ctx context.Context, callerID string) (*domain.Profile, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	identity, err := uc.identities.GetByID(ctx, callerID)
	if err != nil {
		uc.logger.Error("identity fetch failed", zap.String("user_id", callerID), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	stored, err := uc.profiles.GetByUserID(ctx, callerID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			// Provisioning may still be in flight.
			return &domain.Profile{
				UserID:      identity.ID,
				Name:        identity.DisplayName,
				Email:       identity.Email,
				PhoneNumber: identity.PhoneNumber,
				Role:        domain.EffectiveRole(identity.RoleClaim, domain.RoleNone),
				Department:  domain.DefaultDepartment,
				IsActive:    identity.IsActive(),
			}, nil
		}
		uc.logger.Error("profile fetch failed", zap.String("user_id", callerID), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	stored.Role = domain.EffectiveRole(identity.RoleClaim, stored.Role)
	return stored, nil
}

// UpdateProfile applies the caller's self-service fields.
func (uc *UseCase) UpdateProfile(ctx context.Context, callerID string, update repository.ProfileUpdate) (*domain.Profile, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := uc.profiles.Update(ctx, callerID, update); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		uc.logger.Error("profile update failed", zap.String("user_id", callerID), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return uc.GetUserProfile(ctx, callerID)
}

// UpdateLastLogin stamps the caller's profile with the current time. A
// not-yet-provisioned profile is not an error; provisioning simply has not
// caught up.
func (uc *UseCase) UpdateLastLogin(ctx context.Context, callerID string) error {
	if callerID == "" {
		return domain.ErrUnauthenticated
	}
	if err := uc.profiles.TouchLastLogin(ctx, callerID, time.Now()); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Debug("last-login touch skipped, profile not provisioned yet", zap.String("user_id", callerID))
			return nil
		}
		uc.logger.Error("last-login touch failed", zap.String("user_id", callerID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return nil
}
