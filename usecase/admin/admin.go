package admin

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

// CreateUserInput is the privileged account-creation request.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

type UseCase struct {
	identities  repository.IdentityStore
	profiles    repository.ProfileRepository
	departments repository.DepartmentRepository
	logger      *zap.Logger
}

func New(
	identities repository.IdentityStore,
	profiles repository.ProfileRepository,
	departments repository.DepartmentRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		identities:  identities,
		profiles:    profiles,
		departments: departments,
		logger:      logger,
	}
}

// CreateUser creates an identity, assigns its role claim and writes the
// matching profile. The caller's role claim must be Admin; the check runs
// before any external call. The three writes are not transactional: a
// failure after identity creation leaves an orphaned identity without
// claim or profile, which is logged but not rolled back.
func (uc *UseCase) CreateUser(ctx context.Context, callerRole domain.Role, input CreateUserInput) (string, error) {
	if !callerRole.IsAdmin() {
		return "", domain.ErrAdminRequired
	}
	if input.Email == "" || input.Password == "" {
		return "", domain.ErrInvalidPayload
	}
	role := input.Role
	if role == domain.RoleNone {
		role = domain.RoleEmployee
	}
	if domain.ParseRole(string(role)) == domain.RoleNone {
		return "", domain.NewError(domain.ErrCodeInvalid, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		DisplayName:  input.Name,
		RoleClaim:    role,
	}
	if err := uc.identities.Create(ctx, identity); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			return "", err
		}
		uc.logger.Error("admin user creation failed", zap.String("email", input.Email), zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	if err := uc.identities.SetRoleClaim(ctx, identity.ID, role); err != nil {
		uc.logger.Error("role claim assignment failed, identity orphaned",
			zap.String("user_id", identity.ID), zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	profile := domain.NewDefaultProfile(identity.ID, input.Email, input.Name)
	profile.Role = role
	if _, err := uc.profiles.CreateIfAbsent(ctx, profile); err != nil {
		uc.logger.Error("profile write failed, identity orphaned",
			zap.String("user_id", identity.ID), zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}

	uc.logger.Info("user created by admin",
		zap.String("user_id", identity.ID),
		zap.String("role", string(role)))
	return identity.ID, nil
}

// ListUsers returns all profiles. Admin or Manager tier required.
func (uc *UseCase) ListUsers(ctx context.Context, callerRole domain.Role) ([]domain.Profile, error) {
	if !callerRole.IsAdminOrManager() {
		return nil, domain.ErrAdminRequired
	}
	profiles, err := uc.profiles.List(ctx)
	if err != nil {
		uc.logger.Error("profile list failed", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return profiles, nil
}

// UpdateUserRole changes both the identity claim and the profile field so
// the two stay in agreement. Admin only.
func (uc *UseCase) UpdateUserRole(ctx context.Context, callerRole domain.Role, userID string, role domain.Role) error {
	if !callerRole.IsAdmin() {
		return domain.ErrAdminRequired
	}
	if domain.ParseRole(string(role)) == domain.RoleNone {
		return domain.NewError(domain.ErrCodeInvalid, "unknown role")
	}

	if err := uc.identities.SetRoleClaim(ctx, userID, role); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		uc.logger.Error("role claim update failed", zap.String("user_id", userID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	if err := uc.profiles.SetRole(ctx, userID, role); err != nil {
		// Claim already moved; the claim is authoritative so access is
		// correct, but the display field now lags.
		uc.logger.Error("profile role update failed after claim change",
			zap.String("user_id", userID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return nil
}

// SetWorkHours replaces a user's weekly schedule. Admin or Manager tier.
func (uc *UseCase) SetWorkHours(ctx context.Context, callerRole domain.Role, userID string, hours domain.WorkHours) error {
	if !callerRole.IsAdminOrManager() {
		return domain.ErrAdminRequired
	}
	if err := uc.profiles.SetWorkHours(ctx, userID, hours); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		uc.logger.Error("work hours update failed", zap.String("user_id", userID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return nil
}

// AttachDocument appends a named link to a user's profile. Admin or Manager tier.
func (uc *UseCase) AttachDocument(ctx context.Context, callerRole domain.Role, userID string, doc domain.Document) error {
	if !callerRole.IsAdminOrManager() {
		return domain.ErrAdminRequired
	}
	if doc.Name == "" || doc.URL == "" {
		return domain.ErrInvalidPayload
	}
	if err := uc.profiles.AppendDocument(ctx, userID, doc); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		uc.logger.Error("document attach failed", zap.String("user_id", userID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return nil
}

// ListDepartments is available to any authenticated caller.
func (uc *UseCase) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := uc.departments.List(ctx)
	if err != nil {
		uc.logger.Error("department list failed", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return departments, nil
}

// CreateDepartment adds a department. Admin only.
func (uc *UseCase) CreateDepartment(ctx context.Context, callerRole domain.Role, name, managerID string) (*domain.Department, error) {
	if !callerRole.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	if name == "" {
		return nil, domain.ErrInvalidPayload
	}
	department := &domain.Department{
		ID:        uuid.NewString(),
		Name:      name,
		ManagerID: managerID,
	}
	if err := uc.departments.Create(ctx, department); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			return nil, err
		}
		uc.logger.Error("department creation failed", zap.String("name", name), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "internal error", err)
	}
	return department, nil
}
