package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

type mockIdentityStore struct {
	repository.IdentityStore
	identities map[string]*domain.Identity
	err        error
}

func (m *mockIdentityStore) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	if identity, ok := m.identities[id]; ok {
		return identity, nil
	}
	return nil, domain.ErrIdentityNotFound
}

type mockProfileRepo struct {
	repository.ProfileRepository
	profiles    map[string]*domain.Profile
	lastLoginAt map[string]time.Time
	err         error
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if profile, ok := m.profiles[userID]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (m *mockProfileRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.profiles[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	if m.lastLoginAt == nil {
		m.lastLoginAt = make(map[string]time.Time)
	}
	m.lastLoginAt[userID] = at
	return nil
}

func TestGetUserProfile_ClaimWinsOverStoredRole(t *testing.T) {
	identities := &mockIdentityStore{
		identities: map[string]*domain.Identity{
			"u-1": {ID: "u-1", Email: "jane@blr-world.com", RoleClaim: domain.RoleManager},
		},
	}
	profiles := &mockProfileRepo{
		profiles: map[string]*domain.Profile{
			"u-1": {UserID: "u-1", Role: domain.RoleEmployee, Department: "Sales"},
		},
	}
	uc := New(identities, profiles, nil)

	got, err := uc.GetUserProfile(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if got.Role != domain.RoleManager {
		t.Errorf("role = %q, want %q (claim wins)", got.Role, domain.RoleManager)
	}
	if got.Department != "Sales" {
		t.Errorf("department = %q, want stored value", got.Department)
	}
}

func TestGetUserProfile_StoredRoleWhenNoClaim(t *testing.T) {
	identities := &mockIdentityStore{
		identities: map[string]*domain.Identity{
			"u-1": {ID: "u-1", Email: "jane@blr-world.com"},
		},
	}
	profiles := &mockProfileRepo{
		profiles: map[string]*domain.Profile{
			"u-1": {UserID: "u-1", Role: domain.RoleAdmin},
		},
	}
	uc := New(identities, profiles, nil)

	got, err := uc.GetUserProfile(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetUserProfile: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", got.Role, domain.RoleAdmin)
	}
}

func TestGetUserProfile_MissingProfileFallsBack(t *testing.T) {
	identities := &mockIdentityStore{
		identities: map[string]*domain.Identity{
			"u-1": {ID: "u-1", Email: "jane@blr-world.com", DisplayName: "Jane"},
		},
	}
	uc := New(identities, &mockProfileRepo{}, nil)

	got, err := uc.GetUserProfile(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("missing profile must not fail: %v", err)
	}
	if got.Role != domain.RoleEmployee {
		t.Errorf("role = %q, want default %q", got.Role, domain.RoleEmployee)
	}
	if got.Email != "jane@blr-world.com" {
		t.Errorf("email = %q, want identity email", got.Email)
	}
}

func TestGetUserProfile_Unauthenticated(t *testing.T) {
	uc := New(&mockIdentityStore{}, &mockProfileRepo{}, nil)

	_, err := uc.GetUserProfile(context.Background(), "")
	if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Fatalf("got %v, want unauthorized", err)
	}
}

func TestGetUserProfile_DownstreamFailureIsGeneric(t *testing.T) {
	identities := &mockIdentityStore{err: errors.New("connection refused to 10.0.0.5:5432")}
	uc := New(identities, &mockProfileRepo{}, nil)

	_, err := uc.GetUserProfile(context.Background(), "u-1")
	if !domain.IsDomainError(err, domain.ErrCodeInternal) {
		t.Fatalf("got %v, want internal", err)
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Message != "internal error" {
		t.Errorf("message = %q, must not leak the downstream cause", dErr.Message)
	}
}

func TestUpdateLastLogin(t *testing.T) {
	identities := &mockIdentityStore{
		identities: map[string]*domain.Identity{"u-1": {ID: "u-1"}},
	}
	profiles := &mockProfileRepo{
		profiles: map[string]*domain.Profile{"u-1": {UserID: "u-1"}},
	}
	uc := New(identities, profiles, nil)

	if err := uc.UpdateLastLogin(context.Background(), "u-1"); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}
	if _, ok := profiles.lastLoginAt["u-1"]; !ok {
		t.Error("expected last login to be stamped")
	}

	// Missing profile is tolerated, not an error.
	if err := uc.UpdateLastLogin(context.Background(), "u-unknown"); err != nil {
		t.Errorf("missing profile: %v", err)
	}

	if err := uc.UpdateLastLogin(context.Background(), ""); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
		t.Errorf("empty caller: got %v, want unauthorized", err)
	}
}
