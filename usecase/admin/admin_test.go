package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

type mockIdentityStore struct {
	repository.IdentityStore
	created   []*domain.Identity
	claims    map[string]domain.Role
	createErr error
	claimErr  error
}

func (m *mockIdentityStore) Create(ctx context.Context, identity *domain.Identity) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, identity)
	return nil
}

func (m *mockIdentityStore) SetRoleClaim(ctx context.Context, id string, role domain.Role) error {
	if m.claimErr != nil {
		return m.claimErr
	}
	if m.claims == nil {
		m.claims = make(map[string]domain.Role)
	}
	m.claims[id] = role
	return nil
}

type mockProfileRepo struct {
	repository.ProfileRepository
	profiles  map[string]*domain.Profile
	roles     map[string]domain.Role
	createErr error
}

func (m *mockProfileRepo) CreateIfAbsent(ctx context.Context, profile *domain.Profile) (bool, error) {
	if m.createErr != nil {
		return false, m.createErr
	}
	if m.profiles == nil {
		m.profiles = make(map[string]*domain.Profile)
	}
	if _, exists := m.profiles[profile.UserID]; exists {
		return false, nil
	}
	m.profiles[profile.UserID] = profile
	return true, nil
}

func (m *mockProfileRepo) SetRole(ctx context.Context, userID string, role domain.Role) error {
	if m.roles == nil {
		m.roles = make(map[string]domain.Role)
	}
	m.roles[userID] = role
	return nil
}

func (m *mockProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type mockDepartmentRepo struct {
	departments []domain.Department
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	return m.departments, nil
}

func (m *mockDepartmentRepo) Create(ctx context.Context, department *domain.Department) error {
	for _, d := range m.departments {
		if d.Name == department.Name {
			return domain.NewError(domain.ErrCodeConflict, "department already exists")
		}
	}
	m.departments = append(m.departments, *department)
	return nil
}

func TestCreateUser_NonAdminFailsFast(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	uc := New(identities, profiles, &mockDepartmentRepo{}, nil)

	for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleManager, domain.RoleNone} {
		_, err := uc.CreateUser(context.Background(), role, CreateUserInput{
			Email:    "new@blr-world.com",
			Password: "secret123",
		})
		if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
			t.Errorf("caller %q: got %v, want forbidden", role, err)
		}
	}
	if len(identities.created) != 0 {
		t.Error("no identity may be created before the permission check")
	}
	if len(profiles.profiles) != 0 {
		t.Error("no profile may be created before the permission check")
	}
}

func TestCreateUser_Success(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	uc := New(identities, profiles, &mockDepartmentRepo{}, nil)

	id, err := uc.CreateUser(context.Background(), domain.RoleAdmin, CreateUserInput{
		Email:    "new@blr-world.com",
		Password: "secret123",
		Name:     "New Hire",
		Role:     domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if id == "" {
		t.Fatal("expected a new identifier")
	}
	if identities.claims[id] != domain.RoleManager {
		t.Errorf("claim = %q, want %q", identities.claims[id], domain.RoleManager)
	}
	profile := profiles.profiles[id]
	if profile == nil {
		t.Fatal("expected a profile document")
	}
	if profile.Department != domain.DefaultDepartment {
		t.Errorf("department = %q, want %q", profile.Department, domain.DefaultDepartment)
	}
	if profile.Manager != "" {
		t.Errorf("manager = %q, want empty", profile.Manager)
	}
	if profile.Role != domain.RoleManager {
		t.Errorf("profile role = %q, want %q", profile.Role, domain.RoleManager)
	}
}

func TestCreateUser_OrphanOnClaimFailure(t *testing.T) {
	identities := &mockIdentityStore{claimErr: errors.New("claims backend down")}
	profiles := &mockProfileRepo{}
	uc := New(identities, profiles, &mockDepartmentRepo{}, nil)

	_, err := uc.CreateUser(context.Background(), domain.RoleAdmin, CreateUserInput{
		Email:    "new@blr-world.com",
		Password: "secret123",
	})
	if !domain.IsDomainError(err, domain.ErrCodeInternal) {
		t.Fatalf("got %v, want internal", err)
	}
	// Known gap: the identity stays behind without claim or profile.
	if len(identities.created) != 1 {
		t.Errorf("identities created = %d, want the orphan", len(identities.created))
	}
	if len(profiles.profiles) != 0 {
		t.Error("no profile may exist after a claim failure")
	}
}

func TestUpdateUserRole(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{
		profiles: map[string]*domain.Profile{"u-1": {UserID: "u-1", Role: domain.RoleEmployee}},
	}
	uc := New(identities, profiles, &mockDepartmentRepo{}, nil)

	if err := uc.UpdateUserRole(context.Background(), domain.RoleManager, "u-1", domain.RoleManager); !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Errorf("manager caller: got %v, want forbidden", err)
	}

	if err := uc.UpdateUserRole(context.Background(), domain.RoleAdmin, "u-1", domain.RoleManager); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if identities.claims["u-1"] != domain.RoleManager {
		t.Error("claim not updated")
	}
	if profiles.roles["u-1"] != domain.RoleManager {
		t.Error("profile role field not updated")
	}

	if err := uc.UpdateUserRole(context.Background(), domain.RoleAdmin, "u-1", domain.Role("Root")); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Errorf("unknown role: got %v, want invalid", err)
	}
}

func TestListUsers_RequiresAdminOrManager(t *testing.T) {
	profiles := &mockProfileRepo{
		profiles: map[string]*domain.Profile{"u-1": {UserID: "u-1"}},
	}
	uc := New(&mockIdentityStore{}, profiles, &mockDepartmentRepo{}, nil)

	if _, err := uc.ListUsers(context.Background(), domain.RoleEmployee); !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Errorf("employee caller: got %v, want forbidden", err)
	}
	users, err := uc.ListUsers(context.Background(), domain.RoleManager)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("users = %d, want 1", len(users))
	}
}

func TestCreateDepartment(t *testing.T) {
	uc := New(&mockIdentityStore{}, &mockProfileRepo{}, &mockDepartmentRepo{}, nil)

	if _, err := uc.CreateDepartment(context.Background(), domain.RoleManager, "Engineering", ""); !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Errorf("manager caller: got %v, want forbidden", err)
	}
	dept, err := uc.CreateDepartment(context.Background(), domain.RoleAdmin, "Engineering", "u-1")
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	if dept.ID == "" {
		t.Error("expected an identifier")
	}
	if _, err := uc.CreateDepartment(context.Background(), domain.RoleAdmin, "Engineering", ""); !domain.IsDomainError(err, domain.ErrCodeConflict) {
		t.Errorf("duplicate: got %v, want conflict", err)
	}
}
