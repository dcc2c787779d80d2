package postgres

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blr-world/hub-backend/domain"
)

// These tests run the shipped migration against a real database and
// round-trip the repositories with default (empty-field) values, which
// the mock-based suites cannot cover. They skip unless DATABASE_URL
// points at a disposable Postgres instance.

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	execMigration(t, pool, "0001_init.down.sql")
	execMigration(t, pool, "0001_init.up.sql")
	t.Cleanup(func() {
		execMigration(t, pool, "0001_init.down.sql")
	})
	return pool
}

func execMigration(t *testing.T, pool *pgxpool.Pool, name string) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("..", "..", "assets", "migrations", name))
	if err != nil {
		t.Fatalf("read migration %s: %v", name, err)
	}
	for _, stmt := range strings.Split(string(raw), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(context.Background(), stmt); err != nil {
			t.Fatalf("migration %s: %v", name, err)
		}
	}
}

func TestIdentityStore_CreateWithDefaults(t *testing.T) {
	pool := testPool(t)
	store := NewIdentityStore(pool)
	ctx := context.Background()

	// A fresh sign-up carries only id, email and the password hash.
	id := uuid.NewString()
	email := id + "@blr-world.com"
	if err := store.Create(ctx, &domain.Identity{
		ID:           id,
		Email:        email,
		PasswordHash: "bcrypt-hash",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.DisplayName != "" || got.PhoneNumber != "" || got.PhotoURL != "" {
		t.Errorf("optional fields = %q/%q/%q, want empty", got.DisplayName, got.PhoneNumber, got.PhotoURL)
	}
	if got.RoleClaim != domain.RoleNone {
		t.Errorf("role claim = %q, want none", got.RoleClaim)
	}
	if got.Disabled {
		t.Error("new identity should not be disabled")
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}

	if err := store.SetRoleClaim(ctx, id, domain.RoleManager); err != nil {
		t.Fatalf("SetRoleClaim: %v", err)
	}
	got, err = store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RoleClaim != domain.RoleManager {
		t.Errorf("role claim = %q, want %q", got.RoleClaim, domain.RoleManager)
	}
}

func TestIdentityStore_CreateDuplicateEmail(t *testing.T) {
	pool := testPool(t)
	store := NewIdentityStore(pool)
	ctx := context.Background()

	email := uuid.NewString() + "@blr-world.com"
	first := &domain.Identity{ID: uuid.NewString(), Email: email, PasswordHash: "h"}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := &domain.Identity{ID: uuid.NewString(), Email: email, PasswordHash: "h"}
	if err := store.Create(ctx, second); err != domain.ErrEmailTaken {
		t.Errorf("duplicate Create err = %v, want ErrEmailTaken", err)
	}
}

func TestProfileRepository_ProvisionDefaults(t *testing.T) {
	pool := testPool(t)
	repo := NewProfileRepository(pool)
	ctx := context.Background()

	id := uuid.NewString()
	email := id + "@blr-world.com"
	created, err := repo.CreateIfAbsent(ctx, domain.NewDefaultProfile(id, email, ""))
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if !created {
		t.Fatal("expected first CreateIfAbsent to insert")
	}

	created, err = repo.CreateIfAbsent(ctx, domain.NewDefaultProfile(id, email, "Other Name"))
	if err != nil {
		t.Fatalf("second CreateIfAbsent: %v", err)
	}
	if created {
		t.Error("duplicate CreateIfAbsent must be a no-op")
	}

	got, err := repo.GetByUserID(ctx, id)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Role != domain.RoleEmployee {
		t.Errorf("role = %q, want %q", got.Role, domain.RoleEmployee)
	}
	if got.Department != domain.DefaultDepartment {
		t.Errorf("department = %q, want %q", got.Department, domain.DefaultDepartment)
	}
	if got.PhoneNumber != "" {
		t.Errorf("phone = %q, want empty", got.PhoneNumber)
	}
	if len(got.Documents) != 0 {
		t.Errorf("documents = %v, want none", got.Documents)
	}

	// Appending onto a freshly provisioned profile exercises the jsonb
	// concatenation against the stored empty array.
	if err := repo.AppendDocument(ctx, id, domain.Document{Name: "contract", URL: "https://docs/c1"}); err != nil {
		t.Fatalf("AppendDocument: %v", err)
	}
	got, err = repo.GetByUserID(ctx, id)
	if err != nil {
		t.Fatalf("GetByUserID after append: %v", err)
	}
	if len(got.Documents) != 1 || got.Documents[0].Name != "contract" {
		t.Errorf("documents = %v, want single contract entry", got.Documents)
	}
}
