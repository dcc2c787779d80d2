package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/internal/infrastructure/queue"
	"github.com/blr-world/hub-backend/repository"
)

type mockIdentityStore struct {
	repository.IdentityStore
	disabled map[string]bool
	err      error
}

func (m *mockIdentityStore) SetDisabled(ctx context.Context, id string, disabled bool) error {
	if m.err != nil {
		return m.err
	}
	if m.disabled == nil {
		m.disabled = make(map[string]bool)
	}
	m.disabled[id] = disabled
	return nil
}

type mockProfileRepo struct {
	repository.ProfileRepository
	profiles map[string]*domain.Profile
	err      error
}

func (m *mockProfileRepo) CreateIfAbsent(ctx context.Context, profile *domain.Profile) (bool, error) {
	if m.err != nil {
		return false, m.err
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

func newTestProvisioner(t *testing.T, identities *mockIdentityStore, profiles *mockProfileRepo) *Provisioner {
	t.Helper()
	store, err := queue.Open(filepath.Join(t.TempDir(), "provision.db"), "provision")
	if err != nil {
		t.Fatalf("open queue: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewProvisioner(store, nil, identities, profiles,
		domain.NewEmailPolicy("@blr-world.com"), nil,
		ProvisionerConfig{Interval: time.Minute, BatchSize: 10, MaxRetries: 2})
}

func TestProcessEvent_AllowedEmailCreatesProfile(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	p := newTestProvisioner(t, identities, profiles)

	err := p.ProcessEvent(context.Background(), queue.Event{
		UserID: "u-1",
		Email:  "jane.doe@blr-world.com",
	})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	profile := profiles.profiles["u-1"]
	if profile == nil {
		t.Fatal("expected a profile to be created")
	}
	if profile.Role != domain.RoleEmployee {
		t.Errorf("role = %q, want %q", profile.Role, domain.RoleEmployee)
	}
	if profile.Department != domain.DefaultDepartment {
		t.Errorf("department = %q, want %q", profile.Department, domain.DefaultDepartment)
	}
	if profile.Name != "Jane Doe" {
		t.Errorf("derived name = %q, want %q", profile.Name, "Jane Doe")
	}
	if len(identities.disabled) != 0 {
		t.Error("allowed account must not be disabled")
	}
}

func TestProcessEvent_DisallowedEmailDisablesIdentity(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	p := newTestProvisioner(t, identities, profiles)

	err := p.ProcessEvent(context.Background(), queue.Event{
		UserID: "u-2",
		Email:  "intruder@gmail.com",
	})
	if err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	if !identities.disabled["u-2"] {
		t.Error("expected identity to be disabled")
	}
	if len(profiles.profiles) != 0 {
		t.Error("no profile may be created for a disallowed account")
	}
}

func TestProcessEvent_Idempotent(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	p := newTestProvisioner(t, identities, profiles)

	event := queue.Event{UserID: "u-3", Email: "bob@blr-world.com", DisplayName: "Bob"}
	if err := p.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("first ProcessEvent: %v", err)
	}

	// Simulate the stored document diverging before the duplicate arrives.
	profiles.profiles["u-3"].Department = "Engineering"

	event.DisplayName = "Robert"
	if err := p.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("second ProcessEvent: %v", err)
	}

	if profiles.profiles["u-3"].Department != "Engineering" {
		t.Error("duplicate event must not overwrite an existing profile")
	}
	if profiles.profiles["u-3"].Name != "Bob" {
		t.Error("duplicate event must not change the stored name")
	}
}

func TestDrain_DropsEventAfterMaxRetries(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{err: errors.New("store unavailable")}
	p := newTestProvisioner(t, identities, profiles)

	if err := p.store.Enqueue(queue.Event{UserID: "u-4", Email: "ann@blr-world.com"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	// MaxRetries is 2: the first pass requeues, the second drops.
	for i := 0; i < 3; i++ {
		if err := p.Drain(context.Background()); err != nil {
			t.Fatalf("drain %d: %v", i, err)
		}
	}

	if size := p.Size(); size != 0 {
		t.Errorf("queue size = %d, want 0 after retry budget exhausted", size)
	}
}

func TestEnqueue_ProcessesImmediatelyWhenOnline(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	p := newTestProvisioner(t, identities, profiles)

	err := p.Enqueue(context.Background(), queue.Event{UserID: "u-5", Email: "kim@blr-world.com"})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if profiles.profiles["u-5"] == nil {
		t.Error("expected immediate provisioning")
	}
	if size := p.Size(); size != 0 {
		t.Errorf("queue size = %d, want 0", size)
	}
}

func TestNewProvisioner_ClampsSubSecondInterval(t *testing.T) {
	identities := &mockIdentityStore{}
	profiles := &mockProfileRepo{}
	store, err := queue.Open(filepath.Join(t.TempDir(), "provision.db"), "provision")
	if err != nil {
		t.Fatalf("open queue: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// A sub-second interval must not collapse to a zero-period schedule.
	p := NewProvisioner(store, nil, identities, profiles,
		domain.NewEmailPolicy("@blr-world.com"), nil,
		ProvisionerConfig{Interval: 100 * time.Millisecond, BatchSize: 10, MaxRetries: 2})

	if p.cfg.Interval < time.Second {
		t.Errorf("interval = %v, want at least 1s", p.cfg.Interval)
	}
	if entries := p.cron.Entries(); len(entries) != 1 {
		t.Errorf("cron entries = %d, want 1", len(entries))
	}
}
