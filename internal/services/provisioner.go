package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/internal/infrastructure/queue"
	"github.com/blr-world/hub-backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProvisionerConfig controls how frequently the queue is drained.
type ProvisionerConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// Provisioner reacts to committed account creations: allowed accounts get an
// initial profile document, accounts that slipped past the domain enforcer
// get disabled instead. Outcomes are only observable via logs; a failed
// event is retried a bounded number of times and then dropped.
type Provisioner struct {
	store      *queue.Store
	monitor    ConnectionHealth
	identities repository.IdentityStore
	profiles   repository.ProfileRepository
	policy     domain.EmailPolicy
	logger     *zap.Logger
	cron       *cron.Cron
	cfg        ProvisionerConfig
}

func NewProvisioner(
	store *queue.Store,
	monitor ConnectionHealth,
	identities repository.IdentityStore,
	profiles repository.ProfileRepository,
	policy domain.EmailPolicy,
	logger *zap.Logger,
	cfg ProvisionerConfig,
) *Provisioner {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	// The schedule below has whole-second resolution; anything finer
	// would render as "@every 0s" and never fire.
	if cfg.Interval < time.Second {
		cfg.Interval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Provisioner{
		store:      store,
		monitor:    monitor,
		identities: identities,
		profiles:   profiles,
		policy:     policy,
		logger:     logger,
		cfg:        cfg,
		cron:       cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := p.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := p.Drain(ctx); err != nil {
			p.logger.Error("provision drain failed", zap.Error(err))
		}
	}); err != nil {
		p.logger.Error("drain schedule rejected, queued events will not be processed",
			zap.String("schedule", schedule), zap.Error(err))
	}

	return p
}

// Start launches the cron scheduler.
func (p *Provisioner) Start() {
	if p == nil || p.cron == nil {
		return
	}
	p.cron.Start()
	p.logger.Info("profile provisioner started")
}

// Stop gracefully stops the scheduler.
func (p *Provisioner) Stop(ctx context.Context) {
	if p == nil || p.cron == nil {
		return
	}
	stopCtx := p.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	p.logger.Info("profile provisioner stopped")
}

// Drain processes queued events synchronously.
func (p *Provisioner) Drain(ctx context.Context) error {
	if p == nil || p.store == nil {
		return nil
	}
	if p.monitor != nil && !p.monitor.IsOnline() {
		p.logger.Debug("skipping provision drain (offline)")
		return nil
	}

	events, err := p.store.GetBatch(p.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := p.ProcessEvent(ctx, event); err != nil {
			p.logger.Error("failed to provision account",
				zap.String("event_id", event.ID),
				zap.String("user_id", event.UserID),
				zap.Error(err))

			event.Retries++
			if event.Retries >= p.cfg.MaxRetries {
				p.logger.Warn("dropping provision event (max retries reached)", zap.String("event_id", event.ID))
				_ = p.store.Remove(event)
				continue
			}

			if err := p.store.Remove(event); err != nil {
				p.logger.Warn("failed to remove provision event", zap.Error(err))
			}
			if err := p.store.Requeue(event); err != nil {
				p.logger.Error("failed to requeue provision event", zap.Error(err))
			}
			continue
		}

		if err := p.store.Remove(event); err != nil {
			p.logger.Warn("failed to purge processed provision event", zap.Error(err))
		}
	}
	return nil
}

// Enqueue attempts to provision immediately and falls back to persisting the
// event for a later drain pass.
func (p *Provisioner) Enqueue(ctx context.Context, event queue.Event) error {
	if p == nil || p.store == nil {
		return fmt.Errorf("provisioner not configured")
	}

	if p.monitor == nil || p.monitor.IsOnline() {
		if err := p.ProcessEvent(ctx, event); err == nil {
			return nil
		} else {
			p.logger.Warn("immediate provisioning failed, queueing", zap.Error(err))
		}
	}
	return p.store.Enqueue(event)
}

// Size returns the number of queued events.
func (p *Provisioner) Size() int {
	if p == nil || p.store == nil {
		return 0
	}
	size, err := p.store.Size()
	if err != nil {
		return 0
	}
	return size
}

// ProcessEvent applies the provisioning decision for one committed account
// creation.
func (p *Provisioner) ProcessEvent(ctx context.Context, event queue.Event) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if event.UserID == "" {
		return domain.ErrInvalidPayload
	}

	if !p.policy.Allows(event.Email) {
		// The blocking hook was bypassed; compensate by disabling the
		// identity instead of creating a profile.
		if err := p.identities.SetDisabled(ctx, event.UserID, true); err != nil {
			return fmt.Errorf("disable non-conforming identity: %w", err)
		}
		p.logger.Warn("disabled identity outside workspace domain",
			zap.String("user_id", event.UserID),
			zap.String("email", event.Email))
		return nil
	}

	profile := domain.NewDefaultProfile(event.UserID, event.Email, event.DisplayName)
	created, err := p.profiles.CreateIfAbsent(ctx, profile)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if !created {
		p.logger.Debug("profile already provisioned", zap.String("user_id", event.UserID))
		return nil
	}

	p.logger.Info("provisioned profile",
		zap.String("user_id", event.UserID),
		zap.String("email", event.Email))
	return nil
}
