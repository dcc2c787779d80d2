package services

import (
	"context"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/internal/infrastructure/queue"
	"github.com/blr-world/hub-backend/usecase"
)

// ProvisionBridge adapts the provisioner to the use-case port.
type ProvisionBridge struct {
	provisioner *Provisioner
}

func NewProvisionBridge(provisioner *Provisioner) *ProvisionBridge {
	return &ProvisionBridge{provisioner: provisioner}
}

func (b *ProvisionBridge) EnqueueAccountCreated(ctx context.Context, event usecase.AccountCreatedEvent) error {
	if b.provisioner == nil || event.UserID == "" {
		return domain.ErrInvalidPayload
	}
	return b.provisioner.Enqueue(ctx, queue.Event{
		UserID:      event.UserID,
		Email:       event.Email,
		DisplayName: event.DisplayName,
		PhotoURL:    event.PhotoURL,
	})
}

var _ usecase.ProvisioningQueue = (*ProvisionBridge)(nil)
