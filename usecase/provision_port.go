package usecase

import "context"

// AccountCreatedEvent is the committed account-creation notification handed
// to the provisioning queue.
type AccountCreatedEvent struct {
	UserID      string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ProvisioningQueue abstracts the provisioner so use cases stay
// storage-agnostic. Enqueued events are processed after the fact; callers
// never observe provisioning failures synchronously.
type ProvisioningQueue interface {
	EnqueueAccountCreated(ctx context.Context, event AccountCreatedEvent) error
}
