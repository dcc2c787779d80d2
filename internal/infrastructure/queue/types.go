package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event is a committed account-creation notification awaiting provisioning.
// Events survive restarts; provisioning is only observable via logs.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Retries     int       `json:"retries"`
	Timestamp   time.Time `json:"timestamp"`

	bucketKey []byte
}

func (e *Event) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
