package domain

import "time"

// Department groups employees under an optional manager.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
