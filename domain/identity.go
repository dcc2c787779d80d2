package domain

import "time"

// Identity represents an account in the identity directory: credentials,
// the role claim stamped into issued tokens, and the disabled flag.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	RoleClaim    Role      `json:"role_claim,omitempty"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Identity) IsActive() bool {
	return i != nil && !i.Disabled
}
