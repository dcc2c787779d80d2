package domain

import (
	"strings"
	"time"
	"unicode"
)

// Defaults applied when a profile is first provisioned.
const (
	DefaultDepartment = "Unassigned"
)

// WorkDay is a single weekday's working window.
type WorkDay struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkHours holds the five weekday entries of a work schedule.
type WorkHours struct {
	Monday    WorkDay `json:"monday"`
	Tuesday   WorkDay `json:"tuesday"`
	Wednesday WorkDay `json:"wednesday"`
	Thursday  WorkDay `json:"thursday"`
	Friday    WorkDay `json:"friday"`
}

// Document is a named link attached to a profile.
type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Profile is the hub's own record describing an employee, keyed one-to-one
// by identity ID. The role field here is display data; authorization reads
// the effective role via EffectiveRole.
type Profile struct {
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           Role       `json:"role"`
	Department     string     `json:"department"`
	Manager        string     `json:"manager"`
	ManagerID      string     `json:"manager_id,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	IsActive       bool       `json:"is_active"`
	EmployeeNumber string     `json:"employee_number,omitempty"`
	LeaveBalance   float64    `json:"leave_balance"`
	WorkHours      *WorkHours `json:"work_hours,omitempty"`
	Documents      []Document `json:"documents,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

// NewDefaultProfile builds the initial profile written on first provisioning.
func NewDefaultProfile(userID, email, name string) *Profile {
	if name == "" {
		name = DeriveNameFromEmail(email)
	}
	return &Profile{
		UserID:     userID,
		Name:       name,
		Email:      email,
		Role:       RoleEmployee,
		Department: DefaultDepartment,
		Manager:    "",
		IsActive:   true,
	}
}

// DeriveNameFromEmail turns the local part of an address into a display
// name: separators become spaces and each word is capitalized.
// "jane.doe@blr-world.com" -> "Jane Doe". Falls back to "New User".
func DeriveNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "New User"
	}
	local = strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-':
			return ' '
		}
		return r
	}, local)

	words := strings.Fields(local)
	if len(words) == 0 {
		return "New User"
	}
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
