package transport

import "github.com/blr-world/hub-backend/domain"

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignOutRequest struct {
	SessionID string `json:"session_id"`
}

type HookRequest struct {
	Email string `json:"email"`
}

type ProfileUpdateRequest struct {
	Name        *string           `json:"name"`
	PhoneNumber *string           `json:"phone_number"`
	WorkHours   *domain.WorkHours `json:"work_hours"`
}

type RouteGateRequest struct {
	Path          string `json:"path"`
	Loading       bool   `json:"loading"`
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role"`
}

type AdminCreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type RoleUpdateRequest struct {
	Role string `json:"role"`
}

type WorkHoursRequest struct {
	WorkHours domain.WorkHours `json:"work_hours"`
}

type DocumentRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type DepartmentCreateRequest struct {
	Name      string `json:"name"`
	ManagerID string `json:"manager_id"`
}
