package postgres

import (
	"encoding/json"

	"github.com/blr-world/hub-backend/domain"
)

func marshalJSON(v interface{}) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullRole(r domain.Role) interface{} {
	if r == domain.RoleNone {
		return nil
	}
	return string(r)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
