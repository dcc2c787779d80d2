package repository

import (
	"context"

	"github.com/blr-world/hub-backend/domain"
)

type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	Create(ctx context.Context, department *domain.Department) error
}
