package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository instantiates a Postgres-backed department repository.
func NewDepartmentRepository(pool *pgxpool.Pool) repository.DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `
		SELECT id, name, manager_id, created_at
		FROM departments
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var dept domain.Department
		var managerID *string
		if err := rows.Scan(&dept.ID, &dept.Name, &managerID, &dept.CreatedAt); err != nil {
			return nil, err
		}
		dept.ManagerID = deref(managerID)
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (r *departmentRepository) Create(ctx context.Context, department *domain.Department) error {
	if department == nil || department.Name == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
		INSERT INTO departments (id, name, manager_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query, department.ID, department.Name, nullString(department.ManagerID)).Scan(&department.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewError(domain.ErrCodeConflict, "department already exists")
		}
		return err
	}
	return nil
}
