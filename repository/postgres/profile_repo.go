package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates a Postgres-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `user_id, name, email, role, department, manager, manager_id, phone_number, is_active, employee_number, leave_balance, work_hours, documents, created_at, updated_at, last_login_at`

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) CreateIfAbsent(ctx context.Context, profile *domain.Profile) (bool, error) {
	if profile == nil || profile.UserID == "" {
		return false, domain.ErrInvalidPayload
	}

	// ON CONFLICT DO NOTHING keeps provisioning idempotent: a duplicate
	// account-creation event never overwrites an existing document.
	const query = `
		INSERT INTO profiles (user_id, name, email, role, department, manager, manager_id, phone_number, is_active, employee_number, leave_balance, work_hours, documents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	// work_hours is the only nullable jsonb column; documents is NOT NULL
	// and AppendDocument concatenates onto it, so an absent slice must be
	// stored as an empty array rather than jsonb null.
	var hours []byte
	if profile.WorkHours != nil {
		hours = marshalJSON(profile.WorkHours)
	}
	docs := []byte(`[]`)
	if len(profile.Documents) > 0 {
		docs = marshalJSON(profile.Documents)
	}

	tag, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		string(profile.Role),
		profile.Department,
		profile.Manager,
		nullString(profile.ManagerID),
		profile.PhoneNumber,
		profile.IsActive,
		nullString(profile.EmployeeNumber),
		profile.LeaveBalance,
		hours,
		docs,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *profileRepository) Update(ctx context.Context, userID string, update repository.ProfileUpdate) error {
	const query = `
		UPDATE profiles
		SET name = COALESCE($2, name),
			phone_number = COALESCE($3, phone_number),
			work_hours = COALESCE($4, work_hours),
			updated_at = NOW()
		WHERE user_id = $1
	`
	var hours []byte
	if update.WorkHours != nil {
		hours = marshalJSON(update.WorkHours)
	}
	tag, err := r.pool.Exec(ctx, query, userID, update.Name, update.PhoneNumber, hours)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetRole(ctx context.Context, userID string, role domain.Role) error {
	const query = `
		UPDATE profiles
		SET role = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID, string(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetWorkHours(ctx context.Context, userID string, hours domain.WorkHours) error {
	const query = `
		UPDATE profiles
		SET work_hours = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID, marshalJSON(hours))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) AppendDocument(ctx context.Context, userID string, doc domain.Document) error {
	const query = `
		UPDATE profiles
		SET documents = COALESCE(documents, '[]'::jsonb) || $2::jsonb,
			updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID, marshalJSON(doc))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	const query = `
		UPDATE profiles
		SET last_login_at = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, userID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	var role string
	var managerID, employeeNumber *string
	var workHours, documents []byte

	if err := row.Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&role,
		&profile.Department,
		&profile.Manager,
		&managerID,
		&profile.PhoneNumber,
		&profile.IsActive,
		&employeeNumber,
		&profile.LeaveBalance,
		&workHours,
		&documents,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.LastLoginAt,
	); err != nil {
		return nil, err
	}

	profile.Role = domain.ParseRole(role)
	profile.ManagerID = deref(managerID)
	profile.EmployeeNumber = deref(employeeNumber)
	if len(workHours) > 0 {
		_ = json.Unmarshal(workHours, &profile.WorkHours)
	}
	if len(documents) > 0 {
		_ = json.Unmarshal(documents, &profile.Documents)
	}
	return &profile, nil
}
