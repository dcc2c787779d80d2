package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blr-world/hub-backend/domain"
	"github.com/blr-world/hub-backend/repository"
)

type identityStore struct {
	pool *pgxpool.Pool
}

// NewIdentityStore instantiates a Postgres-backed identity directory.
func NewIdentityStore(pool *pgxpool.Pool) repository.IdentityStore {
	return &identityStore{pool: pool}
}

const identityColumns = `id, email, password_hash, display_name, phone_number, photo_url, role_claim, disabled, created_at, updated_at`

func (r *identityStore) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM identities
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *identityStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM identities
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *identityStore) Create(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || identity.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
		INSERT INTO identities (id, email, password_hash, display_name, phone_number, photo_url, role_claim, disabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		identity.ID,
		identity.Email,
		identity.PasswordHash,
		identity.DisplayName,
		identity.PhoneNumber,
		identity.PhotoURL,
		nullRole(identity.RoleClaim),
		identity.Disabled,
	).Scan(&identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *identityStore) Update(ctx context.Context, id string, update repository.IdentityUpdate) error {
	const query = `
		UPDATE identities
		SET display_name = COALESCE($2, display_name),
			phone_number = COALESCE($3, phone_number),
			photo_url = COALESCE($4, photo_url),
			disabled = COALESCE($5, disabled),
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, update.DisplayName, update.PhoneNumber, update.PhotoURL, update.Disabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *identityStore) SetRoleClaim(ctx context.Context, id string, role domain.Role) error {
	const query = `
		UPDATE identities
		SET role_claim = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, nullRole(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *identityStore) SetDisabled(ctx context.Context, id string, disabled bool) error {
	const query = `
		UPDATE identities
		SET disabled = $2, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, disabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *identityStore) List(ctx context.Context) ([]domain.Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM identities
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		identities = append(identities, *identity)
	}
	return identities, rows.Err()
}

func (r *identityStore) scanOne(row pgx.Row) (*domain.Identity, error) {
	identity, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return identity, nil
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	var roleClaim *string

	if err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.DisplayName,
		&identity.PhoneNumber,
		&identity.PhotoURL,
		&roleClaim,
		&identity.Disabled,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if roleClaim != nil {
		identity.RoleClaim = domain.ParseRole(*roleClaim)
	}
	return &identity, nil
}
