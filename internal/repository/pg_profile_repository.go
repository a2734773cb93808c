package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payam/backend/internal/model"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

type pgProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgProfileRepository returns a PostgreSQL-backed ProfileRepository.
func NewPgProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &pgProfileRepository{pool: pool}
}

func (r *pgProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, email, full_name, password_hash, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.ID, p.Email, p.FullName, p.PasswordHash, p.IsAdmin,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *pgProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, is_admin, created_at, updated_at
		 FROM profiles WHERE email = $1`, email))
}

func (r *pgProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, is_admin, created_at, updated_at
		 FROM profiles WHERE id = $1`, id))
}

func (r *pgProfileRepository) scanOne(row pgx.Row) (*model.Profile, error) {
	p := &model.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
