package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/payam/backend/internal/model"
)

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Save inserts a new contact_submissions row and populates sub.ID and
// timestamps from the database RETURNING clause.
func (r *PgSubmissionRepository) Save(ctx context.Context, sub *model.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (id, name, email, phone, subject, message, status)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		sub.ID, sub.Name, sub.Email, sub.Phone, sub.Subject, sub.Message, sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

// sortColumns maps SortBy values to real column names. Listing queries only
// ever interpolate values from this map, never caller input.
var sortColumns = map[model.SortBy]string{
	model.SortByCreatedAt: "created_at",
	model.SortByName:      "name",
	model.SortBySubject:   "subject",
}

// List returns submissions ordered by opts.SortBy/SortOrder, optionally
// restricted to a single status. Ties on name/subject fall back to the
// store's default order.
func (r *PgSubmissionRepository) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, error) {
	opts = opts.Normalized()

	where := ""
	var args []any
	if opts.StatusFilter != model.FilterAll {
		where = "WHERE status = $1"
		args = append(args, string(opts.StatusFilter))
	}

	direction := "DESC"
	if opts.SortOrder == model.SortAsc {
		direction = "ASC"
	}

	query := `SELECT id, name, email, COALESCE(phone, ''), subject, message, status,
	                 created_at, updated_at, reviewed_by, reviewed_at
	          FROM contact_submissions ` + where +
		` ORDER BY ` + sortColumns[opts.SortBy] + ` ` + direction

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Subject, &s.Message,
			&s.Status, &s.CreatedAt, &s.UpdatedAt, &s.ReviewedBy, &s.ReviewedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// UpdateStatus sets status, reviewed_by and reviewed_at on one row.
// Returns ErrNotFound when no row matches id.
func (r *PgSubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.Status, reviewedBy *string, reviewedAt *time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions
		 SET status = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, string(status), reviewedBy, reviewedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
