package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hiring-board/internal/database"
	"hiring-board/internal/database/postgres"
	"hiring-board/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrSlugTaken          = errors.New("job slug already taken")
	ErrStatusConflict     = errors.New("job status changed concurrently")
	ErrDepartmentNotFound = errors.New("department not found")
)

const (
	constraintJobSlug       = "jobs_slug_key"
	constraintJobDepartment = "jobs_department_id_fkey"
)

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	FindPublishedBySlug(ctx context.Context, slug string) (job.Job, error)
	ListPublished(ctx context.Context) ([]job.Job, error)
	Create(ctx context.Context, j job.Job) (job.Job, error)
	Update(ctx context.Context, id uuid.UUID, u JobUpdate) (job.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next job.Status, publishedAt *time.Time) (job.Job, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// JobUpdate carries the editable columns; nil fields are left untouched.
type JobUpdate struct {
	Title          *string
	Slug           *string
	Description    *string
	Location       *string
	EmploymentType *string
	DepartmentID   *uuid.UUID
}

func (u JobUpdate) Empty() bool {
	return u.Title == nil && u.Slug == nil && u.Description == nil &&
		u.Location == nil && u.EmploymentType == nil && u.DepartmentID == nil
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `j.id, j.title, j.slug, j.status, j.department_id, COALESCE(d.name, ''),
	j.description, j.location, j.employment_type, j.published_at,
	j.created_by_id, j.created_at, j.updated_at`

const jobFrom = ` FROM jobs j LEFT JOIN departments d ON d.id = j.department_id`

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) FindPublishedBySlug(ctx context.Context, slug string) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+jobFrom+` WHERE j.slug = $1 AND j.status = $2`,
		slug, string(job.StatusPublished),
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) ListPublished(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+jobFrom+` WHERE j.status = $1 ORDER BY j.published_at DESC`,
		string(job.StatusPublished),
	)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, slug, status, department_id, description, location, employment_type, published_at, created_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.Title, j.Slug, string(j.Status), j.DepartmentID,
		j.Description, j.Location, j.EmploymentType, j.PublishedAt, j.CreatedByID,
	)
	if err != nil {
		return job.Job{}, mapJobWriteError(err)
	}
	return r.FindByID(ctx, j.ID)
}

// Update writes the non-nil fields of u. An empty update touches nothing,
// not even updated_at, and returns the stored job.
func (r *PostgresJobRepository) Update(ctx context.Context, id uuid.UUID, u JobUpdate) (job.Job, error) {
	if u.Empty() {
		return r.FindByID(ctx, id)
	}

	sets := make([]string, 0, 7)
	args := []any{id}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Slug != nil {
		set("slug", *u.Slug)
	}
	if u.Description != nil {
		set("description", *u.Description)
	}
	if u.Location != nil {
		set("location", *u.Location)
	}
	if u.EmploymentType != nil {
		set("employment_type", *u.EmploymentType)
	}
	if u.DepartmentID != nil {
		set("department_id", *u.DepartmentID)
	}
	sets = append(sets, "updated_at = now()")

	n, err := r.db.Exec(ctx, `UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return job.Job{}, mapJobWriteError(err)
	}
	if n == 0 {
		return job.Job{}, ErrJobNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdateStatus moves a job from expected to next only if its stored status
// still equals expected. ErrStatusConflict means another writer got there
// first (or the job vanished); callers reload and decide again.
func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next job.Status, publishedAt *time.Time) (job.Job, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $3, published_at = $4, updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, string(expected), string(next), publishedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	if n == 0 {
		return job.Job{}, ErrStatusConflict
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresJobRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`,
		slug, excludeID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func mapJobWriteError(err error) error {
	switch {
	case postgres.UniqueViolation(err, constraintJobSlug):
		return fmt.Errorf("%w: %v", ErrSlugTaken, err)
	case postgres.ForeignKeyViolation(err, constraintJobDepartment):
		return fmt.Errorf("%w: %v", ErrDepartmentNotFound, err)
	default:
		return err
	}
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(
		&j.ID, &j.Title, &j.Slug, &status, &j.DepartmentID, &j.DepartmentName,
		&j.Description, &j.Location, &j.EmploymentType, &j.PublishedAt,
		&j.CreatedByID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
