package repository

import (
	"context"
	"fmt"
	"strings"

	"hiring-board/internal/database"
	"hiring-board/internal/domain/job"

	"github.com/google/uuid"
)

// JobFilter selects jobs for the staff listing. Zero values match everything.
type JobFilter struct {
	Query        string
	Status       job.Status
	DepartmentID *uuid.UUID
	Limit        int
	Offset       int
}

type JobQueryRepository interface {
	List(ctx context.Context, f JobFilter) ([]job.Job, error)
	Count(ctx context.Context, f JobFilter) (int, error)
}

type PostgresJobQueryRepository struct {
	db database.DB
}

func NewPostgresJobQueryRepository(db database.DB) *PostgresJobQueryRepository {
	return &PostgresJobQueryRepository{db: db}
}

func (r *PostgresJobQueryRepository) List(ctx context.Context, f JobFilter) ([]job.Job, error) {
	where, args := f.where()

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	q := `SELECT ` + jobColumns + jobFrom + where +
		fmt.Sprintf(` ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobQueryRepository) Count(ctx context.Context, f JobFilter) (int, error) {
	where, args := f.where()
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs j`+where, args...)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

// where renders the filter as a WHERE clause over alias j with positional
// arguments starting at $1.
func (f JobFilter) where() (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d)", n, n))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		clauses = append(clauses, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if f.DepartmentID != nil {
		args = append(args, *f.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("j.department_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes q match literally inside a LIKE pattern.
func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}
