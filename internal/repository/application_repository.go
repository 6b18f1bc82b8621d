package repository

import (
	"context"

	"hiring-board/internal/database"
	"hiring-board/internal/database/postgres"
	"hiring-board/internal/domain/application"

	"github.com/google/uuid"
)

const constraintApplicationJob = "applications_job_id_fkey"

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, name, email, cover_letter, resume_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		a.ID, a.JobID, a.Name, a.Email, a.CoverLetter, a.ResumeURL,
	)
	if err := row.Scan(&a.CreatedAt); err != nil {
		if postgres.ForeignKeyViolation(err, constraintApplicationJob) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, name, email, cover_letter, resume_url, created_at
		 FROM applications
		 WHERE job_id = $1
		 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.Name, &a.Email, &a.CoverLetter, &a.ResumeURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
