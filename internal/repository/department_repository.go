package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hiring-board/internal/database"
	"hiring-board/internal/database/postgres"
	"hiring-board/internal/domain/department"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const constraintDepartmentName = "departments_name_key"

type PostgresDepartmentRepository struct {
	db database.Querier
}

func NewPostgresDepartmentRepository(db database.Querier) *PostgresDepartmentRepository {
	return &PostgresDepartmentRepository{db: db}
}

func (r *PostgresDepartmentRepository) Create(ctx context.Context, d department.Department) (department.Department, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO departments (id, name) VALUES ($1, $2) RETURNING id, name, created_at`,
		d.ID, d.Name,
	)
	out, err := scanDepartment(row)
	if err != nil {
		if postgres.UniqueViolation(err, constraintDepartmentName) {
			return department.Department{}, fmt.Errorf("%w: %v", department.ErrExists, err)
		}
		return department.Department{}, err
	}
	return out, nil
}

func (r *PostgresDepartmentRepository) List(ctx context.Context) ([]department.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM departments ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDepartmentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresDepartmentRepository) FindByName(ctx context.Context, name string) (department.Department, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM departments WHERE name = $1`, name)
	return scanDepartment(row)
}

func scanDepartment(row database.Row) (department.Department, error) {
	var d department.Department
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}
