package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hiring-board/internal/database"
	pgerr "hiring-board/internal/database/postgres"
	"hiring-board/internal/domain/department"
	"hiring-board/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	constraintUserEmail      = "users_email_key"
	constraintUserDepartment = "users_department_id_fkey"
)

type UserRepository struct {
	db database.Querier
}

func NewUserRepository(db database.Querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, department_id, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, department_id) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.DepartmentID,
	)
	switch {
	case err == nil:
		return nil
	case pgerr.UniqueViolation(err, constraintUserEmail):
		return fmt.Errorf("%w: %v", user.ErrEmailTaken, err)
	case pgerr.ForeignKeyViolation(err, constraintUserDepartment):
		return fmt.Errorf("%w: %v", department.ErrNotFound, err)
	default:
		return err
	}
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.ToLower(email))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.DepartmentID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
