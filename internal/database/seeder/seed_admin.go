package seeder

import (
	"context"
	"errors"
	"strings"

	"hiring-board/internal/database"
	ucauth "hiring-board/internal/usecase/auth"
)

// AdminSeeder creates the initial ADMIN account. An existing account with the
// same email is left untouched, including its password.
type AdminSeeder struct {
	Email      string
	Password   string
	Department string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || s.Password == "" {
		return errors.New("admin email and password are required")
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "name", "password_hash", "role", "department_id"); err != nil {
		return err
	}

	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := ucauth.HashPassword(s.Password)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (email, name, password_hash, role, department_id)
			 VALUES ($1, 'Administrator', $2, 'ADMIN', (SELECT id FROM departments WHERE name = $3))
			 ON CONFLICT (email) DO NOTHING`,
			email,
			hash,
			s.Department,
		)
		return err
	})
}
