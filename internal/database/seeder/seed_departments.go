package seeder

import (
	"context"
	"strings"

	"hiring-board/internal/database"
)

type DepartmentsSeeder struct {
	Names []string
}

func (DepartmentsSeeder) Name() string { return "departments" }

func (s DepartmentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "departments", "id", "name", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range s.Names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO departments (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
				name,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
