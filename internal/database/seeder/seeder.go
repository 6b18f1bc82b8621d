package seeder

import (
	"context"

	"hiring-board/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
