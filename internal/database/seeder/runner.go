package seeder

import (
	"context"
	"fmt"
	"log"

	"hiring-board/internal/database"
)

type Runner struct {
	Logger  *log.Logger
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seed] %s done", s.Name())
		}
	}
	return nil
}
