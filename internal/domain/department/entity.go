package department

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("department not found")
	ErrExists   = errors.New("department already exists")
)

type Department struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, d Department) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByName(ctx context.Context, name string) (Department, error)
}
