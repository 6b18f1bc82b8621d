package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	DepartmentID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
