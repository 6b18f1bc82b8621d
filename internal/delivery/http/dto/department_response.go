package dto

import (
	"time"

	"hiring-board/internal/domain/department"

	"github.com/google/uuid"
)

type DepartmentResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewDepartmentResponses(items []department.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, DepartmentResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt})
	}
	return out
}
