package dto

import (
	"time"

	"hiring-board/internal/domain/job"

	"github.com/google/uuid"
)

type DepartmentRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type JobResponse struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Status         job.Status    `json:"status"`
	DepartmentID   uuid.UUID     `json:"departmentId"`
	Department     DepartmentRef `json:"department"`
	Description    string        `json:"description"`
	Location       string        `json:"location"`
	EmploymentType string        `json:"employmentType"`
	PublishedAt    *time.Time    `json:"publishedAt"`
	CreatedByID    uuid.UUID     `json:"createdById"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// PublicJobResponse omits internal bookkeeping fields.
type PublicJobResponse struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Department     DepartmentRef `json:"department"`
	Description    string        `json:"description"`
	Location       string        `json:"location"`
	EmploymentType string        `json:"employmentType"`
	PublishedAt    *time.Time    `json:"publishedAt"`
}

type JobListResponse struct {
	Items []JobResponse `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Slug:           j.Slug,
		Status:         j.Status,
		DepartmentID:   j.DepartmentID,
		Department:     DepartmentRef{ID: j.DepartmentID, Name: j.DepartmentName},
		Description:    j.Description,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		PublishedAt:    j.PublishedAt,
		CreatedByID:    j.CreatedByID,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

func NewPublicJobResponse(j job.Job) PublicJobResponse {
	return PublicJobResponse{
		ID:             j.ID,
		Title:          j.Title,
		Slug:           j.Slug,
		Department:     DepartmentRef{ID: j.DepartmentID, Name: j.DepartmentName},
		Description:    j.Description,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		PublishedAt:    j.PublishedAt,
	}
}
