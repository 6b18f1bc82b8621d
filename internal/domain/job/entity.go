package job

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID             uuid.UUID
	Title          string
	Slug           string
	Status         Status
	DepartmentID   uuid.UUID
	DepartmentName string
	Description    string
	Location       string
	EmploymentType string
	PublishedAt    *time.Time
	CreatedByID    uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New returns a draft job. The slug is assigned by the caller.
func New(title, description, location, employmentType string, departmentID, createdBy uuid.UUID) Job {
	return Job{
		ID:             uuid.New(),
		Title:          title,
		Status:         StatusDraft,
		DepartmentID:   departmentID,
		Description:    description,
		Location:       location,
		EmploymentType: employmentType,
		PublishedAt:    nil,
		CreatedByID:    createdBy,
	}
}
