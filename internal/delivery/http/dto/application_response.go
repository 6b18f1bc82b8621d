package dto

import (
	"time"

	"hiring-board/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CoverLetter *string   `json:"coverLetter"`
	ResumeURL   *string   `json:"resumeUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		Name:        a.Name,
		Email:       a.Email,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		CreatedAt:   a.CreatedAt,
	}
}
