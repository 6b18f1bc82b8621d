package application

import (
	"time"

	"github.com/google/uuid"
)

// Application is a candidate's submission for a published job. It is never
// updated after it is stored.
type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Name        string
	Email       string
	CoverLetter *string
	ResumeURL   *string
	CreatedAt   time.Time
}
