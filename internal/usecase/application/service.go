package application

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"hiring-board/internal/domain/application"
	"hiring-board/internal/infrastructure/storage"
	"hiring-board/internal/pkg/validate"
	"hiring-board/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrJobNotFound  = errors.New("job not found")
	ErrInternal     = errors.New("internal error")
)

// InputError carries a caller-facing message and optional field map.
type InputError struct {
	Message string
	Fields  map[string]string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

type ApplyInput struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"required,email"`
	CoverLetter string `json:"coverLetter" validate:"max=10000"`
}

type Resume struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type ResumeStore interface {
	SaveResume(filename string, size int64, r io.Reader) (string, error)
	Remove(url string) error
}

type Service struct {
	jobs   repository.JobRepository
	apps   repository.ApplicationRepository
	store  ResumeStore
	logger *log.Logger
}

func NewService(jobs repository.JobRepository, apps repository.ApplicationRepository, store ResumeStore, logger *log.Logger) *Service {
	return &Service{jobs: jobs, apps: apps, store: store, logger: logger}
}

// Apply records an application for the published job behind slug.
func (s *Service) Apply(ctx context.Context, slug string, in ApplyInput, resume *Resume) (application.Application, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)
	if fields := validate.Struct(in); fields != nil {
		return application.Application{}, &InputError{Message: "Invalid request payload", Fields: fields}
	}

	j, err := s.jobs.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	a := application.Application{JobID: j.ID, Name: in.Name, Email: in.Email}
	if in.CoverLetter != "" {
		a.CoverLetter = &in.CoverLetter
	}

	if resume != nil && resume.Body != nil {
		url, err := s.store.SaveResume(resume.Filename, resume.Size, resume.Body)
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			return application.Application{}, &InputError{Message: "Resume must be a PDF, DOC, DOCX, RTF or TXT file"}
		case errors.Is(err, storage.ErrTooLarge):
			return application.Application{}, &InputError{Message: "Resume is too large"}
		case err != nil:
			s.logf("[Apps] resume store failed job=%s err=%v", j.ID, err)
			return application.Application{}, ErrInternal
		}
		a.ResumeURL = &url
	}

	created, err := s.apps.Create(ctx, a)
	if err != nil {
		if a.ResumeURL != nil {
			if rmErr := s.store.Remove(*a.ResumeURL); rmErr != nil {
				s.logf("[Apps] orphan resume url=%s err=%v", *a.ResumeURL, rmErr)
			}
		}
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	s.logf("[Apps] received application id=%s job=%s", created.ID, j.ID)
	return created, nil
}

// ListByJob returns applications for a job, newest first.
func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	items, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}
