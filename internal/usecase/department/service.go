package department

import (
	"context"
	"errors"
	"strings"

	"hiring-board/internal/domain/department"
	"hiring-board/internal/pkg/validate"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrExists       = errors.New("department already exists")
	ErrInternal     = errors.New("internal error")
)

type CreateInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type Service struct {
	repo department.Repository
}

func NewService(repo department.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]department.Department, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// Create returns the field map alongside ErrInvalidInput so handlers can
// echo it to the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (department.Department, map[string]string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if fields := validate.Struct(in); fields != nil {
		return department.Department{}, fields, ErrInvalidInput
	}

	d, err := s.repo.Create(ctx, department.Department{Name: in.Name})
	if err != nil {
		if errors.Is(err, department.ErrExists) {
			return department.Department{}, nil, ErrExists
		}
		return department.Department{}, nil, ErrInternal
	}
	return d, nil, nil
}
