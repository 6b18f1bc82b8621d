package auth

import (
	"context"
	"errors"
	"strings"

	"hiring-board/internal/domain/department"
	"hiring-board/internal/domain/user"
	"hiring-board/internal/pkg/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrInternal               = errors.New("internal error")
)

// InputError carries field messages and matches ErrInvalidInput.
type InputError struct {
	Fields map[string]string
}

func (e *InputError) Error() string { return "invalid input" }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

type RegisterInput struct {
	Email        string     `json:"email" validate:"required,email"`
	Name         string     `json:"name" validate:"required,min=2"`
	Password     string     `json:"password" validate:"required,min=6"`
	Role         string     `json:"role" validate:"omitempty,oneof=ADMIN RECRUITER HIRING_MANAGER VIEWER"`
	DepartmentID *uuid.UUID `json:"departmentId"`
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users       user.Repository
	departments department.Repository
	cost        int
}

func NewService(users user.Repository, departments department.Repository) *Service {
	return &Service{users: users, departments: departments, cost: bcrypt.DefaultCost}
}

// Register creates a staff account. Role defaults to VIEWER.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if fields := validate.Struct(in); fields != nil {
		return user.User{}, &InputError{Fields: fields}
	}

	role := user.RoleViewer
	if in.Role != "" {
		role = user.Role(in.Role)
	}

	if in.DepartmentID != nil {
		if s.departments == nil {
			return user.User{}, ErrInternal
		}
		ok, err := s.departments.Exists(ctx, *in.DepartmentID)
		if err != nil {
			return user.User{}, ErrInternal
		}
		if !ok {
			return user.User{}, ErrDepartmentNotFound
		}
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         role,
		DepartmentID: in.DepartmentID,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			return user.User{}, ErrEmailAlreadyRegistered
		case errors.Is(err, department.ErrNotFound):
			return user.User{}, ErrDepartmentNotFound
		default:
			return user.User{}, ErrInternal
		}
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

// Login verifies credentials. Unknown email and wrong password both return
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

// HashPassword is used by the seeder so seeded accounts share the login path.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
