package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hiring-board/internal/domain/user"
	"hiring-board/internal/pkg/jwt"
	ucauth "hiring-board/internal/usecase/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type stubUsers struct {
	u user.User
}

func (s stubUsers) CreateUser(context.Context, user.User) error { return nil }
func (s stubUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if id != s.u.ID {
		return user.User{}, user.ErrNotFound
	}
	return s.u, nil
}
func (s stubUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if email != s.u.Email {
		return user.User{}, user.ErrNotFound
	}
	return s.u, nil
}
func (s stubUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return email == s.u.Email, nil
}

func newTestAuth(t *testing.T) (*Auth, *jwt.HMACService, user.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := user.User{ID: uuid.New(), Email: "rec@example.com", Name: "Rec", PasswordHash: string(hash), Role: user.RoleRecruiter}
	jwtSvc := jwt.NewHMACService("access", "refresh", time.Hour, 24*time.Hour)
	return NewAuthUsecase(stubUsers{u: u}, nil, jwtSvc), jwtSvc, u
}

func TestAuth_LoginIssuesRoleScopedTokens(t *testing.T) {
	uc, jwtSvc, u := newTestAuth(t)

	got, access, refresh, err := uc.Login(context.Background(), ucauth.LoginInput{Email: u.Email, Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}

	claims, err := jwtSvc.ValidateToken(access)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.Role != string(user.RoleRecruiter) || claims.UserID != u.ID {
		t.Fatalf("unexpected access claims %+v", claims)
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); err != nil {
		t.Fatalf("refresh: %v", err)
	}
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	uc, _, u := newTestAuth(t)

	_, access, _, err := uc.Login(context.Background(), ucauth.LoginInput{Email: u.Email, Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
