package handler

import (
	"errors"

	"hiring-board/internal/delivery/http/dto"
	"hiring-board/internal/delivery/http/middleware"
	"hiring-board/internal/domain/access"
	"hiring-board/internal/pkg/response"
	"hiring-board/internal/usecase"
	ucauth "hiring-board/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts login and refresh on r. Registration is an admin
// action, so it is guarded by authMw and the users.register capability.
// loginMw wraps only the login route.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw, loginMw fiber.Handler) {
	if r == nil {
		return
	}

	if loginMw != nil {
		r.Post("/login", loginMw, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Post("/refresh", h.Refresh)
	r.Post("/register", authMw, middleware.Require(access.UsersRegister), h.Register)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req ucauth.RegisterInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, err := h.uc.Register(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "User registered", dto.NewUserResponse(usr))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, accessTok, refreshTok, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LoginResponse{
		User:          dto.NewUserResponse(usr),
		TokenResponse: dto.TokenResponse{AccessToken: accessTok, RefreshToken: refreshTok},
	})
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	accessTok, refreshTok, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{AccessToken: accessTok, RefreshToken: refreshTok})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var ierr *ucauth.InputError
	switch {
	case errors.As(err, &ierr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", ierr.Fields, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrDepartmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Department not found", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
