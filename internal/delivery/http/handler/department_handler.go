package handler

import (
	"context"
	"errors"

	"hiring-board/internal/delivery/http/dto"
	"hiring-board/internal/delivery/http/middleware"
	"hiring-board/internal/domain/access"
	"hiring-board/internal/domain/department"
	"hiring-board/internal/pkg/response"
	ucdept "hiring-board/internal/usecase/department"

	"github.com/gofiber/fiber/v3"
)

type DepartmentService interface {
	List(ctx context.Context) ([]department.Department, error)
	Create(ctx context.Context, in ucdept.CreateInput) (department.Department, map[string]string, error)
}

type DepartmentHandler struct {
	svc DepartmentService
}

func NewDepartmentHandler(svc DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{svc: svc}
}

func (h *DepartmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", middleware.Require(access.DepartmentsRead), h.List)
	r.Post("/", middleware.Require(access.DepartmentsWrite), h.Create)
}

func (h *DepartmentHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDepartmentResponses(items))
}

func (h *DepartmentHandler) Create(c fiber.Ctx) error {
	var req ucdept.CreateInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	d, fields, err := h.svc.Create(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ucdept.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", fields, err)
		case errors.Is(err, ucdept.ErrExists):
			return middleware.NewAppError(fiber.StatusConflict, "Department already exists", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	out := dto.NewDepartmentResponses([]department.Department{d})
	return response.Success(c, fiber.StatusCreated, "Department created", out[0])
}
