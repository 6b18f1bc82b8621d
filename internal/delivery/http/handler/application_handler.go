package handler

import (
	"context"
	"errors"

	"hiring-board/internal/delivery/http/dto"
	"hiring-board/internal/delivery/http/middleware"
	"hiring-board/internal/domain/access"
	"hiring-board/internal/domain/application"
	"hiring-board/internal/pkg/response"
	ucapp "hiring-board/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationService interface {
	Apply(ctx context.Context, slug string, in ucapp.ApplyInput, resume *ucapp.Resume) (application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
}

type ApplicationHandler struct {
	svc ApplicationService
}

func NewApplicationHandler(svc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated apply endpoint.
func (h *ApplicationHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/apply/:slug", h.Apply)
}

// RegisterStaffRoutes shares a prefix with the public apply route, so the
// auth middleware is attached per route rather than to the group.
func (h *ApplicationHandler) RegisterStaffRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/jobs/:id", authMw, middleware.Require(access.ApplicationsRead), h.ListByJob)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	in := ucapp.ApplyInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		CoverLetter: c.FormValue("coverLetter"),
	}

	var resume *ucapp.Resume
	if fh, err := c.FormFile("resume"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume upload", nil, err)
		}
		defer f.Close()
		resume = &ucapp.Resume{Filename: fh.Filename, Size: fh.Size, Body: f}
	}

	a, err := h.svc.Apply(c.Context(), c.Params("slug"), in, resume)
	if err != nil {
		return mapApplicationError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListByJob(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListByJob(c.Context(), id)
	if err != nil {
		return mapApplicationError(err)
	}
	out := make([]dto.ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.NewApplicationResponse(a))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapApplicationError(err error) error {
	var ierr *ucapp.InputError
	switch {
	case errors.As(err, &ierr):
		var data any
		if len(ierr.Fields) > 0 {
			data = ierr.Fields
		}
		return middleware.NewAppError(fiber.StatusBadRequest, ierr.Message, data, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
