package handler

import (
	"context"

	"hiring-board/internal/delivery/http/dto"
	domainjob "hiring-board/internal/domain/job"
	"hiring-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type PublicJobService interface {
	PublicList(ctx context.Context) ([]domainjob.Job, error)
	PublicBySlug(ctx context.Context, slug string) (domainjob.Job, error)
}

// PublicHandler serves the unauthenticated careers listing.
type PublicHandler struct {
	svc PublicJobService
}

func NewPublicHandler(svc PublicJobService) *PublicHandler {
	return &PublicHandler{svc: svc}
}

func (h *PublicHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.List)
	r.Get("/jobs/:slug", h.Get)
}

func (h *PublicHandler) List(c fiber.Ctx) error {
	items, err := h.svc.PublicList(c.Context())
	if err != nil {
		return mapJobError(err)
	}
	out := make([]dto.PublicJobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, dto.NewPublicJobResponse(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PublicHandler) Get(c fiber.Ctx) error {
	j, err := h.svc.PublicBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPublicJobResponse(j))
}
