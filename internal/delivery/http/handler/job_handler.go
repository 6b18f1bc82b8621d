package handler

import (
	"context"
	"errors"
	"strconv"

	"hiring-board/internal/delivery/http/dto"
	"hiring-board/internal/delivery/http/middleware"
	"hiring-board/internal/domain/access"
	domainjob "hiring-board/internal/domain/job"
	"hiring-board/internal/pkg/response"
	ucjob "hiring-board/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobService interface {
	Get(ctx context.Context, id uuid.UUID) (domainjob.Job, error)
	List(ctx context.Context, p ucjob.ListParams) (ucjob.ListResult, error)
	Create(ctx context.Context, in ucjob.CreateInput, createdBy uuid.UUID) (domainjob.Job, error)
	Update(ctx context.Context, id uuid.UUID, in ucjob.UpdateInput) (domainjob.Job, error)
	RequestReview(ctx context.Context, id uuid.UUID) (domainjob.Job, error)
	Publish(ctx context.Context, id uuid.UUID) (domainjob.Job, error)
	Unpublish(ctx context.Context, id uuid.UUID) (domainjob.Job, error)
	Archive(ctx context.Context, id uuid.UUID) (domainjob.Job, error)
	Restore(ctx context.Context, id uuid.UUID) (domainjob.Job, error)
}

type JobHandler struct {
	svc JobService
}

func NewJobHandler(svc JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// RegisterRoutes expects r to already be behind the auth middleware.
func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", middleware.Require(access.JobsRead), h.List)
	r.Post("/", middleware.Require(access.JobsWrite), h.Create)
	r.Get("/:id", middleware.Require(access.JobsRead), h.Get)
	r.Patch("/:id", middleware.Require(access.JobsWrite), h.Update)

	r.Post("/:id/review", middleware.Require(access.JobsReview), h.transition(h.svc.RequestReview))
	r.Post("/:id/publish", middleware.Require(access.JobsPublish), h.transition(h.svc.Publish))
	r.Post("/:id/unpublish", middleware.Require(access.JobsUnpublish), h.transition(h.svc.Unpublish))
	r.Post("/:id/archive", middleware.Require(access.JobsArchive), h.transition(h.svc.Archive))
	r.Post("/:id/restore", middleware.Require(access.JobsRestore), h.transition(h.svc.Restore))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", map[string]string{"page": "must be a number"}, err)
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", map[string]string{"limit": "must be a number"}, err)
	}

	res, err := h.svc.List(c.Context(), ucjob.ListParams{
		Query:        c.Query("q"),
		Status:       c.Query("status"),
		DepartmentID: c.Query("dept"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		Items: dto.NewJobResponses(res.Items),
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	j, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req ucjob.CreateInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.svc.Create(c.Context(), req, userID)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ucjob.UpdateInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	j, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", dto.NewJobResponse(j))
}

func (h *JobHandler) transition(fn func(ctx context.Context, id uuid.UUID) (domainjob.Job, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := pathUUID(c, "id")
		if err != nil {
			return err
		}
		j, err := fn(c.Context(), id)
		if err != nil {
			return mapJobError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
	}
}

func mapJobError(err error) error {
	if err == nil {
		return nil
	}

	var verr *ucjob.ValidationError
	var terr *domainjob.TransitionError
	switch {
	case errors.As(err, &verr):
		var data any
		if len(verr.Fields) > 0 {
			data = verr.Fields
		}
		return middleware.NewAppError(fiber.StatusBadRequest, verr.Message, data, err)
	case errors.As(err, &terr):
		return middleware.NewAppError(fiber.StatusBadRequest, terr.Reason, nil, err)
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucjob.ErrDepartmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Department not found", nil, err)
	case errors.Is(err, ucjob.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Job was modified concurrently, retry", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
