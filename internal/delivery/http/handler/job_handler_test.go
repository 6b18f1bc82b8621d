package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"hiring-board/internal/delivery/http/middleware"
	domainjob "hiring-board/internal/domain/job"
	"hiring-board/internal/domain/user"
	"hiring-board/internal/pkg/response"
	ucjob "hiring-board/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubJobService struct {
	JobService
	jobs map[uuid.UUID]domainjob.Job
}

func (s stubJobService) Get(_ context.Context, id uuid.UUID) (domainjob.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return domainjob.Job{}, ucjob.ErrNotFound
	}
	return j, nil
}

func (s stubJobService) apply(id uuid.UUID, action domainjob.Action) (domainjob.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return domainjob.Job{}, ucjob.ErrNotFound
	}
	next, err := domainjob.Transition(j.Status, action)
	if err != nil {
		return domainjob.Job{}, err
	}
	j.Status = next
	return j, nil
}

func (s stubJobService) Publish(_ context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.apply(id, domainjob.ActionPublish)
}

func (s stubJobService) Archive(_ context.Context, id uuid.UUID) (domainjob.Job, error) {
	return s.apply(id, domainjob.ActionArchive)
}

func newJobTestApp(svc JobService) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	asRecruiter := func(c fiber.Ctx) error {
		c.Locals(middleware.CtxUserIDKey, uuid.New())
		c.Locals(middleware.CtxRoleKey, user.RoleRecruiter)
		return c.Next()
	}
	NewJobHandler(svc).RegisterRoutes(app.Group("/jobs", asRecruiter))
	return app
}

func send(t *testing.T, app *fiber.App, method, path string) (int, response.SemanticResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var body response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, body
}

func TestJobHandler_TransitionErrors(t *testing.T) {
	archived := domainjob.Job{ID: uuid.New(), Slug: "old-role", Status: domainjob.StatusArchived}
	draft := domainjob.Job{ID: uuid.New(), Slug: "new-role", Status: domainjob.StatusDraft}
	app := newJobTestApp(stubJobService{jobs: map[uuid.UUID]domainjob.Job{
		archived.ID: archived,
		draft.ID:    draft,
	}})

	cases := []struct {
		name    string
		path    string
		want    int
		message string
	}{
		{"publish archived", "/jobs/" + archived.ID.String() + "/publish", http.StatusBadRequest, "Only draft or review jobs can be published"},
		{"archive archived", "/jobs/" + archived.ID.String() + "/archive", http.StatusBadRequest, "Job is already archived"},
		{"publish unknown", "/jobs/" + uuid.NewString() + "/publish", http.StatusNotFound, "Job not found"},
		{"publish draft", "/jobs/" + draft.ID.String() + "/publish", http.StatusOK, response.MessageOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := send(t, app, http.MethodPost, tc.path)
			if status != tc.want || body.Message != tc.message {
				t.Fatalf("expected %d %q, got %d %q", tc.want, tc.message, status, body.Message)
			}
		})
	}
}

func TestJobHandler_GetExposesDepartmentID(t *testing.T) {
	j := domainjob.Job{ID: uuid.New(), Slug: "nurse", Status: domainjob.StatusDraft, DepartmentID: uuid.New()}
	app := newJobTestApp(stubJobService{jobs: map[uuid.UUID]domainjob.Job{j.ID: j}})

	status, body := send(t, app, http.MethodGet, "/jobs/"+j.ID.String())
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	data, _ := body.Data.(map[string]any)
	if data["departmentId"] != j.DepartmentID.String() {
		t.Fatalf("expected departmentId %s, got %v", j.DepartmentID, data["departmentId"])
	}
}
