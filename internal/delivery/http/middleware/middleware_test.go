package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiring-board/internal/domain/access"
	"hiring-board/internal/pkg/jwt"
	"hiring-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func newTestApp(t *testing.T, jwtSvc jwt.Service, cap access.Capability) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	auth := NewAuthMiddleware(jwtSvc)
	app.Get("/guarded", auth.Middleware(), Require(cap), func(c fiber.Ctx) error {
		id, _ := UserID(c)
		return response.Success(c, fiber.StatusOK, "", id.String())
	})
	app.Get("/ws", auth.QueryTokenMiddleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, response.SemanticResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var body response.SemanticResponse
	if resp.StatusCode != fiber.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode, body
}

func TestRequire_CapabilityGate(t *testing.T) {
	jwtSvc := jwt.NewHMACService("a", "r", time.Hour, time.Hour)
	app := newTestApp(t, jwtSvc, access.JobsWrite)

	viewer, _ := jwtSvc.GenerateAccessToken(uuid.New(), "v@example.com", "VIEWER")
	recruiter, _ := jwtSvc.GenerateAccessToken(uuid.New(), "r@example.com", "RECRUITER")
	refresh, _ := jwtSvc.GenerateRefreshToken(uuid.New())

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"garbage token", "nope", fiber.StatusUnauthorized},
		{"refresh token", refresh, fiber.StatusUnauthorized},
		{"viewer", viewer, fiber.StatusForbidden},
		{"recruiter", recruiter, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doGet(t, app, "/guarded", tc.token)
			if status != tc.want || body.Status != tc.want {
				t.Fatalf("expected %d, got %d (%+v)", tc.want, status, body)
			}
		})
	}
}

func TestQueryTokenMiddleware(t *testing.T) {
	jwtSvc := jwt.NewHMACService("a", "r", time.Hour, time.Hour)
	app := newTestApp(t, jwtSvc, access.JobsRead)
	tok, _ := jwtSvc.GenerateAccessToken(uuid.New(), "v@example.com", "VIEWER")

	if status, _ := doGet(t, app, "/ws?token="+tok, ""); status != fiber.StatusNoContent {
		t.Fatalf("expected query token to authenticate, got %d", status)
	}
	if status, _ := doGet(t, app, "/ws", ""); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestErrorMiddleware_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("conn refused"))
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("unexpected")
	})
	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "Invalid request payload", map[string]string{"title": "is required"}, nil)
	})

	status, body := doGet(t, app, "/boom", "")
	if status != fiber.StatusInternalServerError || body.Message != response.MessageInternalServerError {
		t.Fatalf("unexpected 500 body %+v", body)
	}
	status, body = doGet(t, app, "/panic", "")
	if status != fiber.StatusInternalServerError || body.Message != response.MessageInternalServerError {
		t.Fatalf("unexpected panic body %+v", body)
	}
	status, body = doGet(t, app, "/bad", "")
	if status != fiber.StatusBadRequest || body.Message != "Invalid request payload" {
		t.Fatalf("unexpected 400 body %+v", body)
	}
	fields, ok := body.Data.(map[string]any)
	if !ok || fields["title"] != "is required" {
		t.Fatalf("expected field map in data, got %#v", body.Data)
	}
}

func TestLoginThrottle(t *testing.T) {
	th := NewLoginThrottle(2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	th.now = func() time.Time { return now }

	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Post("/login", th.Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	post := func() int {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	for i := 0; i < 2; i++ {
		if got := post(); got != fiber.StatusNoContent {
			t.Fatalf("attempt %d: expected 204, got %d", i+1, got)
		}
	}
	if got := post(); got != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", got)
	}

	now = now.Add(time.Minute)
	if got := post(); got != fiber.StatusNoContent {
		t.Fatalf("expected bucket to refill, got %d", got)
	}
}
