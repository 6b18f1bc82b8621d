package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"hiring-board/internal/config"
	"hiring-board/internal/database"
	"hiring-board/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// emptyDB behaves like a database with no rows in any table.
type emptyDB struct{}

func (emptyDB) Ping(context.Context) error { return nil }
func (emptyDB) Close() error               { return nil }
func (emptyDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}
func (emptyDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return emptyRows{}, nil
}
func (emptyDB) QueryRow(context.Context, string, ...any) database.Row { return noRow{} }
func (emptyDB) Begin(context.Context) (database.Tx, error) {
	return nil, errors.New("not supported")
}
func (emptyDB) SQLDB() *sql.DB { return nil }

type emptyRows struct{}

func (emptyRows) Close()            {}
func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return pgx.ErrNoRows }
func (emptyRows) Err() error        { return nil }

// noRow answers single-column scans (counts, EXISTS) with the zero value and
// reports no rows for entity lookups.
type noRow struct{}

func (noRow) Scan(dest ...any) error {
	if len(dest) == 1 {
		return nil
	}
	return pgx.ErrNoRows
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{
		App:    config.AppConfig{AppName: "hiring-board-test"},
		JWT:    config.JWTConfig{AccessSecret: "a", RefreshSecret: "r", AccessExpiresIn: time.Hour, RefreshExpiresIn: time.Hour},
		Upload: config.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20},
		HTTP:   config.HTTPConfig{LoginPerMinute: 10},
	}
	logger := log.New(io.Discard, "", 0)
	c := newContainer(cfg, logger, emptyDB{}, cache.NewRedisWithClient(nil, time.Minute, logger))
	return New(c)
}

func token(t *testing.T, a *App, role string) string {
	t.Helper()
	tok, err := a.Container.JWT.GenerateAccessToken(uuid.New(), "staff@example.com", role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func TestRoutes_StatusByRoleAndPath(t *testing.T) {
	a := newTestApp(t)
	viewer := token(t, a, "VIEWER")
	recruiter := token(t, a, "RECRUITER")
	jobID := uuid.NewString()

	form := url.Values{"name": {"Ann Lee"}, "email": {"ann@example.com"}}.Encode()

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		ctype  string
		want   int
	}{
		{"health", http.MethodGet, "/health", "", "", "", http.StatusOK},
		{"jobs require auth", http.MethodGet, "/api/jobs", "", "", "", http.StatusUnauthorized},
		{"viewer lists jobs", http.MethodGet, "/api/jobs", viewer, "", "", http.StatusOK},
		{"viewer cannot create", http.MethodPost, "/api/jobs", viewer, `{}`, "application/json", http.StatusForbidden},
		{"recruiter validation", http.MethodPost, "/api/jobs", recruiter, `{"title":"ab"}`, "application/json", http.StatusBadRequest},
		{"unknown job", http.MethodGet, "/api/jobs/" + jobID, recruiter, "", "", http.StatusNotFound},
		{"bad job id", http.MethodGet, "/api/jobs/nope", recruiter, "", "", http.StatusBadRequest},
		{"viewer cannot publish", http.MethodPost, "/api/jobs/" + jobID + "/publish", viewer, "", "", http.StatusForbidden},
		{"publish unknown job", http.MethodPost, "/api/jobs/" + jobID + "/publish", recruiter, "", "", http.StatusNotFound},
		{"public list", http.MethodGet, "/api/public/jobs", "", "", "", http.StatusOK},
		{"public unknown slug", http.MethodGet, "/api/public/jobs/missing", "", "", "", http.StatusNotFound},
		{"apply is public", http.MethodPost, "/api/apps/apply/missing", "", form, "application/x-www-form-urlencoded", http.StatusNotFound},
		{"viewer cannot read applications", http.MethodGet, "/api/apps/jobs/" + jobID, viewer, "", "", http.StatusForbidden},
		{"register is admin only", http.MethodPost, "/api/auth/register", recruiter, `{}`, "application/json", http.StatusForbidden},
		{"unknown login", http.MethodPost, "/api/auth/login", "", `{"email":"x@example.com","password":"secret1"}`, "application/json", http.StatusUnauthorized},
		{"me for deleted user", http.MethodGet, "/api/users/me", viewer, "", "", http.StatusNotFound},
		{"departments list", http.MethodGet, "/api/departments", viewer, "", "", http.StatusOK},
		{"departments write", http.MethodPost, "/api/departments", viewer, `{"name":"Ops"}`, "application/json", http.StatusForbidden},
		{"ws requires token", http.MethodGet, "/ws/jobs", "", "", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			if tc.ctype != "" {
				req.Header.Set("Content-Type", tc.ctype)
			}
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			resp, err := a.Fiber.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.want {
				b, _ := io.ReadAll(resp.Body)
				t.Fatalf("expected %d, got %d: %s", tc.want, resp.StatusCode, b)
			}
		})
	}
}

func TestListenAddr(t *testing.T) {
	if got, _ := ListenAddr("8080"); got != ":8080" {
		t.Fatalf("unexpected addr %q", got)
	}
	if got, _ := ListenAddr(":9000"); got != ":9000" {
		t.Fatalf("unexpected addr %q", got)
	}
	if _, err := ListenAddr(" "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}
