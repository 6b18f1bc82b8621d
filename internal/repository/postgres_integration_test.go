//go:build integration

package repository_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"hiring-board/internal/config"
	"hiring-board/internal/database"
	"hiring-board/internal/database/migration"
	dbpostgres "hiring-board/internal/database/postgres"
	"hiring-board/internal/database/seeder"
	"hiring-board/internal/domain/department"
	"hiring-board/internal/domain/job"
	"hiring-board/internal/domain/user"
	userpg "hiring-board/internal/infrastructure/persistence/postgres"
	"hiring-board/internal/repository"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type fixture struct {
	db     database.DB
	deptID uuid.UUID
	userID uuid.UUID
}

func setupDB(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("hiring_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if termErr := container.Terminate(ctx); termErr != nil {
			t.Logf("terminate container: %v", termErr)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := dbpostgres.ConnectDSN(ctx, dsn, config.DatabaseConfig{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	r := migration.Runner{Dir: "../../migrations", Logger: log.New(io.Discard, "", 0)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	dept, err := repository.NewPostgresDepartmentRepository(db).Create(ctx, department.Department{Name: "Engineering"})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	u := user.User{ID: uuid.New(), Email: "admin@company.com", Name: "Admin", PasswordHash: "x", Role: user.RoleAdmin}
	if err := userpg.NewUserRepository(db).CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return fixture{db: db, deptID: dept.ID, userID: u.ID}
}

func newJob(f fixture, title, slug, description string) job.Job {
	j := job.New(title, description, "Remote", "Full-time", f.deptID, f.userID)
	j.Slug = slug
	return j
}

func TestJobRepository_SlugUniqueness(t *testing.T) {
	f := setupDB(t)
	ctx := context.Background()
	jobs := repository.NewPostgresJobRepository(f.db)

	first, err := jobs.Create(ctx, newJob(f, "Backend Engineer", "backend-engineer", "Build APIs in Go"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.DepartmentName != "Engineering" {
		t.Fatalf("expected department name join, got %q", first.DepartmentName)
	}

	_, err = jobs.Create(ctx, newJob(f, "Backend Engineer", "backend-engineer", "Another one"))
	if !errors.Is(err, repository.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	exists, err := jobs.SlugExists(ctx, "backend-engineer", nil)
	if err != nil || !exists {
		t.Fatalf("expected slug to exist, got %v %v", exists, err)
	}
	exists, err = jobs.SlugExists(ctx, "backend-engineer", &first.ID)
	if err != nil || exists {
		t.Fatalf("expected own slug to be excluded, got %v %v", exists, err)
	}
}

func TestJobRepository_UpdateStatusCompareAndSwap(t *testing.T) {
	f := setupDB(t)
	ctx := context.Background()
	jobs := repository.NewPostgresJobRepository(f.db)

	created, err := jobs.Create(ctx, newJob(f, "QA Engineer", "qa-engineer", "Test all the things"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now := time.Now()
	published, err := jobs.UpdateStatus(ctx, created.ID, job.StatusDraft, job.StatusPublished, job.PublishedAtFor(job.StatusPublished, now))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != job.StatusPublished || published.PublishedAt == nil {
		t.Fatalf("unexpected published job %+v", published)
	}

	_, err = jobs.UpdateStatus(ctx, created.ID, job.StatusDraft, job.StatusArchived, nil)
	if !errors.Is(err, repository.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict for stale expected status, got %v", err)
	}

	bySlug, err := jobs.FindPublishedBySlug(ctx, "qa-engineer")
	if err != nil || bySlug.ID != created.ID {
		t.Fatalf("expected published lookup by slug, got %v %v", bySlug.ID, err)
	}
}

func TestJobQueryRepository_ListAndCount(t *testing.T) {
	f := setupDB(t)
	ctx := context.Background()
	jobs := repository.NewPostgresJobRepository(f.db)
	query := repository.NewPostgresJobQueryRepository(f.db)

	for _, tc := range []struct{ title, slug, desc string }{
		{"Go Developer", "go-developer", "Work on payment services"},
		{"Designer", "designer", "Own the design system; some GOLANG exposure helps"},
		{"Accountant", "accountant", "Spreadsheets and ledgers"},
	} {
		if _, err := jobs.Create(ctx, newJob(f, tc.title, tc.slug, tc.desc)); err != nil {
			t.Fatalf("create %s: %v", tc.slug, err)
		}
	}

	filter := repository.JobFilter{Query: "go", Limit: 1}
	items, err := query.List(ctx, filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected page of 1, got %d", len(items))
	}
	total, err := query.Count(ctx, filter)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2 independent of limit, got %d", total)
	}

	total, err = query.Count(ctx, repository.JobFilter{Status: job.StatusPublished})
	if err != nil || total != 0 {
		t.Fatalf("expected no published jobs, got %d %v", total, err)
	}
}

func TestSeeder_Idempotent(t *testing.T) {
	f := setupDB(t)
	ctx := context.Background()

	r := seeder.Runner{Seeders: seeder.Defaults(config.SeedConfig{AdminEmail: "Boss@Company.com", AdminPassword: "admin123"})}
	for i := 0; i < 2; i++ {
		if err := r.Run(ctx, f.db); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	deptRepo := repository.NewPostgresDepartmentRepository(f.db)
	depts, err := deptRepo.List(ctx)
	if err != nil || len(depts) != 1 {
		t.Fatalf("expected a single department, got %v %v", depts, err)
	}
	eng, err := deptRepo.FindByName(ctx, seeder.DefaultDepartment)
	if err != nil || eng.ID != f.deptID {
		t.Fatalf("expected seeded department to be reused, got %+v %v", eng, err)
	}

	admin, err := userpg.NewUserRepository(f.db).GetUserByEmail(ctx, "boss@company.com")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin.Role != user.RoleAdmin || admin.DepartmentID == nil || *admin.DepartmentID != f.deptID {
		t.Fatalf("unexpected admin %+v", admin)
	}
}
