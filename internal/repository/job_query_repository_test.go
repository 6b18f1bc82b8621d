package repository

import (
	"testing"

	"hiring-board/internal/domain/job"

	"github.com/google/uuid"
)

func TestJobFilterWhere_Empty(t *testing.T) {
	where, args := JobFilter{Limit: 10, Offset: 20}.where()
	if where != "" {
		t.Fatalf("expected empty where, got %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestJobFilterWhere_BlankQueryIgnored(t *testing.T) {
	where, _ := JobFilter{Query: "   "}.where()
	if where != "" {
		t.Fatalf("expected blank query to be ignored, got %q", where)
	}
}

func TestJobFilterWhere_AllFilters(t *testing.T) {
	dept := uuid.New()
	where, args := JobFilter{
		Query:        " Go ",
		Status:       job.StatusPublished,
		DepartmentID: &dept,
	}.where()

	want := " WHERE (j.title ILIKE $1 OR j.description ILIKE $1) AND j.status = $2 AND j.department_id = $3"
	if where != want {
		t.Fatalf("unexpected where:\n got %q\nwant %q", where, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "%Go%" {
		t.Fatalf("unexpected query arg %v", args[0])
	}
	if args[1] != "PUBLISHED" {
		t.Fatalf("unexpected status arg %v", args[1])
	}
	if args[2] != dept {
		t.Fatalf("unexpected department arg %v", args[2])
	}
}

func TestJobFilterWhere_StatusOnlyNumbersFromOne(t *testing.T) {
	where, args := JobFilter{Status: job.StatusDraft}.where()
	if where != " WHERE j.status = $1" {
		t.Fatalf("unexpected where %q", where)
	}
	if len(args) != 1 || args[0] != "DRAFT" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`100%_match\`); got != `100\%\_match\\` {
		t.Fatalf("unexpected escape %q", got)
	}
}

func TestJobUpdateEmpty(t *testing.T) {
	if !(JobUpdate{}).Empty() {
		t.Fatalf("zero update should be empty")
	}
	title := "x"
	if (JobUpdate{Title: &title}).Empty() {
		t.Fatalf("update with title should not be empty")
	}
}
