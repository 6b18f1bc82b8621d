package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hiring-board/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// recordingDB records writes and finds no rows.
type recordingDB struct {
	database.DB
	execs []string
}

func (d *recordingDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	d.execs = append(d.execs, query)
	return 1, nil
}

func (d *recordingDB) QueryRow(context.Context, string, ...any) database.Row {
	return missingRow{}
}

type missingRow struct{}

func (missingRow) Scan(...any) error { return pgx.ErrNoRows }

func TestJobRepositoryUpdate_EmptyWritesNothing(t *testing.T) {
	db := &recordingDB{}
	repo := NewPostgresJobRepository(db)

	_, err := repo.Update(context.Background(), uuid.New(), JobUpdate{})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected lookup result ErrJobNotFound, got %v", err)
	}
	if len(db.execs) != 0 {
		t.Fatalf("empty update should not write, got %v", db.execs)
	}
}

func TestJobRepositoryUpdate_WritesOnlyGivenColumns(t *testing.T) {
	db := &recordingDB{}
	repo := NewPostgresJobRepository(db)
	desc := "Own the hiring pipeline end to end"

	if _, err := repo.Update(context.Background(), uuid.New(), JobUpdate{Description: &desc}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected reload to miss, got %v", err)
	}
	if len(db.execs) != 1 {
		t.Fatalf("expected one write, got %v", db.execs)
	}
	q := db.execs[0]
	if !strings.Contains(q, "description = $2") || strings.Contains(q, "title") || strings.Contains(q, "slug") {
		t.Fatalf("unexpected update statement %q", q)
	}
}
