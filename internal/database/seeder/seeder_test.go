package seeder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hiring-board/internal/database"
)

type recordingSeeder struct {
	name string
	err  error
	ran  *[]string
}

func (s recordingSeeder) Name() string { return s.name }

func (s recordingSeeder) Run(context.Context, database.DB) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

type nopDB struct{ database.DB }

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	r := Runner{Seeders: []Seeder{
		recordingSeeder{name: "departments", ran: &ran},
		nil,
		recordingSeeder{name: "admin", err: boom, ran: &ran},
		recordingSeeder{name: "never", ran: &ran},
	}}

	err := r.Run(context.Background(), nopDB{})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "seed admin") {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.Join(ran, ",") != "departments,admin" {
		t.Fatalf("unexpected run order %v", ran)
	}
}

func TestRunner_NilDB(t *testing.T) {
	if err := (Runner{}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

func TestAdminSeeder_RequiresCredentials(t *testing.T) {
	err := AdminSeeder{Email: " ", Password: "x"}.Run(context.Background(), nopDB{})
	if err == nil {
		t.Fatalf("expected error for empty email")
	}
}
