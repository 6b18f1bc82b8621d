package job

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Senior QA Engineer!!", "senior-qa-engineer"},
		{"Senior QA Engineer", "senior-qa-engineer"},
		{"  ---Lead Developer  ", "lead-developer"},
		{"C++ / Go -- Backend", "c-go-backend"},
		{"Data Engineer (2024)", "data-engineer-2024"},
		{"Café Manager", "caf-manager"},
		{"!!!", "job"},
		{"", "job"},
		{"   ", "job"},
	}
	for _, tc := range cases {
		if got := NormalizeSlug(tc.title); got != tc.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestNormalizeSlug_LongTitleNotTruncated(t *testing.T) {
	title := strings.Repeat("engineer ", 60)
	got := NormalizeSlug(title)
	want := strings.TrimSuffix(strings.Repeat("engineer-", 60), "-")
	if got != want {
		t.Fatalf("expected untruncated slug of len %d, got len %d", len(want), len(got))
	}
}

func TestSlugCandidate(t *testing.T) {
	if got := SlugCandidate("job", 1); got != "job" {
		t.Fatalf("got %q", got)
	}
	if got := SlugCandidate("job", 2); got != "job-2" {
		t.Fatalf("got %q", got)
	}
	if got := SlugCandidate("lead-developer", 11); got != "lead-developer-11" {
		t.Fatalf("got %q", got)
	}
}

func TestTransition_Table(t *testing.T) {
	all := []Status{StatusDraft, StatusReview, StatusPublished, StatusArchived}
	allowed := map[Action]map[Status]Status{
		ActionReview:    {StatusDraft: StatusReview},
		ActionPublish:   {StatusDraft: StatusPublished, StatusReview: StatusPublished},
		ActionUnpublish: {StatusPublished: StatusDraft},
		ActionArchive:   {StatusDraft: StatusArchived, StatusReview: StatusArchived, StatusPublished: StatusArchived},
		ActionRestore:   {StatusArchived: StatusDraft},
	}

	for action, ok := range allowed {
		for _, from := range all {
			got, err := Transition(from, action)
			want, isAllowed := ok[from]
			if isAllowed {
				if err != nil {
					t.Errorf("%s from %s: unexpected err %v", action, from, err)
					continue
				}
				if got != want {
					t.Errorf("%s from %s: got %s, want %s", action, from, got, want)
				}
				continue
			}

			var te *TransitionError
			if !errors.As(err, &te) {
				t.Errorf("%s from %s: expected TransitionError, got %v", action, from, err)
				continue
			}
			if got != from {
				t.Errorf("%s from %s: rejected transition must keep status, got %s", action, from, got)
			}
			if te.Action != action || te.From != from || te.Reason == "" {
				t.Errorf("%s from %s: unexpected error fields %+v", action, from, te)
			}
		}
	}
}

func TestTransition_Reasons(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		reason string
	}{
		{StatusReview, ActionReview, "Only draft jobs can be submitted for review"},
		{StatusArchived, ActionPublish, "Only draft or review jobs can be published"},
		{StatusDraft, ActionUnpublish, "Only published jobs can be unpublished"},
		{StatusArchived, ActionArchive, "Job is already archived"},
		{StatusDraft, ActionRestore, "Only archived jobs can be restored"},
	}
	for _, tc := range cases {
		_, err := Transition(tc.from, tc.action)
		if err == nil || err.Error() != tc.reason {
			t.Errorf("%s from %s: got %v, want %q", tc.action, tc.from, err, tc.reason)
		}
	}
}

func TestTransition_UnknownAction(t *testing.T) {
	_, err := Transition(StatusDraft, Action("delete"))
	if err == nil {
		t.Fatalf("expected error")
	}
	var te *TransitionError
	if errors.As(err, &te) {
		t.Fatalf("unknown action must not be a transition error")
	}
}

func TestPublishedAtFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	if got := PublishedAtFor(StatusPublished, now); got == nil || !got.Equal(now) {
		t.Fatalf("expected published_at %v, got %v", now, got)
	}
	for _, s := range []Status{StatusDraft, StatusReview, StatusArchived} {
		if got := PublishedAtFor(s, now); got != nil {
			t.Fatalf("expected nil published_at for %s", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" published ")
	if err != nil || s != StatusPublished {
		t.Fatalf("got %q, %v", s, err)
	}
	if _, err := ParseStatus("deleted"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestNew_StartsAsDraft(t *testing.T) {
	j := New("Title", "Description", "Remote", "Full-time", uuid.New(), uuid.New())
	if j.Status != StatusDraft || j.PublishedAt != nil {
		t.Fatalf("expected draft without published_at, got %s %v", j.Status, j.PublishedAt)
	}
}
