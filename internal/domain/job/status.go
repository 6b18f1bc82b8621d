package job

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusReview    Status = "REVIEW"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// ParseStatus accepts any casing of a known status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown job status %q", raw)
	}
	return s, nil
}

type Action string

const (
	ActionReview    Action = "review"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionArchive   Action = "archive"
	ActionRestore   Action = "restore"
)

// TransitionError is returned when an action is not allowed from the job's
// current status. Reason is safe to show to API callers.
type TransitionError struct {
	Action Action
	From   Status
	Reason string
}

func (e *TransitionError) Error() string {
	if e == nil {
		return ""
	}
	return e.Reason
}

type rule struct {
	from   []Status
	to     Status
	reason string
}

var transitions = map[Action]rule{
	ActionReview: {
		from:   []Status{StatusDraft},
		to:     StatusReview,
		reason: "Only draft jobs can be submitted for review",
	},
	ActionPublish: {
		from:   []Status{StatusDraft, StatusReview},
		to:     StatusPublished,
		reason: "Only draft or review jobs can be published",
	},
	ActionUnpublish: {
		from:   []Status{StatusPublished},
		to:     StatusDraft,
		reason: "Only published jobs can be unpublished",
	},
	ActionArchive: {
		from:   []Status{StatusDraft, StatusReview, StatusPublished},
		to:     StatusArchived,
		reason: "Job is already archived",
	},
	ActionRestore: {
		from:   []Status{StatusArchived},
		to:     StatusDraft,
		reason: "Only archived jobs can be restored",
	},
}

// Transition applies action to a job currently in from. It returns the new
// status or a *TransitionError naming why the action is rejected.
func Transition(from Status, action Action) (Status, error) {
	r, ok := transitions[action]
	if !ok {
		return from, fmt.Errorf("unknown job action %q", action)
	}
	for _, s := range r.from {
		if s == from {
			return r.to, nil
		}
	}
	return from, &TransitionError{Action: action, From: from, Reason: r.reason}
}

// PublishedAtFor keeps published_at set only while a job is published.
func PublishedAtFor(to Status, now time.Time) *time.Time {
	if to != StatusPublished {
		return nil
	}
	t := now.UTC()
	return &t
}
