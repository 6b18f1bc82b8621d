package ws

import (
	"encoding/json"
	"time"

	domainjob "hiring-board/internal/domain/job"
)

type JobChangedEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	JobID     string `json:"jobId"`
	Slug      string `json:"slug"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Notifier turns job mutations into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifyJobChanged(j domainjob.Job, action string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobChangedEvent{
		Type:      "job_changed",
		Action:    action,
		JobID:     j.ID.String(),
		Slug:      j.Slug,
		Status:    string(j.Status),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}
