package task

import (
	"time"

	taskDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/task"
)

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusBlocked    Status = "BLOCKED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Task is a unit of work owned by an assignee and tracked by a reporter.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	AssigneeID  int64     `json:"assignee_id"`
	ReporterID  int64     `json:"reporter_id"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(m *taskDatamodel.Task) *Task {
	return &Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    Priority(m.Priority),
		Status:      Status(m.Status),
		AssigneeID:  m.AssigneeID,
		ReporterID:  m.ReporterID,
		Deadline:    m.Deadline,
		Progress:    m.Progress,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (t *Task) ToDataModel() *taskDatamodel.Task {
	return &taskDatamodel.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		AssigneeID:  t.AssigneeID,
		ReporterID:  t.ReporterID,
		Deadline:    t.Deadline,
		Progress:    t.Progress,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
