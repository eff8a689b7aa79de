package task

import (
	"time"

	errors "github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/core/common/validation"
)

type CreateTaskDTO struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	AssigneeID  int64     `json:"assignee_id"`
	Deadline    time.Time `json:"deadline"`
}

func (dto CreateTaskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("assignee_id", dto.AssigneeID).Required()
	v.Field("deadline", dto.Deadline).Required().NotPast()
	if err := v.Validate(); err != nil {
		return err
	}

	switch Priority(dto.Priority) {
	case "", PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return errors.NewValidationFieldError("priority", "priority must be one of LOW, MEDIUM, HIGH, URGENT", errors.ErrCodeValidationFailed)
	}
}

type UpdateProgressDTO struct {
	Progress int     `json:"progress"`
	Status   *string `json:"status,omitempty"`
}

func (dto UpdateProgressDTO) Validate() error {
	if dto.Progress < 0 || dto.Progress > 100 {
		return errors.NewValidationFieldError("progress", "progress must be between 0 and 100", errors.ErrCodeValidationFailed)
	}
	if dto.Status != nil {
		switch Status(*dto.Status) {
		case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		default:
			return errors.NewValidationFieldError("status", "unknown task status", errors.ErrCodeValidationFailed)
		}
	}
	return nil
}

type TasksResponse struct {
	Tasks []*Task `json:"tasks"`
}
