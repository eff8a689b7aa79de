package delegation

import (
	"strings"

	errors "github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/core/common/validation"
)

type DelegateTaskDTO struct {
	TaskID   int64  `json:"task_id"`
	ToUserID int64  `json:"to_user_id"`
	Reason   string `json:"reason"`
}

func (dto DelegateTaskDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("task_id", dto.TaskID).Required()
	v.Field("to_user_id", dto.ToUserID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(dto.Reason) == "" {
		return errors.ErrEmptyReason
	}
	return nil
}

type RespondDTO struct {
	Approve  bool    `json:"approve"`
	Comments *string `json:"comments,omitempty"`
}

// EscalateDTO optionally redirects the task to someone other than the
// delegation target.
type EscalateDTO struct {
	NewAssigneeID *int64 `json:"new_assignee_id,omitempty"`
}

type DelegationsResponse struct {
	Delegations []*Delegation `json:"delegations"`
}
