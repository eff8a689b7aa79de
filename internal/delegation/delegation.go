package delegation

import (
	"time"

	delegationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/delegation"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// Direction selects which side of the delegation history to return.
type Direction string

const (
	DirectionFrom Direction = "FROM"
	DirectionTo   Direction = "TO"
	DirectionAll  Direction = "ALL"
)

// Delegation is a request to hand a task from one user to another. It stays
// PENDING until the target responds or a manager escalates it.
type Delegation struct {
	ID          int64      `json:"id"`
	TaskID      int64      `json:"task_id"`
	FromUserID  int64      `json:"from_user_id"`
	ToUserID    int64      `json:"to_user_id"`
	Reason      string     `json:"reason"`
	Status      Status     `json:"status"`
	Comments    *string    `json:"comments,omitempty"`
	ApproverID  *int64     `json:"approver_id,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func (d *Delegation) IsPending() bool {
	return d.Status == StatusPending
}

func FromDataModel(m *delegationDatamodel.TaskDelegation) *Delegation {
	return &Delegation{
		ID:          m.ID,
		TaskID:      m.TaskID,
		FromUserID:  m.FromUserID,
		ToUserID:    m.ToUserID,
		Reason:      m.Reason,
		Status:      Status(m.Status),
		Comments:    m.Comments,
		ApproverID:  m.ApproverID,
		RequestedAt: m.RequestedAt,
		RespondedAt: m.RespondedAt,
	}
}
