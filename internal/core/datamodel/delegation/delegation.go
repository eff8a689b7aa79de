package delegation

import "time"

type TaskDelegation struct {
	ID          int64      `gorm:"primaryKey"`
	TaskID      int64      `gorm:"column:task_id;not null"`
	FromUserID  int64      `gorm:"column:from_user_id;not null"`
	ToUserID    int64      `gorm:"column:to_user_id;not null"`
	Reason      string     `gorm:"column:reason;not null"`
	Status      string     `gorm:"column:status;default:PENDING"`
	Comments    *string    `gorm:"column:comments"`
	ApproverID  *int64     `gorm:"column:approver_id"`
	RequestedAt time.Time  `gorm:"column:requested_at;default:now()"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
}

func (TaskDelegation) TableName() string {
	return "task_delegations"
}
