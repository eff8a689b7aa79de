package task

import "time"

type Task struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Priority    string    `gorm:"column:priority;default:MEDIUM"`
	Status      string    `gorm:"column:status;default:NOT_STARTED"`
	AssigneeID  int64     `gorm:"column:assignee_id;not null"`
	ReporterID  int64     `gorm:"column:reporter_id;not null"`
	Deadline    time.Time `gorm:"column:deadline"`
	Progress    int       `gorm:"column:progress;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Task) TableName() string {
	return "tasks"
}
