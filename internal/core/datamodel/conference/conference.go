package conference

import "time"

type VideoConference struct {
	ID           int64     `gorm:"primaryKey"`
	Title        string    `gorm:"column:title;not null"`
	HostID       int64     `gorm:"column:host_id;not null"`
	Participants string    `gorm:"column:participants"` // comma-separated user ids
	ScheduledAt  time.Time `gorm:"column:scheduled_at;not null"`
	DurationMins int       `gorm:"column:duration_mins"`
	Status       string    `gorm:"column:status;default:SCHEDULED"`
	JoinURL      string    `gorm:"column:join_url"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (VideoConference) TableName() string {
	return "video_conferences"
}
