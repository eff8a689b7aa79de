package notification

import "time"

type Notification struct {
	ID                int64     `gorm:"primaryKey"`
	Type              string    `gorm:"column:type;not null"`
	Title             string    `gorm:"column:title;not null"`
	Message           string    `gorm:"column:message"`
	Status            string    `gorm:"column:status;default:UNREAD"`
	RecipientID       int64     `gorm:"column:recipient_id;not null"`
	SenderID          *int64    `gorm:"column:sender_id"`
	RelatedEntityType *string   `gorm:"column:related_entity_type"`
	RelatedEntityID   *int64    `gorm:"column:related_entity_id"`
	CreatedAt         time.Time `gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string {
	return "notifications"
}
