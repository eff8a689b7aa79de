package postgres

import (
	notificationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/workforce-management/internal/notification"
	"gorm.io/gorm"
)

// NotificationRepository implements notification.RepositoryAPI using GORM.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.RepositoryAPI {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notificationDatamodel.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetForRecipient(recipientID int64) ([]*notificationDatamodel.Notification, error) {
	var notifications []*notificationDatamodel.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) CountUnread(recipientID int64) (int, error) {
	var count int64
	err := r.db.Model(&notificationDatamodel.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, string(notification.StatusUnread)).
		Count(&count).Error
	return int(count), err
}

func (r *NotificationRepository) MarkRead(id, recipientID int64) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("status", string(notification.StatusRead)).Error
}

func (r *NotificationRepository) MarkAllRead(recipientID int64) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, string(notification.StatusUnread)).
		Update("status", string(notification.StatusRead)).Error
}
