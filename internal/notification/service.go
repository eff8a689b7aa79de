package notification

import (
	"log/slog"
)

// Service is the read side of notifications: inbox listing and read marks.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetInbox(recipientID int64) (*NotificationsResponse, error) {
	records, err := s.repo.GetForRecipient(recipientID)
	if err != nil {
		s.logger.Error("failed to list notifications", "error", err, "recipient_id", recipientID)
		return nil, err
	}

	unread, err := s.repo.CountUnread(recipientID)
	if err != nil {
		s.logger.Error("failed to count unread notifications", "error", err, "recipient_id", recipientID)
		return nil, err
	}

	notifications := make([]*Notification, 0, len(records))
	for _, r := range records {
		notifications = append(notifications, FromDataModel(r))
	}

	return &NotificationsResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead flips one notification to READ. Scoped to the recipient so users
// cannot mark each other's messages.
func (s *Service) MarkRead(notificationID, recipientID int64) error {
	return s.repo.MarkRead(notificationID, recipientID)
}

func (s *Service) MarkAllRead(recipientID int64) error {
	return s.repo.MarkAllRead(recipientID)
}
