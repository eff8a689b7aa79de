package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/notification"
)

type Status string

const (
	StatusUnread Status = "UNREAD"
	StatusRead   Status = "READ"
)

type Type string

const (
	TypeDelegationRequested Type = "DELEGATION_REQUESTED"
	TypeDelegationResponded Type = "DELEGATION_RESPONDED"
	TypeDelegationEscalated Type = "DELEGATION_ESCALATED"
	TypeUserCreated         Type = "USER_CREATED"
	TypeConferenceInvite    Type = "CONFERENCE_INVITE"
)

const (
	EntityTypeDelegation = "delegation"
	EntityTypeUser       = "user"
	EntityTypeConference = "conference"
)

// Notification is an in-app message for one recipient. Delivery is
// best-effort: producers never see delivery failures.
type Notification struct {
	ID                int64     `json:"id"`
	Type              Type      `json:"type"`
	Title             string    `json:"title"`
	Message           string    `json:"message,omitempty"`
	Status            Status    `json:"status"`
	RecipientID       int64     `json:"recipient_id"`
	SenderID          *int64    `json:"sender_id,omitempty"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"`
	RelatedEntityID   *int64    `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromDataModel(m *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:                m.ID,
		Type:              Type(m.Type),
		Title:             m.Title,
		Message:           m.Message,
		Status:            Status(m.Status),
		RecipientID:       m.RecipientID,
		SenderID:          m.SenderID,
		RelatedEntityType: m.RelatedEntityType,
		RelatedEntityID:   m.RelatedEntityID,
		CreatedAt:         m.CreatedAt,
	}
}

type NotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unread_count"`
}
