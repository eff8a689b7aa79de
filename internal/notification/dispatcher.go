package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	notificationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/notification"
)

// RepositoryAPI is the data access surface for notifications.
type RepositoryAPI interface {
	Create(n *notificationDatamodel.Notification) error
	GetForRecipient(recipientID int64) ([]*notificationDatamodel.Notification, error)
	CountUnread(recipientID int64) (int, error)
	MarkRead(id, recipientID int64) error
	MarkAllRead(recipientID int64) error
}

// Dispatcher is the fire-and-forget notification sink the workflow services
// call into. Failures are logged and swallowed: a lost notification must
// never fail a delegation or a user create.
type Dispatcher struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewDispatcher(repo RepositoryAPI, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		logger: logger,
	}
}

func (d *Dispatcher) dispatch(n *notificationDatamodel.Notification) {
	n.Status = string(StatusUnread)
	n.CreatedAt = time.Now()

	if err := d.repo.Create(n); err != nil {
		d.logger.Error("failed to store notification",
			"error", err,
			"type", n.Type,
			"recipient_id", n.RecipientID)
		return
	}

	d.logger.Info("notification dispatched",
		"notification_id", n.ID,
		"type", n.Type,
		"recipient_id", n.RecipientID)
}

func ref[T any](v T) *T { return &v }

// DelegationRequested notifies the delegation target.
func (d *Dispatcher) DelegationRequested(ctx context.Context, delegationID, taskID, fromUserID, toUserID int64, reason string) {
	d.dispatch(&notificationDatamodel.Notification{
		Type:              string(TypeDelegationRequested),
		Title:             "Task delegation request",
		Message:           fmt.Sprintf("You have been asked to take over task #%d: %s", taskID, reason),
		RecipientID:       toUserID,
		SenderID:          ref(fromUserID),
		RelatedEntityType: ref(EntityTypeDelegation),
		RelatedEntityID:   ref(delegationID),
	})
}

// DelegationResponded notifies the original requester of the decision.
func (d *Dispatcher) DelegationResponded(ctx context.Context, delegationID, taskID, requesterID int64, approved bool) {
	decision := "rejected"
	if approved {
		decision = "approved"
	}
	d.dispatch(&notificationDatamodel.Notification{
		Type:              string(TypeDelegationResponded),
		Title:             "Delegation " + decision,
		Message:           fmt.Sprintf("Your delegation request for task #%d was %s", taskID, decision),
		RecipientID:       requesterID,
		RelatedEntityType: ref(EntityTypeDelegation),
		RelatedEntityID:   ref(delegationID),
	})
}

// DelegationEscalated notifies the new assignee that a manager forced the
// delegation through.
func (d *Dispatcher) DelegationEscalated(ctx context.Context, delegationID, taskID, escalatedBy, newAssigneeID int64) {
	d.dispatch(&notificationDatamodel.Notification{
		Type:              string(TypeDelegationEscalated),
		Title:             "Delegation escalated",
		Message:           fmt.Sprintf("Task #%d has been assigned to you by management decision", taskID),
		RecipientID:       newAssigneeID,
		SenderID:          ref(escalatedBy),
		RelatedEntityType: ref(EntityTypeDelegation),
		RelatedEntityID:   ref(delegationID),
	})
}

// UserCreated welcomes a newly provisioned user.
func (d *Dispatcher) UserCreated(ctx context.Context, userID, creatorID int64, userName string) {
	d.dispatch(&notificationDatamodel.Notification{
		Type:              string(TypeUserCreated),
		Title:             "Welcome aboard",
		Message:           fmt.Sprintf("Hi %s, your account has been set up", userName),
		RecipientID:       userID,
		SenderID:          ref(creatorID),
		RelatedEntityType: ref(EntityTypeUser),
		RelatedEntityID:   ref(userID),
	})
}

// ConferenceScheduled invites each participant.
func (d *Dispatcher) ConferenceScheduled(ctx context.Context, conferenceID, hostID int64, participantIDs []int64, title string) {
	for _, pid := range participantIDs {
		if pid == hostID {
			continue
		}
		d.dispatch(&notificationDatamodel.Notification{
			Type:              string(TypeConferenceInvite),
			Title:             "Conference invitation",
			Message:           fmt.Sprintf("You are invited to %q", title),
			RecipientID:       pid,
			SenderID:          ref(hostID),
			RelatedEntityType: ref(EntityTypeConference),
			RelatedEntityID:   ref(conferenceID),
		})
	}
}
