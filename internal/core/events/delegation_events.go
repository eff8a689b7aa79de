package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDelegationRequested = "delegation.requested"
	EventTypeDelegationResponded = "delegation.responded"
	EventTypeDelegationEscalated = "delegation.escalated"
	EventTypeTaskReassigned      = "task.reassigned"
	EventTypeTaskCompleted       = "task.completed"
	EventTypeUserCreated         = "user.created"
	EventTypeConferenceScheduled = "conference.scheduled"
)

type DelegationRequestedEvent struct {
	BaseEvent
	DelegationID int64  `json:"delegation_id"`
	TaskID       int64  `json:"task_id"`
	FromUserID   int64  `json:"from_user_id"`
	ToUserID     int64  `json:"to_user_id"`
	Reason       string `json:"reason"`
}

func NewDelegationRequestedEvent(delegationID, taskID, fromUserID, toUserID int64, reason string) *DelegationRequestedEvent {
	return &DelegationRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDelegationRequested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"delegation_id": delegationID,
				"task_id":       taskID,
				"from_user_id":  fromUserID,
				"to_user_id":    toUserID,
				"reason":        reason,
			},
		},
		DelegationID: delegationID,
		TaskID:       taskID,
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		Reason:       reason,
	}
}

type DelegationRespondedEvent struct {
	BaseEvent
	DelegationID int64  `json:"delegation_id"`
	TaskID       int64  `json:"task_id"`
	FromUserID   int64  `json:"from_user_id"`
	ToUserID     int64  `json:"to_user_id"`
	Approved     bool   `json:"approved"`
	Comments     string `json:"comments,omitempty"`
}

func NewDelegationRespondedEvent(delegationID, taskID, fromUserID, toUserID int64, approved bool, comments string) *DelegationRespondedEvent {
	return &DelegationRespondedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDelegationResponded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"delegation_id": delegationID,
				"task_id":       taskID,
				"from_user_id":  fromUserID,
				"to_user_id":    toUserID,
				"approved":      approved,
			},
		},
		DelegationID: delegationID,
		TaskID:       taskID,
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		Approved:     approved,
		Comments:     comments,
	}
}

type DelegationEscalatedEvent struct {
	BaseEvent
	DelegationID  int64 `json:"delegation_id"`
	TaskID        int64 `json:"task_id"`
	EscalatedBy   int64 `json:"escalated_by"`
	NewAssigneeID int64 `json:"new_assignee_id"`
}

func NewDelegationEscalatedEvent(delegationID, taskID, escalatedBy, newAssigneeID int64) *DelegationEscalatedEvent {
	return &DelegationEscalatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDelegationEscalated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"delegation_id":   delegationID,
				"task_id":         taskID,
				"escalated_by":    escalatedBy,
				"new_assignee_id": newAssigneeID,
			},
		},
		DelegationID:  delegationID,
		TaskID:        taskID,
		EscalatedBy:   escalatedBy,
		NewAssigneeID: newAssigneeID,
	}
}

type TaskReassignedEvent struct {
	BaseEvent
	TaskID         int64 `json:"task_id"`
	PreviousUserID int64 `json:"previous_user_id"`
	NewAssigneeID  int64 `json:"new_assignee_id"`
}

func NewTaskReassignedEvent(taskID, previousUserID, newAssigneeID int64) *TaskReassignedEvent {
	return &TaskReassignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskReassigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":          taskID,
				"previous_user_id": previousUserID,
				"new_assignee_id":  newAssigneeID,
			},
		},
		TaskID:         taskID,
		PreviousUserID: previousUserID,
		NewAssigneeID:  newAssigneeID,
	}
}

type TaskCompletedEvent struct {
	BaseEvent
	TaskID     int64 `json:"task_id"`
	AssigneeID int64 `json:"assignee_id"`
}

func NewTaskCompletedEvent(taskID, assigneeID int64) *TaskCompletedEvent {
	return &TaskCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTaskCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"task_id":     taskID,
				"assignee_id": assigneeID,
			},
		},
		TaskID:     taskID,
		AssigneeID: assigneeID,
	}
}

type UserCreatedEvent struct {
	BaseEvent
	UserID    int64  `json:"user_id"`
	CreatedBy int64  `json:"created_by"`
	Role      string `json:"role"`
}

func NewUserCreatedEvent(userID, createdBy int64, role string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"created_by": createdBy,
				"role":       role,
			},
		},
		UserID:    userID,
		CreatedBy: createdBy,
		Role:      role,
	}
}

type ConferenceScheduledEvent struct {
	BaseEvent
	ConferenceID int64   `json:"conference_id"`
	HostID       int64   `json:"host_id"`
	Participants []int64 `json:"participants"`
}

func NewConferenceScheduledEvent(conferenceID, hostID int64, participants []int64) *ConferenceScheduledEvent {
	return &ConferenceScheduledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeConferenceScheduled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"conference_id": conferenceID,
				"host_id":       hostID,
			},
		},
		ConferenceID: conferenceID,
		HostID:       hostID,
		Participants: participants,
	}
}
