package delegation

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/workforce-management/internal"
	delegationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/delegation"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/task"
	"github.com/frahmantamala/workforce-management/internal/user"
)

// RepositoryAPI is the data access surface for delegations. RespondIfPending
// must be a conditional write: it only succeeds while the row is still
// PENDING, so concurrent responders race on the database, not in memory.
type RepositoryAPI interface {
	Create(d *delegationDatamodel.TaskDelegation) error
	GetByID(id int64) (*delegationDatamodel.TaskDelegation, error)
	RespondIfPending(id int64, status string, comments *string, approverID int64, respondedAt time.Time) (bool, error)
	ForceApprove(id int64, approverID int64, respondedAt time.Time) error
	RestoreDecision(id int64, status string, comments *string, approverID *int64, respondedAt *time.Time) error
	CompleteForTask(taskID int64) (int64, error)
	GetPendingForUser(userID int64) ([]*delegationDatamodel.TaskDelegation, error)
	GetHistory(userID int64, direction Direction) ([]*delegationDatamodel.TaskDelegation, error)
}

// TaskStore is the slice of the task service the workflow needs: lookups for
// authority checks and reassignment after an approval.
type TaskStore interface {
	GetTaskByID(taskID int64) (*task.Task, error)
	Reassign(taskID, newAssigneeID int64) error
}

// DirectoryAPI resolves users involved in a delegation.
type DirectoryAPI interface {
	GetByID(userID int64) (*user.User, error)
}

// Notifier is the outbound notification contract. Calls are best-effort and
// never block or fail the workflow.
type Notifier interface {
	DelegationRequested(ctx context.Context, delegationID, taskID, fromUserID, toUserID int64, reason string)
	DelegationResponded(ctx context.Context, delegationID, taskID, requesterID int64, approved bool)
	DelegationEscalated(ctx context.Context, delegationID, taskID, escalatedBy, newAssigneeID int64)
}

// Service runs the delegation workflow: request, respond, escalate.
type Service struct {
	repo      RepositoryAPI
	tasks     TaskStore
	directory DirectoryAPI
	notifier  Notifier
	eventBus  *events.EventBus
	logger    *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	tasks TaskStore,
	directory DirectoryAPI,
	notifier Notifier,
	eventBus *events.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		tasks:     tasks,
		directory: directory,
		notifier:  notifier,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// DelegateTask opens a PENDING delegation. The actor must be the task's
// assignee, its reporter, a department head, or hold a role that manages the
// current assignee's role.
func (s *Service) DelegateTask(ctx context.Context, dto DelegateTaskDTO, actor *user.User) (*Delegation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.tasks.GetTaskByID(dto.TaskID)
	if err != nil {
		return nil, errors.ErrTaskNotFound
	}

	target, err := s.directory.GetByID(dto.ToUserID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	if !target.IsActiveUser() {
		return nil, errors.ErrUserNotFound
	}

	if !s.canDelegate(actor, t) {
		s.logger.Warn("delegation denied",
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"task_id", t.ID,
			"assignee_id", t.AssigneeID)
		return nil, errors.ErrPermissionDenied
	}

	record := &delegationDatamodel.TaskDelegation{
		TaskID:      t.ID,
		FromUserID:  actor.ID,
		ToUserID:    target.ID,
		Reason:      dto.Reason,
		Status:      string(StatusPending),
		RequestedAt: time.Now(),
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create delegation", "error", err, "task_id", t.ID)
		return nil, err
	}

	s.logger.Info("delegation requested",
		"delegation_id", record.ID,
		"task_id", t.ID,
		"from_user_id", actor.ID,
		"to_user_id", target.ID)

	s.notifier.DelegationRequested(ctx, record.ID, t.ID, actor.ID, target.ID, dto.Reason)

	if err := s.eventBus.Publish(ctx, events.NewDelegationRequestedEvent(record.ID, t.ID, actor.ID, target.ID, dto.Reason)); err != nil {
		s.logger.Error("failed to publish delegation requested event", "error", err, "delegation_id", record.ID)
	}

	return FromDataModel(record), nil
}

// canDelegate encodes the delegation authority ladder.
func (s *Service) canDelegate(actor *user.User, t *task.Task) bool {
	if actor.ID == t.AssigneeID || actor.ID == t.ReporterID {
		return true
	}
	if actor.IsDepartmentHead() {
		return true
	}

	assignee, err := s.directory.GetByID(t.AssigneeID)
	if err != nil {
		return false
	}
	return actor.CanManage(assignee.Role)
}

// RespondToDelegation records the target's decision. Only the target may
// respond, and only once: the conditional update loses to a concurrent
// responder and surfaces AlreadyResponded. Approval reassigns the task.
func (s *Service) RespondToDelegation(ctx context.Context, delegationID int64, dto RespondDTO, actor *user.User) (*Delegation, error) {
	record, err := s.repo.GetByID(delegationID)
	if err != nil {
		return nil, errors.ErrDelegationNotFound
	}

	if actor.ID != record.ToUserID {
		s.logger.Warn("delegation response denied: actor is not the target",
			"delegation_id", delegationID,
			"actor_id", actor.ID,
			"to_user_id", record.ToUserID)
		return nil, errors.ErrPermissionDenied
	}

	if record.Status != string(StatusPending) {
		return nil, errors.ErrAlreadyResponded
	}

	status := StatusRejected
	if dto.Approve {
		status = StatusApproved
	}

	now := time.Now()
	won, err := s.repo.RespondIfPending(delegationID, string(status), dto.Comments, actor.ID, now)
	if err != nil {
		s.logger.Error("failed to record delegation response", "error", err, "delegation_id", delegationID)
		return nil, err
	}
	if !won {
		return nil, errors.ErrAlreadyResponded
	}

	if dto.Approve {
		if err := s.tasks.Reassign(record.TaskID, record.ToUserID); err != nil {
			s.logger.Error("delegation approved but task reassignment failed",
				"error", err,
				"delegation_id", delegationID,
				"task_id", record.TaskID)
			// roll the decision back to PENDING so the target can retry;
			// otherwise the approval sticks without the task ever moving
			if revertErr := s.repo.RestoreDecision(delegationID, record.Status, record.Comments, record.ApproverID, record.RespondedAt); revertErr != nil {
				s.logger.Error("failed to reopen delegation after reassignment failure",
					"error", revertErr,
					"delegation_id", delegationID)
			}
			return nil, err
		}
		if err := s.eventBus.Publish(ctx, events.NewTaskReassignedEvent(record.TaskID, record.FromUserID, record.ToUserID)); err != nil {
			s.logger.Error("failed to publish task reassigned event", "error", err, "task_id", record.TaskID)
		}
	}

	s.logger.Info("delegation responded",
		"delegation_id", delegationID,
		"status", status,
		"responder_id", actor.ID)

	s.notifier.DelegationResponded(ctx, delegationID, record.TaskID, record.FromUserID, dto.Approve)

	if err := s.eventBus.Publish(ctx, events.NewDelegationRespondedEvent(delegationID, record.TaskID, record.FromUserID, record.ToUserID, dto.Approve, derefComments(dto.Comments))); err != nil {
		s.logger.Error("failed to publish delegation responded event", "error", err, "delegation_id", delegationID)
	}

	record.Status = string(status)
	record.Comments = dto.Comments
	record.ApproverID = &actor.ID
	record.RespondedAt = &now
	return FromDataModel(record), nil
}

// EscalateDelegation lets a MANAGER or DEPARTMENT_HEAD force-approve a
// delegation regardless of its current state, including one the target
// already rejected. The task moves to the delegation target unless the
// escalating manager names a different assignee.
func (s *Service) EscalateDelegation(ctx context.Context, delegationID int64, dto EscalateDTO, actor *user.User) (*Delegation, error) {
	if !actor.IsManagerOrAbove() {
		s.logger.Warn("escalation denied: insufficient role",
			"delegation_id", delegationID,
			"actor_id", actor.ID,
			"actor_role", actor.Role)
		return nil, errors.ErrPermissionDenied
	}

	record, err := s.repo.GetByID(delegationID)
	if err != nil {
		return nil, errors.ErrDelegationNotFound
	}

	newAssigneeID := record.ToUserID
	if dto.NewAssigneeID != nil {
		assignee, err := s.directory.GetByID(*dto.NewAssigneeID)
		if err != nil || !assignee.IsActiveUser() {
			return nil, errors.ErrUserNotFound
		}
		newAssigneeID = assignee.ID
	}

	now := time.Now()
	if err := s.repo.ForceApprove(delegationID, actor.ID, now); err != nil {
		s.logger.Error("failed to escalate delegation", "error", err, "delegation_id", delegationID)
		return nil, err
	}

	if err := s.tasks.Reassign(record.TaskID, newAssigneeID); err != nil {
		s.logger.Error("escalation recorded but task reassignment failed",
			"error", err,
			"delegation_id", delegationID,
			"task_id", record.TaskID)
		// put the record back in its pre-escalation state
		if revertErr := s.repo.RestoreDecision(delegationID, record.Status, record.Comments, record.ApproverID, record.RespondedAt); revertErr != nil {
			s.logger.Error("failed to restore delegation after reassignment failure",
				"error", revertErr,
				"delegation_id", delegationID)
		}
		return nil, err
	}

	s.logger.Info("delegation escalated",
		"delegation_id", delegationID,
		"task_id", record.TaskID,
		"escalated_by", actor.ID,
		"new_assignee_id", newAssigneeID,
		"previous_status", record.Status)

	s.notifier.DelegationEscalated(ctx, delegationID, record.TaskID, actor.ID, newAssigneeID)

	if err := s.eventBus.Publish(ctx, events.NewDelegationEscalatedEvent(delegationID, record.TaskID, actor.ID, newAssigneeID)); err != nil {
		s.logger.Error("failed to publish delegation escalated event", "error", err, "delegation_id", delegationID)
	}

	record.Status = string(StatusApproved)
	record.ApproverID = &actor.ID
	record.RespondedAt = &now
	return FromDataModel(record), nil
}

// CompleteForTask closes the loop once the underlying task is done: every
// APPROVED delegation of that task becomes COMPLETED. Driven by the task
// completed event, so a failure here never reaches the progress update.
func (s *Service) CompleteForTask(ctx context.Context, taskID int64) error {
	updated, err := s.repo.CompleteForTask(taskID)
	if err != nil {
		s.logger.Error("failed to complete delegations for task", "error", err, "task_id", taskID)
		return err
	}

	if updated > 0 {
		s.logger.Info("delegations completed", "task_id", taskID, "count", updated)
	}
	return nil
}

// GetPendingDelegations lists delegations awaiting the user's response.
func (s *Service) GetPendingDelegations(userID int64) ([]*Delegation, error) {
	records, err := s.repo.GetPendingForUser(userID)
	if err != nil {
		s.logger.Error("failed to list pending delegations", "error", err, "user_id", userID)
		return nil, err
	}

	pending := make([]*Delegation, 0, len(records))
	for _, r := range records {
		pending = append(pending, FromDataModel(r))
	}
	return pending, nil
}

// GetDelegationHistory lists delegations the user took part in, filtered by
// direction: FROM (requested by them), TO (addressed to them), or ALL.
func (s *Service) GetDelegationHistory(userID int64, direction Direction) ([]*Delegation, error) {
	switch direction {
	case DirectionFrom, DirectionTo, DirectionAll:
	case "":
		direction = DirectionAll
	default:
		return nil, errors.NewValidationFieldError("direction", "direction must be FROM, TO or ALL", errors.ErrCodeValidationFailed)
	}

	records, err := s.repo.GetHistory(userID, direction)
	if err != nil {
		s.logger.Error("failed to list delegation history", "error", err, "user_id", userID)
		return nil, err
	}

	history := make([]*Delegation, 0, len(records))
	for _, r := range records {
		history = append(history, FromDataModel(r))
	}
	return history, nil
}

func derefComments(c *string) string {
	if c == nil {
		return ""
	}
	return *c
}
