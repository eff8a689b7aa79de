package task

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/workforce-management/internal"
	taskDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/task"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/user"
)

type RepositoryAPI interface {
	Create(t *taskDatamodel.Task) error
	GetByID(id int64) (*taskDatamodel.Task, error)
	GetByAssignee(assigneeID int64) ([]*taskDatamodel.Task, error)
	Update(t *taskDatamodel.Task) error
}

// DirectoryAPI is the slice of the user directory the task service needs to
// resolve an assignee's role for authority checks.
type DirectoryAPI interface {
	GetByID(userID int64) (*user.User, error)
}

// Service owns task lifecycle. Reassignment is also driven externally by the
// delegation workflow, which is why Reassign takes bare ids rather than a DTO.
type Service struct {
	repo      RepositoryAPI
	directory DirectoryAPI
	eventBus  *events.EventBus
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, directory DirectoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		eventBus:  eventBus,
		logger:    logger,
	}
}

func (s *Service) CreateTask(dto CreateTaskDTO, reporter *user.User) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	priority := Priority(dto.Priority)
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	record := &taskDatamodel.Task{
		Title:       dto.Title,
		Description: dto.Description,
		Priority:    string(priority),
		Status:      string(StatusNotStarted),
		AssigneeID:  dto.AssigneeID,
		ReporterID:  reporter.ID,
		Deadline:    dto.Deadline,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create task", "error", err, "reporter_id", reporter.ID)
		return nil, err
	}

	s.logger.Info("task created",
		"task_id", record.ID,
		"assignee_id", record.AssigneeID,
		"reporter_id", reporter.ID)

	return FromDataModel(record), nil
}

func (s *Service) GetTaskByID(taskID int64) (*Task, error) {
	record, err := s.repo.GetByID(taskID)
	if err != nil {
		return nil, errors.ErrTaskNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetTasksForUser(userID int64) ([]*Task, error) {
	records, err := s.repo.GetByAssignee(userID)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "assignee_id", userID)
		return nil, err
	}

	tasks := make([]*Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, FromDataModel(r))
	}
	return tasks, nil
}

// Reassign moves a task to a new assignee. Authority checks live with the
// caller; the delegation workflow invokes this after an approval.
func (s *Service) Reassign(taskID, newAssigneeID int64) error {
	record, err := s.repo.GetByID(taskID)
	if err != nil {
		return errors.ErrTaskNotFound
	}

	record.AssigneeID = newAssigneeID
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to reassign task", "error", err, "task_id", taskID, "new_assignee_id", newAssigneeID)
		return err
	}

	s.logger.Info("task reassigned", "task_id", taskID, "new_assignee_id", newAssigneeID)
	return nil
}

// UpdateProgress records completion percentage. Only the assignee, the
// reporter, or someone who manages the assignee's role may report progress.
func (s *Service) UpdateProgress(ctx context.Context, taskID int64, dto UpdateProgressDTO, actor *user.User) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(taskID)
	if err != nil {
		return nil, errors.ErrTaskNotFound
	}

	if actor.ID != record.AssigneeID && actor.ID != record.ReporterID {
		assignee, err := s.directory.GetByID(record.AssigneeID)
		if err != nil || !actor.CanManage(assignee.Role) {
			return nil, errors.ErrPermissionDenied
		}
	}

	wasCompleted := record.Status == string(StatusCompleted)

	record.Progress = dto.Progress
	if dto.Status != nil {
		record.Status = *dto.Status
	} else if dto.Progress >= 100 {
		record.Status = string(StatusCompleted)
	} else if dto.Progress > 0 && record.Status == string(StatusNotStarted) {
		record.Status = string(StatusInProgress)
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update task progress", "error", err, "task_id", taskID)
		return nil, err
	}

	if !wasCompleted && record.Status == string(StatusCompleted) {
		if err := s.eventBus.Publish(ctx, events.NewTaskCompletedEvent(record.ID, record.AssigneeID)); err != nil {
			s.logger.Error("failed to publish task completed event", "error", err, "task_id", record.ID)
		}
	}

	return FromDataModel(record), nil
}
