package conference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/workforce-management/internal"
	conferenceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/conference"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/user"
)

type RepositoryAPI interface {
	Create(c *conferenceDatamodel.VideoConference) error
	GetByID(id int64) (*conferenceDatamodel.VideoConference, error)
	GetForUser(userID int64) ([]*conferenceDatamodel.VideoConference, error)
	Update(c *conferenceDatamodel.VideoConference) error
}

// Notifier delivers conference invitations. Best-effort.
type Notifier interface {
	ConferenceScheduled(ctx context.Context, conferenceID, hostID int64, participantIDs []int64, title string)
}

// Service schedules and runs video conferences. Join URLs are opaque uuid
// slugs under the configured base.
type Service struct {
	repo            RepositoryAPI
	notifier        Notifier
	eventBus        *events.EventBus
	logger          *slog.Logger
	joinURLBase     string
	defaultDuration time.Duration
}

func NewService(
	repo RepositoryAPI,
	notifier Notifier,
	eventBus *events.EventBus,
	logger *slog.Logger,
	joinURLBase string,
	defaultDuration time.Duration,
) *Service {
	if defaultDuration <= 0 {
		defaultDuration = 30 * time.Minute
	}
	return &Service{
		repo:            repo,
		notifier:        notifier,
		eventBus:        eventBus,
		logger:          logger,
		joinURLBase:     joinURLBase,
		defaultDuration: defaultDuration,
	}
}

func (s *Service) Schedule(ctx context.Context, dto ScheduleConferenceDTO, host *user.User) (*Conference, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	duration := dto.DurationMins
	if duration <= 0 {
		duration = int(s.defaultDuration.Minutes())
	}

	now := time.Now()
	record := &conferenceDatamodel.VideoConference{
		Title:        dto.Title,
		HostID:       host.ID,
		Participants: encodeParticipants(dto.Participants),
		ScheduledAt:  dto.ScheduledAt,
		DurationMins: duration,
		Status:       string(StatusScheduled),
		JoinURL:      fmt.Sprintf("%s/%s", s.joinURLBase, uuid.New().String()),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to schedule conference", "error", err, "host_id", host.ID)
		return nil, err
	}

	s.logger.Info("conference scheduled",
		"conference_id", record.ID,
		"host_id", host.ID,
		"scheduled_at", dto.ScheduledAt)

	s.notifier.ConferenceScheduled(ctx, record.ID, host.ID, dto.Participants, dto.Title)

	if err := s.eventBus.Publish(ctx, events.NewConferenceScheduledEvent(record.ID, host.ID, dto.Participants)); err != nil {
		s.logger.Error("failed to publish conference scheduled event", "error", err, "conference_id", record.ID)
	}

	return FromDataModel(record), nil
}

func (s *Service) GetByID(conferenceID int64) (*Conference, error) {
	record, err := s.repo.GetByID(conferenceID)
	if err != nil {
		return nil, errors.ErrConferenceNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetForUser(userID int64) ([]*Conference, error) {
	records, err := s.repo.GetForUser(userID)
	if err != nil {
		s.logger.Error("failed to list conferences", "error", err, "user_id", userID)
		return nil, err
	}

	conferences := make([]*Conference, 0, len(records))
	for _, r := range records {
		conferences = append(conferences, FromDataModel(r))
	}
	return conferences, nil
}

// transition moves a conference between lifecycle states. Only the host, or
// someone who manages the host's role, may drive the lifecycle.
func (s *Service) transition(conferenceID int64, actor *user.User, from []Status, to Status) (*Conference, error) {
	record, err := s.repo.GetByID(conferenceID)
	if err != nil {
		return nil, errors.ErrConferenceNotFound
	}

	if actor.ID != record.HostID && !actor.IsManagerOrAbove() {
		return nil, errors.ErrPermissionDenied
	}

	allowed := false
	for _, f := range from {
		if record.Status == string(f) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.NewConflictError(
			fmt.Sprintf("conference cannot move from %s to %s", record.Status, to),
			errors.ErrCodeValidationFailed)
	}

	record.Status = string(to)
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update conference", "error", err, "conference_id", conferenceID)
		return nil, err
	}

	s.logger.Info("conference state changed",
		"conference_id", conferenceID,
		"status", to,
		"actor_id", actor.ID)

	return FromDataModel(record), nil
}

func (s *Service) Start(conferenceID int64, actor *user.User) (*Conference, error) {
	return s.transition(conferenceID, actor, []Status{StatusScheduled}, StatusActive)
}

func (s *Service) End(conferenceID int64, actor *user.User) (*Conference, error) {
	return s.transition(conferenceID, actor, []Status{StatusActive}, StatusEnded)
}

func (s *Service) Cancel(conferenceID int64, actor *user.User) (*Conference, error) {
	return s.transition(conferenceID, actor, []Status{StatusScheduled}, StatusCancelled)
}
