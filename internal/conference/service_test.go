package conference_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/conference"
	conferenceDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/conference"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/role"
	"github.com/frahmantamala/workforce-management/internal/user"
)

func TestConferenceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Conference Service Suite")
}

type mockConferenceRepository struct {
	conferences map[int64]*conferenceDatamodel.VideoConference
	nextID      int64
}

func newMockConferenceRepository() *mockConferenceRepository {
	return &mockConferenceRepository{
		conferences: make(map[int64]*conferenceDatamodel.VideoConference),
		nextID:      1,
	}
}

func (m *mockConferenceRepository) Create(c *conferenceDatamodel.VideoConference) error {
	c.ID = m.nextID
	m.nextID++
	m.conferences[c.ID] = c
	return nil
}

func (m *mockConferenceRepository) GetByID(id int64) (*conferenceDatamodel.VideoConference, error) {
	c, exists := m.conferences[id]
	if !exists {
		return nil, errors.ErrConferenceNotFound
	}
	return c, nil
}

func (m *mockConferenceRepository) GetForUser(userID int64) ([]*conferenceDatamodel.VideoConference, error) {
	var result []*conferenceDatamodel.VideoConference
	for _, c := range m.conferences {
		if c.HostID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockConferenceRepository) Update(c *conferenceDatamodel.VideoConference) error {
	m.conferences[c.ID] = c
	return nil
}

type mockConferenceNotifier struct {
	invites int
}

func (m *mockConferenceNotifier) ConferenceScheduled(ctx context.Context, conferenceID, hostID int64, participantIDs []int64, title string) {
	m.invites++
}

var _ = Describe("ConferenceService", func() {
	var (
		repo     *mockConferenceRepository
		notifier *mockConferenceNotifier
		svc      *conference.Service

		host  *user.User
		guest *user.User
	)

	BeforeEach(func() {
		repo = newMockConferenceRepository()
		notifier = &mockConferenceNotifier{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		bus := events.NewEventBus(logger)

		host = &user.User{ID: 1, Role: role.TeamLead, IsActive: true}
		guest = &user.User{ID: 2, Role: role.Employee, IsActive: true}

		svc = conference.NewService(repo, notifier, bus, logger, "https://meet.example.com", 30*time.Minute)
	})

	schedule := func() *conference.Conference {
		c, err := svc.Schedule(context.Background(), conference.ScheduleConferenceDTO{
			Title:        "Sprint planning",
			Participants: []int64{guest.ID},
			ScheduledAt:  time.Now().Add(time.Hour),
		}, host)
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	Describe("Schedule", func() {
		It("creates a scheduled conference with a join URL", func() {
			c := schedule()
			Expect(c.Status).To(Equal(conference.StatusScheduled))
			Expect(c.JoinURL).To(HavePrefix("https://meet.example.com/"))
			Expect(c.DurationMins).To(Equal(30))
			Expect(c.Participants).To(ConsistOf(guest.ID))
			Expect(notifier.invites).To(Equal(1))
		})

		It("rejects a time in the past", func() {
			_, err := svc.Schedule(context.Background(), conference.ScheduleConferenceDTO{
				Title:       "Retro retro",
				ScheduledAt: time.Now().Add(-time.Hour),
			}, host)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("lifecycle", func() {
		It("walks scheduled, active, ended", func() {
			c := schedule()

			started, err := svc.Start(c.ID, host)
			Expect(err).NotTo(HaveOccurred())
			Expect(started.Status).To(Equal(conference.StatusActive))

			ended, err := svc.End(c.ID, host)
			Expect(err).NotTo(HaveOccurred())
			Expect(ended.Status).To(Equal(conference.StatusEnded))
		})

		It("cancels only while still scheduled", func() {
			c := schedule()

			_, err := svc.Start(c.ID, host)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Cancel(c.ID, host)
			Expect(err).To(HaveOccurred())
		})

		It("denies a non-host employee", func() {
			c := schedule()

			_, err := svc.Start(c.ID, guest)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
		})
	})
})
