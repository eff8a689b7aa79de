package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	notificationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/notification"
	"github.com/frahmantamala/workforce-management/internal/notification"
)

func TestNotificationDispatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Dispatch Suite")
}

type mockNotificationRepository struct {
	stored      []*notificationDatamodel.Notification
	createError error
	nextID      int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{nextID: 1}
}

func (m *mockNotificationRepository) Create(n *notificationDatamodel.Notification) error {
	if m.createError != nil {
		return m.createError
	}
	n.ID = m.nextID
	m.nextID++
	m.stored = append(m.stored, n)
	return nil
}

func (m *mockNotificationRepository) GetForRecipient(recipientID int64) ([]*notificationDatamodel.Notification, error) {
	var result []*notificationDatamodel.Notification
	for _, n := range m.stored {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepository) CountUnread(recipientID int64) (int, error) {
	count := 0
	for _, n := range m.stored {
		if n.RecipientID == recipientID && n.Status == string(notification.StatusUnread) {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepository) MarkRead(id, recipientID int64) error {
	for _, n := range m.stored {
		if n.ID == id && n.RecipientID == recipientID {
			n.Status = string(notification.StatusRead)
		}
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(recipientID int64) error {
	for _, n := range m.stored {
		if n.RecipientID == recipientID {
			n.Status = string(notification.StatusRead)
		}
	}
	return nil
}

var _ = Describe("Dispatcher", func() {
	var (
		repo       *mockNotificationRepository
		dispatcher *notification.Dispatcher
		svc        *notification.Service
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		dispatcher = notification.NewDispatcher(repo, logger)
		svc = notification.NewService(repo, logger)
	})

	It("stores an unread notification for the delegation target", func() {
		dispatcher.DelegationRequested(context.Background(), 1, 10, 5, 6, "handover")

		Expect(repo.stored).To(HaveLen(1))
		n := repo.stored[0]
		Expect(n.RecipientID).To(Equal(int64(6)))
		Expect(n.Type).To(Equal(string(notification.TypeDelegationRequested)))
		Expect(n.Status).To(Equal(string(notification.StatusUnread)))
		Expect(*n.RelatedEntityID).To(Equal(int64(1)))
	})

	It("notifies the requester about the decision", func() {
		dispatcher.DelegationResponded(context.Background(), 1, 10, 5, false)

		Expect(repo.stored).To(HaveLen(1))
		Expect(repo.stored[0].RecipientID).To(Equal(int64(5)))
		Expect(repo.stored[0].Title).To(ContainSubstring("rejected"))
	})

	It("invites every participant except the host", func() {
		dispatcher.ConferenceScheduled(context.Background(), 3, 1, []int64{1, 2, 4}, "Standup")

		Expect(repo.stored).To(HaveLen(2))
		for _, n := range repo.stored {
			Expect(n.RecipientID).NotTo(Equal(int64(1)))
		}
	})

	It("swallows storage failures", func() {
		repo.createError = errors.New("db down")

		Expect(func() {
			dispatcher.UserCreated(context.Background(), 9, 1, "New Person")
		}).NotTo(Panic())
		Expect(repo.stored).To(BeEmpty())
	})

	Describe("inbox", func() {
		BeforeEach(func() {
			dispatcher.DelegationRequested(context.Background(), 1, 10, 5, 6, "first")
			dispatcher.DelegationEscalated(context.Background(), 2, 11, 1, 6)
		})

		It("lists notifications with the unread count", func() {
			inbox, err := svc.GetInbox(6)
			Expect(err).NotTo(HaveOccurred())
			Expect(inbox.Notifications).To(HaveLen(2))
			Expect(inbox.UnreadCount).To(Equal(2))
		})

		It("marks a single notification read", func() {
			Expect(svc.MarkRead(repo.stored[0].ID, 6)).To(Succeed())

			inbox, err := svc.GetInbox(6)
			Expect(err).NotTo(HaveOccurred())
			Expect(inbox.UnreadCount).To(Equal(1))
		})

		It("marks everything read", func() {
			Expect(svc.MarkAllRead(6)).To(Succeed())

			inbox, err := svc.GetInbox(6)
			Expect(err).NotTo(HaveOccurred())
			Expect(inbox.UnreadCount).To(BeZero())
		})
	})
})
