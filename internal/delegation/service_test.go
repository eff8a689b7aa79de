package delegation_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/workforce-management/internal"
	delegationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/delegation"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/delegation"
	"github.com/frahmantamala/workforce-management/internal/role"
	"github.com/frahmantamala/workforce-management/internal/task"
	"github.com/frahmantamala/workforce-management/internal/user"
)

func TestDelegationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Delegation Service Suite")
}

type mockDelegationRepository struct {
	delegations map[int64]*delegationDatamodel.TaskDelegation
	nextID      int64
}

func newMockDelegationRepository() *mockDelegationRepository {
	return &mockDelegationRepository{
		delegations: make(map[int64]*delegationDatamodel.TaskDelegation),
		nextID:      1,
	}
}

func (m *mockDelegationRepository) Create(d *delegationDatamodel.TaskDelegation) error {
	d.ID = m.nextID
	m.nextID++
	m.delegations[d.ID] = d
	return nil
}

func (m *mockDelegationRepository) GetByID(id int64) (*delegationDatamodel.TaskDelegation, error) {
	d, exists := m.delegations[id]
	if !exists {
		return nil, errors.ErrDelegationNotFound
	}
	copy := *d
	return &copy, nil
}

func (m *mockDelegationRepository) RespondIfPending(id int64, status string, comments *string, approverID int64, respondedAt time.Time) (bool, error) {
	d, exists := m.delegations[id]
	if !exists || d.Status != string(delegation.StatusPending) {
		return false, nil
	}
	d.Status = status
	d.Comments = comments
	d.ApproverID = &approverID
	d.RespondedAt = &respondedAt
	return true, nil
}

func (m *mockDelegationRepository) ForceApprove(id int64, approverID int64, respondedAt time.Time) error {
	d, exists := m.delegations[id]
	if !exists {
		return errors.ErrDelegationNotFound
	}
	d.Status = string(delegation.StatusApproved)
	d.ApproverID = &approverID
	d.RespondedAt = &respondedAt
	return nil
}

func (m *mockDelegationRepository) RestoreDecision(id int64, status string, comments *string, approverID *int64, respondedAt *time.Time) error {
	d, exists := m.delegations[id]
	if !exists {
		return errors.ErrDelegationNotFound
	}
	d.Status = status
	d.Comments = comments
	d.ApproverID = approverID
	d.RespondedAt = respondedAt
	return nil
}

func (m *mockDelegationRepository) CompleteForTask(taskID int64) (int64, error) {
	var updated int64
	for _, d := range m.delegations {
		if d.TaskID == taskID && d.Status == string(delegation.StatusApproved) {
			d.Status = string(delegation.StatusCompleted)
			updated++
		}
	}
	return updated, nil
}

func (m *mockDelegationRepository) GetPendingForUser(userID int64) ([]*delegationDatamodel.TaskDelegation, error) {
	var pending []*delegationDatamodel.TaskDelegation
	for _, d := range m.delegations {
		if d.ToUserID == userID && d.Status == string(delegation.StatusPending) {
			pending = append(pending, d)
		}
	}
	return pending, nil
}

func (m *mockDelegationRepository) GetHistory(userID int64, direction delegation.Direction) ([]*delegationDatamodel.TaskDelegation, error) {
	var history []*delegationDatamodel.TaskDelegation
	for _, d := range m.delegations {
		switch direction {
		case delegation.DirectionFrom:
			if d.FromUserID == userID {
				history = append(history, d)
			}
		case delegation.DirectionTo:
			if d.ToUserID == userID {
				history = append(history, d)
			}
		default:
			if d.FromUserID == userID || d.ToUserID == userID {
				history = append(history, d)
			}
		}
	}
	return history, nil
}

type mockTaskStore struct {
	tasks         map[int64]*task.Task
	reassignCalls []int64
	reassignedTo  map[int64]int64
	reassignErr   error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{
		tasks:        make(map[int64]*task.Task),
		reassignedTo: make(map[int64]int64),
	}
}

func (m *mockTaskStore) GetTaskByID(taskID int64) (*task.Task, error) {
	t, exists := m.tasks[taskID]
	if !exists {
		return nil, errors.ErrTaskNotFound
	}
	return t, nil
}

func (m *mockTaskStore) Reassign(taskID, newAssigneeID int64) error {
	if m.reassignErr != nil {
		return m.reassignErr
	}
	if _, exists := m.tasks[taskID]; !exists {
		return errors.ErrTaskNotFound
	}
	m.reassignCalls = append(m.reassignCalls, taskID)
	m.reassignedTo[taskID] = newAssigneeID
	m.tasks[taskID].AssigneeID = newAssigneeID
	return nil
}

type mockDirectory struct {
	users map[int64]*user.User
}

func (m *mockDirectory) GetByID(userID int64) (*user.User, error) {
	u, exists := m.users[userID]
	if !exists {
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

type mockDelegationNotifier struct {
	requested int
	responded int
	escalated int
}

func (m *mockDelegationNotifier) DelegationRequested(ctx context.Context, delegationID, taskID, fromUserID, toUserID int64, reason string) {
	m.requested++
}

func (m *mockDelegationNotifier) DelegationResponded(ctx context.Context, delegationID, taskID, requesterID int64, approved bool) {
	m.responded++
}

func (m *mockDelegationNotifier) DelegationEscalated(ctx context.Context, delegationID, taskID, escalatedBy, newAssigneeID int64) {
	m.escalated++
}

var _ = Describe("DelegationService", func() {
	var (
		repo      *mockDelegationRepository
		tasks     *mockTaskStore
		directory *mockDirectory
		notifier  *mockDelegationNotifier
		svc       *delegation.Service

		manager  *user.User
		teamLead *user.User
		assignee *user.User
		target   *user.User
		outsider *user.User
	)

	BeforeEach(func() {
		repo = newMockDelegationRepository()
		tasks = newMockTaskStore()
		notifier = &mockDelegationNotifier{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		bus := events.NewEventBus(logger)

		manager = &user.User{ID: 1, Role: role.Manager, Department: "Engineering", IsActive: true}
		teamLead = &user.User{ID: 2, Role: role.TeamLead, Department: "Engineering", IsActive: true}
		assignee = &user.User{ID: 3, Role: role.Employee, Department: "Engineering", IsActive: true}
		target = &user.User{ID: 4, Role: role.Employee, Department: "Engineering", IsActive: true}
		outsider = &user.User{ID: 5, Role: role.Employee, Department: "Operations", IsActive: true}

		directory = &mockDirectory{users: map[int64]*user.User{
			manager.ID:  manager,
			teamLead.ID: teamLead,
			assignee.ID: assignee,
			target.ID:   target,
			outsider.ID: outsider,
		}}

		tasks.tasks[10] = &task.Task{
			ID:         10,
			Title:      "Ship the release",
			AssigneeID: assignee.ID,
			ReporterID: teamLead.ID,
			Status:     task.StatusInProgress,
		}

		svc = delegation.NewService(repo, tasks, directory, notifier, bus, logger)
	})

	requestDTO := func() delegation.DelegateTaskDTO {
		return delegation.DelegateTaskDTO{
			TaskID:   10,
			ToUserID: target.ID,
			Reason:   "going on leave",
		}
	}

	Describe("DelegateTask", func() {
		It("opens a pending delegation when the assignee requests it", func() {
			d, err := svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusPending))
			Expect(d.FromUserID).To(Equal(assignee.ID))
			Expect(d.ToUserID).To(Equal(target.ID))
			Expect(notifier.requested).To(Equal(1))
		})

		It("allows the task reporter to delegate", func() {
			_, err := svc.DelegateTask(context.Background(), requestDTO(), teamLead)
			Expect(err).NotTo(HaveOccurred())
		})

		It("allows a role that manages the assignee's role", func() {
			_, err := svc.DelegateTask(context.Background(), requestDTO(), manager)
			Expect(err).NotTo(HaveOccurred())
		})

		It("denies an unrelated employee", func() {
			_, err := svc.DelegateTask(context.Background(), requestDTO(), outsider)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
			Expect(notifier.requested).To(BeZero())
		})

		It("requires a reason", func() {
			dto := requestDTO()
			dto.Reason = "   "

			_, err := svc.DelegateTask(context.Background(), dto, assignee)
			Expect(err).To(Equal(errors.ErrEmptyReason))
		})

		It("rejects an unknown task", func() {
			dto := requestDTO()
			dto.TaskID = 999

			_, err := svc.DelegateTask(context.Background(), dto, assignee)
			Expect(err).To(Equal(errors.ErrTaskNotFound))
		})

		It("rejects an unknown target user", func() {
			dto := requestDTO()
			dto.ToUserID = 999

			_, err := svc.DelegateTask(context.Background(), dto, assignee)
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})

		It("rejects an inactive target user", func() {
			target.IsActive = false

			_, err := svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})
	})

	Describe("RespondToDelegation", func() {
		var pending *delegation.Delegation

		BeforeEach(func() {
			var err error
			pending, err = svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).NotTo(HaveOccurred())
		})

		It("approves and reassigns the task to the target", func() {
			d, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: true}, target)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusApproved))
			Expect(d.RespondedAt).NotTo(BeNil())
			Expect(tasks.reassignedTo[10]).To(Equal(target.ID))
			Expect(notifier.responded).To(Equal(1))
		})

		It("rejects without touching the task", func() {
			comments := "too busy this sprint"
			d, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: false, Comments: &comments}, target)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusRejected))
			Expect(d.Comments).NotTo(BeNil())
			Expect(tasks.reassignCalls).To(BeEmpty())
		})

		It("only lets the target respond", func() {
			_, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: true}, assignee)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
		})

		It("reopens the delegation when reassignment fails so the target can retry", func() {
			tasks.reassignErr = fmt.Errorf("db connection lost")

			_, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: true}, target)
			Expect(err).To(HaveOccurred())
			Expect(repo.delegations[pending.ID].Status).To(Equal(string(delegation.StatusPending)))
			Expect(repo.delegations[pending.ID].ApproverID).To(BeNil())
			Expect(repo.delegations[pending.ID].RespondedAt).To(BeNil())

			tasks.reassignErr = nil

			d, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: true}, target)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusApproved))
			Expect(tasks.reassignedTo[10]).To(Equal(target.ID))
		})

		It("refuses a second response", func() {
			_, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: false}, target)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: true}, target)
			Expect(err).To(Equal(errors.ErrAlreadyResponded))
			Expect(tasks.reassignCalls).To(BeEmpty())
		})

		It("returns not found for an unknown delegation", func() {
			_, err := svc.RespondToDelegation(context.Background(), 999, delegation.RespondDTO{Approve: true}, target)
			Expect(err).To(Equal(errors.ErrDelegationNotFound))
		})
	})

	Describe("EscalateDelegation", func() {
		var pending *delegation.Delegation

		BeforeEach(func() {
			var err error
			pending, err = svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lets a manager force-approve a pending delegation", func() {
			d, err := svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{}, manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusApproved))
			Expect(*d.ApproverID).To(Equal(manager.ID))
			Expect(tasks.reassignedTo[10]).To(Equal(target.ID))
			Expect(notifier.escalated).To(Equal(1))
		})

		It("overrides a rejection", func() {
			_, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: false}, target)
			Expect(err).NotTo(HaveOccurred())

			d, err := svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{}, manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusApproved))
			Expect(tasks.reassignedTo[10]).To(Equal(target.ID))
		})

		It("redirects the task when a new assignee is named", func() {
			d, err := svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{NewAssigneeID: &outsider.ID}, manager)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(delegation.StatusApproved))
			Expect(tasks.reassignedTo[10]).To(Equal(outsider.ID))
		})

		It("rejects an unknown replacement assignee", func() {
			unknown := int64(999)
			_, err := svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{NewAssigneeID: &unknown}, manager)
			Expect(err).To(Equal(errors.ErrUserNotFound))
		})

		It("restores the prior state when reassignment fails", func() {
			_, err := svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: false}, target)
			Expect(err).NotTo(HaveOccurred())

			tasks.reassignErr = fmt.Errorf("db connection lost")

			_, err = svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{}, manager)
			Expect(err).To(HaveOccurred())
			Expect(repo.delegations[pending.ID].Status).To(Equal(string(delegation.StatusRejected)))
			Expect(*repo.delegations[pending.ID].ApproverID).To(Equal(target.ID))
		})

		It("denies roles below manager", func() {
			_, err := svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{}, teamLead)
			Expect(err).To(Equal(errors.ErrPermissionDenied))

			_, err = svc.EscalateDelegation(context.Background(), pending.ID, delegation.EscalateDTO{}, assignee)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
		})
	})

	Describe("CompleteForTask", func() {
		It("closes approved delegations once the task is done", func() {
			pending, err := svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.RespondToDelegation(context.Background(), pending.ID, delegation.RespondDTO{Approve: true}, target)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.CompleteForTask(context.Background(), 10)).To(Succeed())
			Expect(repo.delegations[pending.ID].Status).To(Equal(string(delegation.StatusCompleted)))
		})

		It("leaves pending and rejected delegations untouched", func() {
			pending, err := svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.CompleteForTask(context.Background(), 10)).To(Succeed())
			Expect(repo.delegations[pending.ID].Status).To(Equal(string(delegation.StatusPending)))
		})
	})

	Describe("queries", func() {
		BeforeEach(func() {
			_, err := svc.DelegateTask(context.Background(), requestDTO(), assignee)
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists pending delegations for the target", func() {
			pending, err := svc.GetPendingDelegations(target.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].IsPending()).To(BeTrue())
		})

		It("filters history by direction", func() {
			from, err := svc.GetDelegationHistory(assignee.ID, delegation.DirectionFrom)
			Expect(err).NotTo(HaveOccurred())
			Expect(from).To(HaveLen(1))

			to, err := svc.GetDelegationHistory(assignee.ID, delegation.DirectionTo)
			Expect(err).NotTo(HaveOccurred())
			Expect(to).To(BeEmpty())

			all, err := svc.GetDelegationHistory(target.ID, delegation.DirectionAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(1))
		})

		It("rejects an unknown direction", func() {
			_, err := svc.GetDelegationHistory(target.ID, delegation.Direction("SIDEWAYS"))
			Expect(err).To(HaveOccurred())
		})
	})
})
