package user_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/workforce-management/internal"
	userDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/role"
	"github.com/frahmantamala/workforce-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, exists := m.users[id]
	if !exists {
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetActiveByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.IsActive {
			return u, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (m *mockUserRepository) GetDirectReports(managerID int64) ([]*userDatamodel.User, error) {
	var reports []*userDatamodel.User
	for _, u := range m.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			reports = append(reports, u)
		}
	}
	return reports, nil
}

func (m *mockUserRepository) GetByDepartment(department string) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	for _, u := range m.users {
		if u.Department == department {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) add(u *userDatamodel.User) *userDatamodel.User {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u
}

type mockNotifier struct {
	userCreatedCalls int
	lastUserID       int64
}

func (m *mockNotifier) UserCreated(ctx context.Context, userID, creatorID int64, userName string) {
	m.userCreatedCalls++
	m.lastUserID = userID
}

var _ = Describe("UserService", func() {
	var (
		repo     *mockUserRepository
		notifier *mockNotifier
		svc      *user.Service

		deptHead *user.User
		teamLead *user.User
		employee *user.User
	)

	newActor := func(record *userDatamodel.User) *user.User {
		return user.FromDataModel(record)
	}

	BeforeEach(func() {
		repo = newMockUserRepository()
		notifier = &mockNotifier{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		svc = user.NewService(repo, notifier, events.NewEventBus(logger), logger)

		deptHead = newActor(repo.add(&userDatamodel.User{
			Email: "head@corp.test", Name: "Head", Role: "DEPARTMENT_HEAD",
			Department: "Engineering", IsActive: true,
		}))
		teamLead = newActor(repo.add(&userDatamodel.User{
			Email: "lead@corp.test", Name: "Lead", Role: "TEAM_LEAD",
			Department: "Engineering", IsActive: true,
		}))
		employee = newActor(repo.add(&userDatamodel.User{
			Email: "dev@corp.test", Name: "Dev", Role: "EMPLOYEE",
			Department: "Engineering", ManagerID: &teamLead.ID, IsActive: true,
		}))
	})

	Describe("CreateUser", func() {
		validDTO := func() user.CreateUserDTO {
			return user.CreateUserDTO{
				Name:       "New Person",
				Email:      "new@corp.test",
				Password:   "supersecret",
				Role:       "EMPLOYEE",
				Department: "Engineering",
			}
		}

		It("creates a user when the creator manages the role", func() {
			created, err := svc.CreateUser(context.Background(), validDTO(), teamLead)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.Role).To(Equal(role.Employee))
			Expect(created.IsActive).To(BeTrue())
		})

		It("hashes the password rather than storing it", func() {
			created, err := svc.CreateUser(context.Background(), validDTO(), deptHead)
			Expect(err).NotTo(HaveOccurred())

			stored := repo.users[created.ID]
			Expect(stored.PasswordHash).NotTo(BeEmpty())
			Expect(stored.PasswordHash).NotTo(Equal("supersecret"))
		})

		It("notifies the new user", func() {
			created, err := svc.CreateUser(context.Background(), validDTO(), deptHead)
			Expect(err).NotTo(HaveOccurred())
			Expect(notifier.userCreatedCalls).To(Equal(1))
			Expect(notifier.lastUserID).To(Equal(created.ID))
		})

		It("rejects a creator whose role cannot manage the new role", func() {
			dto := validDTO()
			dto.Role = "MANAGER"

			_, err := svc.CreateUser(context.Background(), dto, teamLead)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
			Expect(notifier.userCreatedCalls).To(BeZero())
		})

		It("rejects an employee creating anyone", func() {
			_, err := svc.CreateUser(context.Background(), validDTO(), employee)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
		})

		It("rejects a manager reference that does not exist", func() {
			dto := validDTO()
			missing := int64(9999)
			dto.ManagerID = &missing

			_, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).To(Equal(errors.ErrManagerNotFound))
		})

		It("rejects a manager whose role cannot manage the new role", func() {
			dto := validDTO()
			dto.Role = "TEAM_LEAD"
			dto.ManagerID = &teamLead.ID

			_, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).To(Equal(errors.ErrManagerRoleMismatch))
		})

		It("reports a role mismatch before a hierarchy violation for a peer-level manager", func() {
			// a peer-level manager fails both checks; the manage-table check
			// runs first, so the mismatch error is the one callers see
			dto := validDTO()
			dto.ManagerID = &employee.ID

			_, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).To(Equal(errors.ErrManagerRoleMismatch))
			Expect(err).NotTo(Equal(errors.ErrHierarchyViolation))
		})

		It("rejects a duplicate email among active users", func() {
			dto := validDTO()
			dto.Email = "dev@corp.test"

			_, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).To(Equal(errors.ErrDuplicateEmail))
		})

		It("allows reusing the email of a deactivated user", func() {
			repo.users[employee.ID].IsActive = false

			dto := validDTO()
			dto.Email = "dev@corp.test"

			created, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Email).To(Equal("dev@corp.test"))
		})

		It("rejects an unknown role", func() {
			dto := validDTO()
			dto.Role = "CTO"

			_, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).To(Equal(errors.ErrInvalidRole))
		})

		It("rejects a short password", func() {
			dto := validDTO()
			dto.Password = "short"

			_, err := svc.CreateUser(context.Background(), dto, deptHead)
			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("GetManagedUsers", func() {
		It("returns direct reports plus junior department colleagues", func() {
			// direct report of the team lead
			repo.add(&userDatamodel.User{
				Email: "junior@corp.test", Name: "Junior", Role: "EMPLOYEE",
				Department: "Operations", ManagerID: &teamLead.ID, IsActive: true,
			})

			managed, err := svc.GetManagedUsers(teamLead.ID)
			Expect(err).NotTo(HaveOccurred())

			emails := make([]string, 0, len(managed))
			for _, m := range managed {
				emails = append(emails, m.Email)
			}
			// dev is both a direct report and a department junior; listed once
			Expect(emails).To(ConsistOf("dev@corp.test", "junior@corp.test"))
		})

		It("never includes the manager themselves", func() {
			managed, err := svc.GetManagedUsers(deptHead.ID)
			Expect(err).NotTo(HaveOccurred())
			for _, m := range managed {
				Expect(m.ID).NotTo(Equal(deptHead.ID))
			}
		})

		It("returns an empty list for an unknown user", func() {
			managed, err := svc.GetManagedUsers(12345)
			Expect(err).NotTo(HaveOccurred())
			Expect(managed).To(BeEmpty())
		})
	})

	Describe("GetUsersByDepartment", func() {
		It("shows the department head everyone", func() {
			visible, err := svc.GetUsersByDepartment("Engineering", deptHead)
			Expect(err).NotTo(HaveOccurred())
			Expect(visible).To(HaveLen(3))
		})

		It("hides seniors from a team lead", func() {
			visible, err := svc.GetUsersByDepartment("Engineering", teamLead)
			Expect(err).NotTo(HaveOccurred())

			for _, v := range visible {
				Expect(role.Level(v.Role)).To(BeNumerically(">=", role.Level(role.TeamLead)))
			}
		})
	})

	Describe("UpdateUser", func() {
		It("lets a user update themselves", func() {
			name := "Renamed"
			updated, err := svc.UpdateUser(employee.ID, user.UpdateUserDTO{Name: &name}, employee)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Renamed"))
		})

		It("lets a managing role update a junior", func() {
			dept := "Operations"
			updated, err := svc.UpdateUser(employee.ID, user.UpdateUserDTO{Department: &dept}, teamLead)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Department).To(Equal("Operations"))
		})

		It("denies updates across the hierarchy", func() {
			name := "Hacked"
			_, err := svc.UpdateUser(teamLead.ID, user.UpdateUserDTO{Name: &name}, employee)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
		})
	})

	Describe("DeactivateUser", func() {
		It("soft-deletes when the actor manages the target", func() {
			err := svc.DeactivateUser(employee.ID, teamLead)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.users[employee.ID].IsActive).To(BeFalse())
		})

		It("denies an employee deactivating anyone", func() {
			err := svc.DeactivateUser(teamLead.ID, employee)
			Expect(err).To(Equal(errors.ErrPermissionDenied))
		})
	})
})
