package user

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	errors "github.com/frahmantamala/workforce-management/internal"
	userDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-management/internal/core/events"
	"github.com/frahmantamala/workforce-management/internal/role"
)

// RepositoryAPI is the data access surface for the user directory.
type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetActiveByEmail(email string) (*userDatamodel.User, error)
	GetDirectReports(managerID int64) ([]*userDatamodel.User, error)
	GetByDepartment(department string) ([]*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
}

// Notifier is the outbound notification contract. Calls are best-effort;
// the directory never inspects the outcome.
type Notifier interface {
	UserCreated(ctx context.Context, userID, creatorID int64, userName string)
}

// Service is the user directory: it stores users and enforces the hierarchy
// invariants on every create and update.
type Service struct {
	repo     RepositoryAPI
	notifier Notifier
	eventBus *events.EventBus
	logger   *slog.Logger

	// serializes read-modify-write sequences such as the duplicate-email
	// check followed by the insert
	mu sync.Mutex

	bcryptCost int
}

func NewService(repo RepositoryAPI, notifier Notifier, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		notifier:   notifier,
		eventBus:   eventBus,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// CreateUser validates the hierarchy rules in order: creator authority,
// manager existence, manager authority, strict manager seniority, email
// uniqueness. The manager seniority check rejects equal levels even where
// the manage table would formally allow it, to prevent lateral loops.
func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO, creator *User) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user creation validation failed", "error", err, "creator_id", creator.ID)
		return nil, err
	}

	newRole, err := role.Parse(dto.Role)
	if err != nil {
		return nil, err
	}

	if !creator.CanManage(newRole) {
		s.logger.Warn("user creation denied: creator cannot manage role",
			"creator_id", creator.ID,
			"creator_role", creator.Role,
			"target_role", newRole)
		return nil, errors.ErrPermissionDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dto.ManagerID != nil {
		managerRecord, err := s.repo.GetByID(*dto.ManagerID)
		if err != nil {
			return nil, errors.ErrManagerNotFound
		}
		manager := FromDataModel(managerRecord)

		if !manager.CanManage(newRole) {
			s.logger.Warn("user creation denied: manager cannot manage role",
				"manager_id", manager.ID,
				"manager_role", manager.Role,
				"target_role", newRole)
			return nil, errors.ErrManagerRoleMismatch
		}

		if role.Level(manager.Role) >= role.Level(newRole) {
			s.logger.Warn("user creation denied: manager not strictly senior",
				"manager_id", manager.ID,
				"manager_role", manager.Role,
				"target_role", newRole)
			return nil, errors.ErrHierarchyViolation
		}
	}

	if existing, err := s.repo.GetActiveByEmail(dto.Email); err == nil && existing != nil {
		return nil, errors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	record := ToDataModel(&User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Role:         newRole,
		Department:   dto.Department,
		ManagerID:    dto.ManagerID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created",
		"user_id", record.ID,
		"role", record.Role,
		"department", record.Department,
		"creator_id", creator.ID)

	s.notifier.UserCreated(ctx, record.ID, creator.ID, record.Name)

	if err := s.eventBus.Publish(ctx, events.NewUserCreatedEvent(record.ID, creator.ID, record.Role)); err != nil {
		s.logger.Error("failed to publish user created event", "error", err, "user_id", record.ID)
	}

	created := FromDataModel(record)
	return created, nil
}

// GetByID loads a user and fills in the direct-report index.
func (s *Service) GetByID(userID int64) (*User, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	u := FromDataModel(record)
	reports, err := s.repo.GetDirectReports(userID)
	if err != nil {
		s.logger.Error("failed to load direct reports", "error", err, "user_id", userID)
		return u, nil
	}
	for _, r := range reports {
		u.DirectReports = append(u.DirectReports, r.ID)
	}
	return u, nil
}

// GetManagedUsers answers the visibility query: direct reports plus users in
// the manager's own department with a strictly junior role. Deliberately
// broader than the org-chart subtree.
func (s *Service) GetManagedUsers(managerID int64) ([]*User, error) {
	managerRecord, err := s.repo.GetByID(managerID)
	if err != nil {
		return []*User{}, nil
	}
	manager := FromDataModel(managerRecord)

	reports, err := s.repo.GetDirectReports(managerID)
	if err != nil {
		s.logger.Error("failed to get direct reports", "error", err, "manager_id", managerID)
		return nil, err
	}

	deptUsers, err := s.repo.GetByDepartment(manager.Department)
	if err != nil {
		s.logger.Error("failed to get department users", "error", err, "department", manager.Department)
		return nil, err
	}

	seen := make(map[int64]bool)
	var managed []*User

	for _, r := range reports {
		if r.ID == managerID || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		managed = append(managed, FromDataModel(r))
	}

	for _, du := range deptUsers {
		if du.ID == managerID || seen[du.ID] {
			continue
		}
		if role.Level(role.Role(du.Role)) > role.Level(manager.Role) {
			seen[du.ID] = true
			managed = append(managed, FromDataModel(du))
		}
	}

	return managed, nil
}

// GetUsersByDepartment returns department members visible to the requester:
// the department head sees everyone, anyone else sees only peers and juniors.
func (s *Service) GetUsersByDepartment(department string, requester *User) ([]*User, error) {
	deptUsers, err := s.repo.GetByDepartment(department)
	if err != nil {
		s.logger.Error("failed to get department users", "error", err, "department", department)
		return nil, err
	}

	if requester.IsDepartmentHead() {
		return FromDataModelSlice(deptUsers), nil
	}

	var visible []*User
	for _, du := range deptUsers {
		if role.Level(role.Role(du.Role)) >= role.Level(requester.Role) {
			visible = append(visible, FromDataModel(du))
		}
	}
	return visible, nil
}

// UpdateUser applies a partial patch. Allowed for the user themselves or for
// anyone whose role manages the target's role.
func (s *Service) UpdateUser(userID int64, dto UpdateUserDTO, updater *User) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	if updater.ID != userID && !updater.CanManage(role.Role(record.Role)) {
		s.logger.Warn("user update denied",
			"updater_id", updater.ID,
			"updater_role", updater.Role,
			"target_id", userID,
			"target_role", record.Role)
		return nil, errors.ErrPermissionDenied
	}

	if dto.Name != nil {
		record.Name = *dto.Name
	}
	if dto.Department != nil {
		record.Department = *dto.Department
	}
	if dto.ManagerID != nil {
		record.ManagerID = dto.ManagerID
	}
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return nil, err
	}

	return FromDataModel(record), nil
}

// DeactivateUser soft-deletes: users are never removed from the directory.
func (s *Service) DeactivateUser(userID int64, by *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return errors.ErrUserNotFound
	}

	if !by.CanManage(role.Role(record.Role)) {
		s.logger.Warn("user deactivation denied",
			"by_id", by.ID,
			"by_role", by.Role,
			"target_id", userID,
			"target_role", record.Role)
		return errors.ErrPermissionDenied
	}

	record.IsActive = false
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user deactivated", "user_id", userID, "by", by.ID)
	return nil
}
