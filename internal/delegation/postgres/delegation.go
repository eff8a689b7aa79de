package postgres

import (
	"time"

	errors "github.com/frahmantamala/workforce-management/internal"
	delegationDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/delegation"
	"github.com/frahmantamala/workforce-management/internal/delegation"
	"gorm.io/gorm"
)

// DelegationRepository implements delegation.RepositoryAPI using GORM.
type DelegationRepository struct {
	db *gorm.DB
}

func NewDelegationRepository(db *gorm.DB) delegation.RepositoryAPI {
	return &DelegationRepository{db: db}
}

func (r *DelegationRepository) Create(d *delegationDatamodel.TaskDelegation) error {
	return r.db.Create(d).Error
}

func (r *DelegationRepository) GetByID(id int64) (*delegationDatamodel.TaskDelegation, error) {
	var d delegationDatamodel.TaskDelegation
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDelegationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// RespondIfPending flips a PENDING delegation to its final status. The WHERE
// clause on status makes concurrent responders race on the row: the loser
// updates zero rows and gets won=false.
func (r *DelegationRepository) RespondIfPending(id int64, status string, comments *string, approverID int64, respondedAt time.Time) (bool, error) {
	result := r.db.Model(&delegationDatamodel.TaskDelegation{}).
		Where("id = ? AND status = ?", id, string(delegation.StatusPending)).
		Updates(map[string]interface{}{
			"status":       status,
			"comments":     comments,
			"approver_id":  approverID,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ForceApprove sets APPROVED unconditionally, overriding any prior response.
func (r *DelegationRepository) ForceApprove(id int64, approverID int64, respondedAt time.Time) error {
	result := r.db.Model(&delegationDatamodel.TaskDelegation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(delegation.StatusApproved),
			"approver_id":  approverID,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrDelegationNotFound
	}
	return nil
}

// RestoreDecision writes back a previously observed decision state. Used to
// compensate when the task reassignment after an approval fails.
func (r *DelegationRepository) RestoreDecision(id int64, status string, comments *string, approverID *int64, respondedAt *time.Time) error {
	result := r.db.Model(&delegationDatamodel.TaskDelegation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"comments":     comments,
			"approver_id":  approverID,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrDelegationNotFound
	}
	return nil
}

// CompleteForTask moves every APPROVED delegation of the task to COMPLETED.
func (r *DelegationRepository) CompleteForTask(taskID int64) (int64, error) {
	result := r.db.Model(&delegationDatamodel.TaskDelegation{}).
		Where("task_id = ? AND status = ?", taskID, string(delegation.StatusApproved)).
		Update("status", string(delegation.StatusCompleted))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *DelegationRepository) GetPendingForUser(userID int64) ([]*delegationDatamodel.TaskDelegation, error) {
	var delegations []*delegationDatamodel.TaskDelegation
	err := r.db.Where("to_user_id = ? AND status = ?", userID, string(delegation.StatusPending)).
		Order("requested_at ASC").
		Find(&delegations).Error
	return delegations, err
}

func (r *DelegationRepository) GetHistory(userID int64, direction delegation.Direction) ([]*delegationDatamodel.TaskDelegation, error) {
	query := r.db.Order("requested_at DESC")

	switch direction {
	case delegation.DirectionFrom:
		query = query.Where("from_user_id = ?", userID)
	case delegation.DirectionTo:
		query = query.Where("to_user_id = ?", userID)
	default:
		query = query.Where("from_user_id = ? OR to_user_id = ?", userID, userID)
	}

	var delegations []*delegationDatamodel.TaskDelegation
	err := query.Find(&delegations).Error
	return delegations, err
}
