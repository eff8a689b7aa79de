package postgres

import (
	errors "github.com/frahmantamala/workforce-management/internal"
	taskDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/task"
	"github.com/frahmantamala/workforce-management/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements task.RepositoryAPI using GORM.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.RepositoryAPI {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *taskDatamodel.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id int64) (*taskDatamodel.Task, error) {
	var t taskDatamodel.Task
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) GetByAssignee(assigneeID int64) ([]*taskDatamodel.Task, error) {
	var tasks []*taskDatamodel.Task
	err := r.db.Where("assignee_id = ?", assigneeID).
		Order("deadline ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(t *taskDatamodel.Task) error {
	return r.db.Save(t).Error
}
