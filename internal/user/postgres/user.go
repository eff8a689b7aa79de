package postgres

import (
	errors "github.com/frahmantamala/workforce-management/internal"
	userDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.RepositoryAPI using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetActiveByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetDirectReports(managerID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("manager_id = ?", managerID).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByDepartment(department string) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("department = ?", department).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}
