package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-management/internal/role"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	Role          role.Role `json:"role"`
	Department    string    `json:"department"`
	ManagerID     *int64    `json:"manager_id,omitempty"`
	DirectReports []int64   `json:"direct_reports"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CanManage reports whether this user's role has management authority over
// the target role.
func (u *User) CanManage(target role.Role) bool {
	return role.CanManage(u.Role, target)
}

func (u *User) IsDepartmentHead() bool {
	return u.Role == role.DepartmentHead
}

// IsManagerOrAbove reports MANAGER seniority or better, the bar for
// escalating delegations.
func (u *User) IsManagerOrAbove() bool {
	return role.Level(u.Role) <= role.Level(role.Manager)
}

func (u *User) IsActiveUser() bool {
	return u.IsActive
}

// Permissions returns the capability disclosure for this user's role.
func (u *User) Permissions() role.PermissionSet {
	return role.PermissionsFor(u.Role)
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		Department:   u.Department,
		ManagerID:    u.ManagerID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		PasswordHash:  u.PasswordHash,
		Role:          role.Role(u.Role),
		Department:    u.Department,
		ManagerID:     u.ManagerID,
		DirectReports: []int64{},
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
