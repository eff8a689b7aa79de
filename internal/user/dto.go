package user

import (
	errors "github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/core/common/validation"
	"github.com/frahmantamala/workforce-management/internal/role"
)

// CreateUserDTO is the request payload for creating a user in the directory.
type CreateUserDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	ManagerID  *int64 `json:"manager_id,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(120)
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().MinLength(8)
	v.Field("department", dto.Department).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if _, err := role.Parse(dto.Role); err != nil {
		return errors.ErrInvalidRole
	}
	return nil
}

// UpdateUserDTO is a partial patch; nil fields are left unchanged.
type UpdateUserDTO struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	ManagerID  *int64  `json:"manager_id,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(120)
	}
	if dto.Department != nil {
		v.Field("department", *dto.Department).Required()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UsersResponse struct {
	Users []*User `json:"users"`
}
