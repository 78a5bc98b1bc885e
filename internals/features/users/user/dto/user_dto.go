package dto

import (
	"strings"

	uModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest: create by admin
type CreateUserRequest struct {
	Username  string  `json:"username"  validate:"required,min=3,max=50,username"`
	Email     string  `json:"email"     validate:"required,email,max=255"`
	Password  string  `json:"password"  validate:"required,min=6,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName"  validate:"omitempty,max=50"`
	Active    *bool   `json:"active"`
}

// Normalize: trim & normalisasi dasar
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = helper.TrimPtr(r.FirstName)
	r.LastName = helper.TrimPtr(r.LastName)
}

func (r *CreateUserRequest) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return helper.Validation("Username, email, and password are required")
	}
	return helper.Validate.Struct(r)
}

// ToModel: password di-hash di sini
func (r *CreateUserRequest) ToModel() (uModel.UserModel, error) {
	m := uModel.UserModel{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Active:    true,
	}
	if r.Active != nil {
		m.Active = *r.Active
	}
	if err := m.SetPassword(r.Password); err != nil {
		return m, err
	}
	return m, nil
}

// UpdateUserRequest: allow-list; password is not updatable here
type UpdateUserRequest struct {
	Username  *string                   `json:"username"  validate:"omitempty,min=3,max=50,username"`
	Email     *string                   `json:"email"     validate:"omitempty,email,max=255"`
	FirstName helper.PatchField[string] `json:"firstName" validate:"-"`
	LastName  helper.PatchField[string] `json:"lastName"  validate:"-"`
	Active    *bool                     `json:"active"`
}

// Normalize: trims if present
func (r *UpdateUserRequest) Normalize() {
	if r.Username != nil {
		v := strings.TrimSpace(*r.Username)
		r.Username = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	r.FirstName.Value = helper.TrimPtr(r.FirstName.Value)
	r.LastName.Value = helper.TrimPtr(r.LastName.Value)
}

func (r *UpdateUserRequest) Validate() error {
	if r.Username != nil && *r.Username == "" {
		return helper.Validation("Username cannot be empty")
	}
	if r.Email != nil && *r.Email == "" {
		return helper.Validation("Email cannot be empty")
	}
	for _, p := range []*string{r.FirstName.Value, r.LastName.Value} {
		if p != nil && len(*p) > 50 {
			return helper.Validation("Name fields must be at most 50 characters")
		}
	}
	return helper.Validate.Struct(r)
}

// Apply: terapkan perubahan parsial; returns the column map for Updates
func (r UpdateUserRequest) Apply(m *uModel.UserModel) map[string]any {
	cols := map[string]any{}
	if r.Username != nil {
		m.Username = *r.Username
		cols["username"] = m.Username
	}
	if r.Email != nil {
		m.Email = *r.Email
		cols["email"] = m.Email
	}
	if v, ok := r.FirstName.Get(); ok {
		m.FirstName = v
		cols["first_name"] = v
	}
	if v, ok := r.LastName.Get(); ok {
		m.LastName = v
		cols["last_name"] = v
	}
	if r.Active != nil {
		m.Active = *r.Active
		cols["active"] = m.Active
	}
	return cols
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserStats struct {
	Total               int64 `json:"total"`
	Active              int64 `json:"active"`
	Inactive            int64 `json:"inactive"`
	RecentRegistrations int64 `json:"recentRegistrations"`
}
