package model

import "time"

// UserEntity represents the users table entity
type UserEntity struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	FullName     string     `db:"full_name" json:"fullName"`
	PhoneNumber  *string    `db:"phone_number" json:"phoneNumber,omitempty"`
	PasswordHash string     `db:"password_hash" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	IsDeleted    bool       `db:"is_deleted" json:"-"`
}

// UserRequest is the create/update payload. Update is a full replace of the
// mutable fields; Password is only honoured on create.
type UserRequest struct {
	Username    string  `json:"username" label:"Username" validate:"required,min=3,max=50" example:"abc"`
	Email       string  `json:"email" label:"Email" validate:"required,email" example:"a@b.com"`
	FullName    string  `json:"fullName" label:"Full name" validate:"required,max=100" example:"A B"`
	PhoneNumber *string `json:"phoneNumber,omitempty" label:"Phone number" validate:"omitempty,phone" example:"+81 90-1234-5678"`
	Password    string  `json:"password,omitempty" label:"Password" validate:"omitempty,min=8"`
}

// UserResponse is the externally visible user, without password hash or deletion flag
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// NewUserResponse maps an entity to its response shape
func NewUserResponse(u *UserEntity) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		IsActive:    u.IsActive,
	}
}
