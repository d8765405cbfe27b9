package models

import "time"

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password     string    `json:"-" gorm:"type:varchar(255)"` // bcrypt digest, never serialized
	FirstName    string    `json:"firstName" gorm:"type:varchar(50)"`
	LastName     string    `json:"lastName" gorm:"type:varchar(50)"`
	Role         string    `json:"role" gorm:"type:varchar(10);default:user"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	ProfileImage string    `json:"profileImage,omitempty" gorm:"type:varchar(255)"`
	Bio          string    `json:"bio,omitempty" gorm:"type:varchar(500)"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
}

// LoginRequest is the payload for login. Identifier is a username or an email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the payload for profile updates. Nil Bio means
// "leave unchanged"; an empty string clears it.
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" validate:"omitempty,max=50"`
	LastName  string  `json:"lastName" validate:"omitempty,max=50"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
}

// ChangePasswordRequest is the payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
