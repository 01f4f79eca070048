package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет учетную запись консоли администратора
// @Description Учетная запись консоли
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	FirstName    string    `gorm:"size:64;not null" json:"fname"`
	LastName     string    `gorm:"size:64;not null" json:"lname"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user;index" json:"userType"`
	Verified     bool      `gorm:"not null" json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse представляет публичную информацию о пользователе
// @Description Публичная информация о пользователе (без хэша пароля)
type UserResponse struct {
	ID        string    `json:"_id" example:"5d1c8a5e-8f5c-4c39-9b8f-0e3c8c1f2a11"`
	FirstName string    `json:"fname" example:"John"`
	LastName  string    `json:"lname" example:"Doe"`
	Email     string    `json:"email" example:"john@example.com"`
	Role      string    `json:"userType" example:"user" enums:"user,admin"`
	Verified  bool      `json:"verified" example:"true"`
	CreatedAt time.Time `json:"createdAt" example:"2024-03-15T14:30:00Z"`
}

// UpdateUserRequest is the body of PUT /update-user.
type UpdateUserRequest struct {
	UserID    string `json:"userId" binding:"required"`
	FirstName string `json:"fname" binding:"required"`
	LastName  string `json:"lname" binding:"required"`
	Verified  *bool  `json:"verified,omitempty"`
}

// RemoveUserRequest is the body of DELETE /remove-user.
type RemoveUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}
