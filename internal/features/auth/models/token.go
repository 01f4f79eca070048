package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshToken is the single live refresh token of a user. A new login or
// refresh overwrites the previous value.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	Token     string    `gorm:"type:text;not null;index" json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Claims is the payload of both token kinds. Email and Role are only
// populated in access tokens.
type Claims struct {
	UserID string `json:"_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is what login, registration and refresh hand out.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
