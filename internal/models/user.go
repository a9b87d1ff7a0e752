package models

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the canonical profile record (PostgreSQL). The document store only
// ever sees UserSummary projections of it.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:30;uniqueIndex"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"` // bcrypt hash
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary is the denormalized copy embedded in chats, messages and
// notification events. It is a cached projection with a staleness bound, not
// a live reference: consumers must tolerate an outdated username or photo.
type UserSummary struct {
	ID        string `bson:"id" json:"id"`
	Username  string `bson:"username" json:"username"`
	FirstName string `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName  string `bson:"last_name,omitempty" json:"last_name,omitempty"`
	PhotoURL  string `bson:"photo_url,omitempty" json:"photo_url"`
}

// Summary projects the full profile into the embeddable form.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        strconv.FormatUint(uint64(u.ID), 10),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
	}
}

// Compact drops the name fields, for places that only show handle and avatar.
func (u *User) Compact() UserSummary {
	return UserSummary{
		ID:       strconv.FormatUint(uint64(u.ID), 10),
		Username: u.Username,
		PhotoURL: u.PhotoURL,
	}
}

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=2,max=30"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" validate:"max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username  string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	PhotoURL  string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
