package models

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
	RoleMaster   Role = "MASTER"
)

// User is the single identity table; masters and customers are rows with a
// fixed role. The role is set once at registration and never rewritten.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Email        string `gorm:"size:100" json:"email"`
	FirstName    string `gorm:"size:100" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Role         Role   `gorm:"size:20;not null" json:"role"`

	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
