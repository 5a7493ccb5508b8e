package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
)

// Roles lists every role a user can hold.
var Roles = []Role{RoleAdmin, RoleUser, RoleStoreOwner}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	default:
		return false
	}
}

// ParseRole converts a raw role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(60);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Address      string    `gorm:"type:varchar(400);not null" json:"address"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the user shape returned to clients.
type PublicUser struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Address string `json:"address"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Address: u.Address,
	}
}

// UserListItem is one row of the admin user listing.
type UserListItem struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    Role   `json:"role"`
}

// UserDetail is a user plus the aggregate rating of every store they own.
type UserDetail struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Role          Role     `json:"role"`
	AverageRating *float64 `json:"average_rating"`
	TotalRatings  int64    `json:"total_ratings"`
}
