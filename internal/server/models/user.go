package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

// Role is the closed set of permission levels a user can hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole accepts only the known role names.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrorInvalidRole, s)
	}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
}
