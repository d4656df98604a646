package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages schedules, ledger and reviews
	RoleEmployee Role = "employee" // Clocks in/out and reads own data
)

var RoleValues = []string{string(RoleAdmin), string(RoleEmployee)}

// User is a row of the external user directory the time bank reads from.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can act on other users' data
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
