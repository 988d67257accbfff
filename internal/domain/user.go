package domain

import "time"

// RoleName is the canonical name of a role
type RoleName string

const (
	RoleGuest    RoleName = "guest"
	RoleCustomer RoleName = "customer"
	RoleStylist  RoleName = "stylist"
	RoleManager  RoleName = "manager"
	RoleOwner    RoleName = "owner"
)

// Seniority levels, guest < customer < stylist < manager < owner
const (
	LevelGuest    = 0
	LevelCustomer = 10
	LevelStylist  = 20
	LevelManager  = 30
	LevelOwner    = 40
)

// Role is a named capability bundle with a seniority level
type Role struct {
	ID    int64
	Name  RoleName
	Level int
}

// User is a salon user: customer, stylist, manager or owner
type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  string
	IsActive  bool
	Roles     []Role
	CreatedAt time.Time
}

// MaxLevel returns the highest seniority level among the user's roles
func (u *User) MaxLevel() int {
	level := LevelGuest
	for _, r := range u.Roles {
		if r.Level > level {
			level = r.Level
		}
	}
	return level
}

// IsOperational reports whether the user is a stylist or higher
func (u *User) IsOperational() bool {
	return u.MaxLevel() >= LevelStylist
}

// CanStyle reports whether the user may be booked as a stylist
func (u *User) CanStyle() bool {
	return u.IsActive && u.IsOperational()
}

// IsManagement reports whether the user is a manager or owner
func (u *User) IsManagement() bool {
	return u.MaxLevel() >= LevelManager
}
