package entity

import "time"

// Roles reconocidos por los guards del panel.
const (
	RoleAdmin  = "Admin"
	RoleUser   = "User"
	RoleClient = "Client"
)

// User cuenta de acceso. Roles se cargan desde user_roles.
type User struct {
	ID                   string
	Email                string
	FullName             string
	PasswordHash         string // bcrypt
	PhoneNumber          string
	PhoneNumberConfirmed bool
	AccessFailedCount    int
	LockoutEnd           *time.Time
	Roles                []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsLockedOut indica si la cuenta sigue bloqueada en el instante dado.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnd != nil && now.Before(*u.LockoutEnd)
}

// HasRole indica si el usuario tiene alguno de los roles.
func (u *User) HasRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Role rol asignable a usuarios.
type Role struct {
	ID   string
	Name string
}
